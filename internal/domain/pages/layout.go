package pages

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
)

const (
	minMaxWidth     = 320
	maxMaxWidth     = 2560
	defaultMaxWidth = 1200
)

// MaxWidth is either the literal "full" or a pixel width.
type MaxWidth struct {
	Full   bool
	Pixels float64
}

func FullWidth() MaxWidth            { return MaxWidth{Full: true} }
func PixelWidth(px float64) MaxWidth { return MaxWidth{Pixels: px} }

func (m MaxWidth) validate() error {
	if m.Full {
		return nil
	}
	if math.IsNaN(m.Pixels) || math.IsInf(m.Pixels, 0) || m.Pixels < minMaxWidth || m.Pixels > maxMaxWidth {
		return domainagg.Validation("max_width", fmt.Sprintf("max width must be \"full\" or between %d and %d", minMaxWidth, maxMaxWidth))
	}
	return nil
}

func (m MaxWidth) String() string {
	if m.Full {
		return "full"
	}
	return strconv.FormatFloat(m.Pixels, 'f', -1, 64)
}

func (m MaxWidth) MarshalJSON() ([]byte, error) {
	if m.Full {
		return json.Marshal("full")
	}
	return json.Marshal(m.Pixels)
}

func (m *MaxWidth) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	parsed, err := ParseMaxWidth(v)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMaxWidth accepts the string "full" or a number. Numeric strings are
// rejected. Range is checked by the layout.
func ParseMaxWidth(v any) (MaxWidth, error) {
	switch t := v.(type) {
	case string:
		if t == "full" {
			return FullWidth(), nil
		}
	case float64:
		return PixelWidth(t), nil
	case int:
		return PixelWidth(float64(t)), nil
	}
	return MaxWidth{}, domainagg.Validation("max_width", "max width must be \"full\" or a number")
}

type Padding string

const (
	PaddingNone   Padding = "none"
	PaddingSmall  Padding = "small"
	PaddingMedium Padding = "medium"
	PaddingLarge  Padding = "large"
)

func (p Padding) CSS() (string, bool) {
	switch p {
	case PaddingNone:
		return "0", true
	case PaddingSmall:
		return "8px", true
	case PaddingMedium:
		return "16px", true
	case PaddingLarge:
		return "24px", true
	default:
		return "", false
	}
}

type Spacing string

const (
	SpacingCompact Spacing = "compact"
	SpacingNormal  Spacing = "normal"
	SpacingLoose   Spacing = "loose"
)

func (s Spacing) CSS() (string, bool) {
	switch s {
	case SpacingCompact:
		return "8px", true
	case SpacingNormal:
		return "16px", true
	case SpacingLoose:
		return "24px", true
	default:
		return "", false
	}
}

// LayoutConfig is the input to NewLayout. Zero fields take defaults.
type LayoutConfig struct {
	MaxWidth *MaxWidth
	Padding  Padding
	Spacing  Spacing
}

// Layout is an immutable page layout.
type Layout struct {
	maxWidth MaxWidth
	padding  Padding
	spacing  Spacing
}

// LayoutRecord is the persisted shape of a layout.
type LayoutRecord struct {
	MaxWidth MaxWidth `json:"max_width"`
	Padding  Padding  `json:"padding"`
	Spacing  Spacing  `json:"spacing"`
}

func DefaultLayout() Layout {
	return Layout{maxWidth: PixelWidth(defaultMaxWidth), padding: PaddingMedium, spacing: SpacingNormal}
}

func NewLayout(cfg LayoutConfig) (Layout, error) {
	l := DefaultLayout()
	if cfg.MaxWidth != nil {
		if err := cfg.MaxWidth.validate(); err != nil {
			return Layout{}, err
		}
		l.maxWidth = *cfg.MaxWidth
	}
	if cfg.Padding != "" {
		if err := validatePadding(cfg.Padding); err != nil {
			return Layout{}, err
		}
		l.padding = cfg.Padding
	}
	if cfg.Spacing != "" {
		if err := validateSpacing(cfg.Spacing); err != nil {
			return Layout{}, err
		}
		l.spacing = cfg.Spacing
	}
	return l, nil
}

func validatePadding(p Padding) error {
	if _, ok := p.CSS(); !ok {
		return domainagg.Validation("padding", "padding must be one of: none, small, medium, large")
	}
	return nil
}

func validateSpacing(s Spacing) error {
	if _, ok := s.CSS(); !ok {
		return domainagg.Validation("spacing", "spacing must be one of: compact, normal, loose")
	}
	return nil
}

func (l Layout) MaxWidth() MaxWidth { return l.maxWidth }
func (l Layout) Padding() Padding   { return l.padding }
func (l Layout) Spacing() Spacing   { return l.spacing }

func (l Layout) WithMaxWidth(m MaxWidth) (Layout, error) {
	if err := m.validate(); err != nil {
		return Layout{}, err
	}
	l.maxWidth = m
	return l, nil
}

func (l Layout) WithPadding(p Padding) (Layout, error) {
	if err := validatePadding(p); err != nil {
		return Layout{}, err
	}
	l.padding = p
	return l, nil
}

func (l Layout) WithSpacing(s Spacing) (Layout, error) {
	if err := validateSpacing(s); err != nil {
		return Layout{}, err
	}
	l.spacing = s
	return l, nil
}

// MaxWidthValue is the CSS max-width: "100%" for full, "<n>px" otherwise.
func (l Layout) MaxWidthValue() string {
	if l.maxWidth.Full {
		return "100%"
	}
	return l.maxWidth.String() + "px"
}

func (l Layout) PaddingValue() string {
	v, _ := l.padding.CSS()
	return v
}

func (l Layout) SpacingValue() string {
	v, _ := l.spacing.CSS()
	return v
}

// CSS returns the container style object for the page.
func (l Layout) CSS() map[string]string {
	return map[string]string{
		"maxWidth": l.MaxWidthValue(),
		"padding":  l.PaddingValue(),
		"gap":      l.SpacingValue(),
		"margin":   "0 auto",
	}
}

func (l Layout) Equal(other Layout) bool {
	return l == other
}

func (l Layout) Record() LayoutRecord {
	return LayoutRecord{MaxWidth: l.maxWidth, Padding: l.padding, Spacing: l.spacing}
}

// RestoreLayout validates a stored layout. The zero record means defaults.
func RestoreLayout(r LayoutRecord) (Layout, error) {
	if r == (LayoutRecord{}) {
		return DefaultLayout(), nil
	}
	cfg := LayoutConfig{Padding: r.Padding, Spacing: r.Spacing}
	if r.MaxWidth != (MaxWidth{}) {
		mw := r.MaxWidth
		cfg.MaxWidth = &mw
	}
	return NewLayout(cfg)
}
