package components

import (
	"fmt"
	"sort"
	"strings"
)

// Props is the closed set of typed property records, one per component type.
// Every variant knows its own keys; set is the single place a raw value is
// checked and converted.
type Props interface {
	Type() Type
	// Keys lists the configurable property names.
	Keys() []string
	// Values projects the record back to a plain map.
	Values() map[string]any
	set(key string, value any) error
	clone() Props
}

var sizes = []string{"small", "medium", "large"}

// Defaults returns a fresh record holding the catalog defaults for t.
func Defaults(t Type) (Props, error) {
	switch t {
	case TypeText:
		return &TextProps{Content: "Text content", Size: "medium", Color: "default", Align: "left"}, nil
	case TypeButton:
		return &ButtonProps{Text: "Button", Variant: "primary", Size: "medium"}, nil
	case TypeInput:
		return &InputProps{Placeholder: "Please enter", InputType: "text"}, nil
	case TypeImage:
		return &ImageProps{Src: "/images/placeholder.jpg", Alt: "Image", Width: AutoDimension(), Height: AutoDimension()}, nil
	case TypeContainer:
		return &ContainerProps{Padding: "medium", Background: "none"}, nil
	case TypeDivider:
		return &DividerProps{Style: "solid", Spacing: "medium"}, nil
	default:
		return nil, invalidType(string(t))
	}
}

// Validate overlays raw onto the defaults of t. Unknown keys and bad values
// fail; nothing outside the allowlist survives.
func Validate(t Type, raw map[string]any) (Props, error) {
	p, err := Defaults(t)
	if err != nil {
		return nil, err
	}
	if err := apply(p, raw); err != nil {
		return nil, err
	}
	return p, nil
}

// apply sets keys in sorted order so the first reported error is stable.
func apply(p Props, raw map[string]any) error {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := p.set(k, raw[k]); err != nil {
			return err
		}
	}
	return nil
}

// ---- Text ----

type TextProps struct {
	Content string
	Size    string
	Color   string
	Align   string
}

func (*TextProps) Type() Type     { return TypeText }
func (*TextProps) Keys() []string { return []string{"content", "size", "color", "align"} }
func (p *TextProps) clone() Props { c := *p; return &c }

func (p *TextProps) Values() map[string]any {
	return map[string]any{"content": p.Content, "size": p.Size, "color": p.Color, "align": p.Align}
}

func (p *TextProps) set(key string, v any) error {
	switch key {
	case "content":
		s, ok := asString(v)
		if !ok || s == "" {
			return invalidValue(key, "text content cannot be empty")
		}
		if runeLen(s) > 1000 {
			return invalidValue(key, "text content cannot exceed 1000 characters")
		}
		p.Content = s
	case "size":
		s, ok := oneOf(v, sizes...)
		if !ok {
			return enumError(key, sizes...)
		}
		p.Size = s
	case "color":
		colors := []string{"default", "primary", "secondary", "success", "warning", "error"}
		s, ok := oneOf(v, colors...)
		if !ok {
			return enumError(key, colors...)
		}
		p.Color = s
	case "align":
		aligns := []string{"left", "center", "right"}
		s, ok := oneOf(v, aligns...)
		if !ok {
			return enumError(key, aligns...)
		}
		p.Align = s
	default:
		return invalidName(TypeText, key)
	}
	return nil
}

// ---- Button ----

type ActionType string

const (
	ActionNavigate ActionType = "navigate"
	ActionSubmit   ActionType = "submit"
	ActionNone     ActionType = "none"
)

// Action is what a button does when clicked.
type Action struct {
	Type   ActionType
	Target string
}

type ButtonProps struct {
	Text     string
	Variant  string // stored under the "type" key
	Size     string
	Disabled bool
	Action   *Action
}

func (*ButtonProps) Type() Type     { return TypeButton }
func (*ButtonProps) Keys() []string { return []string{"text", "type", "size", "disabled", "action"} }

func (p *ButtonProps) clone() Props {
	c := *p
	if p.Action != nil {
		a := *p.Action
		c.Action = &a
	}
	return &c
}

func (p *ButtonProps) Values() map[string]any {
	out := map[string]any{"text": p.Text, "type": p.Variant, "size": p.Size, "disabled": p.Disabled}
	if p.Action != nil {
		action := map[string]any{"type": string(p.Action.Type)}
		if p.Action.Target != "" {
			action["target"] = p.Action.Target
		}
		out["action"] = action
	}
	return out
}

func (p *ButtonProps) set(key string, v any) error {
	switch key {
	case "text":
		s, ok := asString(v)
		if !ok || s == "" {
			return invalidValue(key, "button text cannot be empty")
		}
		if runeLen(s) > 50 {
			return invalidValue(key, "button text cannot exceed 50 characters")
		}
		p.Text = s
	case "type":
		variants := []string{"primary", "default", "dashed", "link", "text"}
		s, ok := oneOf(v, variants...)
		if !ok {
			return enumError(key, variants...)
		}
		p.Variant = s
	case "size":
		s, ok := oneOf(v, sizes...)
		if !ok {
			return enumError(key, sizes...)
		}
		p.Size = s
	case "disabled":
		b, ok := asBool(v)
		if !ok {
			return invalidValue(key, "disabled must be a boolean")
		}
		p.Disabled = b
	case "action":
		if v == nil {
			p.Action = nil
			return nil
		}
		a, err := parseAction(v)
		if err != nil {
			return err
		}
		p.Action = a
	default:
		return invalidName(TypeButton, key)
	}
	return nil
}

func parseAction(v any) (*Action, error) {
	var typ, target any
	switch a := v.(type) {
	case map[string]any:
		typ, target = a["type"], a["target"]
	case Action:
		typ, target = string(a.Type), a.Target
	case *Action:
		if a == nil {
			return nil, nil
		}
		typ, target = string(a.Type), a.Target
	default:
		return nil, invalidValue("action", "action must be an object with a type")
	}
	s, ok := oneOf(typ, string(ActionNavigate), string(ActionSubmit), string(ActionNone))
	if !ok {
		return nil, invalidValue("action", "action type must be one of: navigate, submit, none")
	}
	out := &Action{Type: ActionType(s)}
	if target != nil {
		t, ok := asString(target)
		if !ok {
			return nil, invalidValue("action", "action target must be a string")
		}
		out.Target = t
	}
	if out.Type == ActionNavigate && out.Target == "" {
		return nil, invalidValue("action", "navigate action requires a target")
	}
	return out, nil
}

// ---- Input ----

type InputProps struct {
	Placeholder string
	Required    bool
	InputType   string // stored under the "type" key
	MaxLength   *int
}

func (*InputProps) Type() Type     { return TypeInput }
func (*InputProps) Keys() []string { return []string{"placeholder", "required", "type", "maxLength"} }

func (p *InputProps) clone() Props {
	c := *p
	if p.MaxLength != nil {
		n := *p.MaxLength
		c.MaxLength = &n
	}
	return &c
}

func (p *InputProps) Values() map[string]any {
	out := map[string]any{"placeholder": p.Placeholder, "required": p.Required, "type": p.InputType}
	if p.MaxLength != nil {
		out["maxLength"] = *p.MaxLength
	}
	return out
}

func (p *InputProps) set(key string, v any) error {
	switch key {
	case "placeholder":
		if v == nil {
			p.Placeholder = ""
			return nil
		}
		s, ok := asString(v)
		if !ok {
			return invalidValue(key, "placeholder must be a string")
		}
		if runeLen(s) > 100 {
			return invalidValue(key, "placeholder cannot exceed 100 characters")
		}
		p.Placeholder = s
	case "required":
		b, ok := asBool(v)
		if !ok {
			return invalidValue(key, "required must be a boolean")
		}
		p.Required = b
	case "type":
		kinds := []string{"text", "password", "email", "number", "tel", "url"}
		s, ok := oneOf(v, kinds...)
		if !ok {
			return enumError(key, kinds...)
		}
		p.InputType = s
	case "maxLength":
		n, ok := asNumber(v)
		if !ok || n <= 0 || n != float64(int(n)) {
			return invalidValue(key, "maxLength must be a positive integer")
		}
		i := int(n)
		p.MaxLength = &i
	default:
		return invalidName(TypeInput, key)
	}
	return nil
}

// ---- Image ----

// Dimension is either "auto" or a positive pixel count.
type Dimension struct {
	Auto   bool
	Pixels float64
}

func AutoDimension() Dimension           { return Dimension{Auto: true} }
func PixelDimension(n float64) Dimension { return Dimension{Pixels: n} }

func (d Dimension) Value() any {
	if d.Auto {
		return "auto"
	}
	return d.Pixels
}

func parseDimension(key string, v any) (Dimension, error) {
	if s, ok := asString(v); ok && s == "auto" {
		return AutoDimension(), nil
	}
	if n, ok := asNumber(v); ok && n > 0 {
		return PixelDimension(n), nil
	}
	return Dimension{}, invalidValue(key, fmt.Sprintf("%s must be \"auto\" or a positive number", key))
}

type ImageProps struct {
	Src    string
	Alt    string
	Width  Dimension
	Height Dimension
}

func (*ImageProps) Type() Type     { return TypeImage }
func (*ImageProps) Keys() []string { return []string{"src", "alt", "width", "height"} }
func (p *ImageProps) clone() Props { c := *p; return &c }

func (p *ImageProps) Values() map[string]any {
	return map[string]any{"src": p.Src, "alt": p.Alt, "width": p.Width.Value(), "height": p.Height.Value()}
}

func (p *ImageProps) set(key string, v any) error {
	switch key {
	case "src":
		s, ok := asString(v)
		if !ok || s == "" {
			return invalidValue(key, "image src cannot be empty")
		}
		if !strings.HasPrefix(s, "http") && !strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "./") {
			return invalidValue(key, "image src must be an http(s) URL or a relative path")
		}
		p.Src = s
	case "alt":
		if v == nil {
			p.Alt = ""
			return nil
		}
		s, ok := asString(v)
		if !ok {
			return invalidValue(key, "alt must be a string")
		}
		p.Alt = s
	case "width":
		d, err := parseDimension(key, v)
		if err != nil {
			return err
		}
		p.Width = d
	case "height":
		d, err := parseDimension(key, v)
		if err != nil {
			return err
		}
		p.Height = d
	default:
		return invalidName(TypeImage, key)
	}
	return nil
}

// ---- Container ----

type ContainerProps struct {
	Padding    string
	Background string
	Border     bool
}

func (*ContainerProps) Type() Type     { return TypeContainer }
func (*ContainerProps) Keys() []string { return []string{"padding", "background", "border"} }
func (p *ContainerProps) clone() Props { c := *p; return &c }

func (p *ContainerProps) Values() map[string]any {
	return map[string]any{"padding": p.Padding, "background": p.Background, "border": p.Border}
}

func (p *ContainerProps) set(key string, v any) error {
	switch key {
	case "padding":
		paddings := []string{"none", "small", "medium", "large"}
		s, ok := oneOf(v, paddings...)
		if !ok {
			return enumError(key, paddings...)
		}
		p.Padding = s
	case "background":
		backgrounds := []string{"none", "light", "dark"}
		s, ok := oneOf(v, backgrounds...)
		if !ok {
			return enumError(key, backgrounds...)
		}
		p.Background = s
	case "border":
		b, ok := asBool(v)
		if !ok {
			return invalidValue(key, "border must be a boolean")
		}
		p.Border = b
	default:
		return invalidName(TypeContainer, key)
	}
	return nil
}

// ---- Divider ----

type DividerProps struct {
	Style   string
	Spacing string
}

func (*DividerProps) Type() Type     { return TypeDivider }
func (*DividerProps) Keys() []string { return []string{"style", "spacing"} }
func (p *DividerProps) clone() Props { c := *p; return &c }

func (p *DividerProps) Values() map[string]any {
	return map[string]any{"style": p.Style, "spacing": p.Spacing}
}

func (p *DividerProps) set(key string, v any) error {
	switch key {
	case "style":
		styles := []string{"solid", "dashed", "dotted"}
		s, ok := oneOf(v, styles...)
		if !ok {
			return enumError(key, styles...)
		}
		p.Style = s
	case "spacing":
		s, ok := oneOf(v, sizes...)
		if !ok {
			return enumError(key, sizes...)
		}
		p.Spacing = s
	default:
		return invalidName(TypeDivider, key)
	}
	return nil
}
