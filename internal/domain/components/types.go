// Package components holds the component catalog, the per-type property
// validators and the Component entity that lives inside a page.
package components

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
)

// Type names a component kind.
type Type string

const (
	TypeText      Type = "Text"
	TypeButton    Type = "Button"
	TypeInput     Type = "Input"
	TypeImage     Type = "Image"
	TypeContainer Type = "Container"
	TypeDivider   Type = "Divider"
)

// AllTypes returns the supported component types in palette order.
func AllTypes() []Type {
	return []Type{TypeText, TypeButton, TypeInput, TypeImage, TypeContainer, TypeDivider}
}

func (t Type) Valid() bool {
	switch t {
	case TypeText, TypeButton, TypeInput, TypeImage, TypeContainer, TypeDivider:
		return true
	default:
		return false
	}
}

// ParseType accepts the exact type name.
func ParseType(raw string) (Type, error) {
	t := Type(strings.TrimSpace(raw))
	if !t.Valid() {
		return "", invalidType(raw)
	}
	return t, nil
}

var (
	ErrInvalidComponentType = errors.New("invalid component type")
	ErrInvalidPropertyName  = errors.New("invalid property name")
	ErrInvalidPropertyValue = errors.New("invalid property value")
)

func invalidType(raw string) error {
	return domainagg.ValidationCause("type", fmt.Sprintf("unsupported component type: %s", raw), ErrInvalidComponentType)
}

func invalidName(t Type, key string) error {
	return domainagg.ValidationCause(key, fmt.Sprintf("component %s does not support property %s", t, key), ErrInvalidPropertyName)
}

func invalidValue(key, msg string) error {
	return domainagg.ValidationCause(key, msg, ErrInvalidPropertyValue)
}

// ---- raw value helpers ----
// Raw props usually come from JSON, so numbers arrive as float64.

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

// asNumber rejects NaN and infinities.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, finite(n)
	case float32:
		f := float64(n)
		return f, finite(f)
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

func runeLen(s string) int { return utf8.RuneCountInString(s) }

func oneOf(v any, allowed ...string) (string, bool) {
	s, ok := asString(v)
	if !ok {
		return "", false
	}
	for _, a := range allowed {
		if s == a {
			return s, true
		}
	}
	return "", false
}

func enumError(key string, allowed ...string) error {
	return invalidValue(key, fmt.Sprintf("%s must be one of: %s", key, strings.Join(allowed, ", ")))
}
