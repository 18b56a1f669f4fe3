package components

import (
	"reflect"
	"sort"
)

// ComponentProps is the validated property set of one component. The zero
// value is not usable; build it with NewProps or RestoreProps.
type ComponentProps struct {
	props Props
	// unchecked holds stored values that did not decode into the typed record.
	unchecked map[string]any
}

// NewProps validates raw against the catalog for t.
func NewProps(t Type, raw map[string]any) (ComponentProps, error) {
	p, err := Validate(t, raw)
	if err != nil {
		return ComponentProps{}, err
	}
	return ComponentProps{props: p}, nil
}

// RestoreProps rebuilds props from storage without rejecting anything. Values
// that no longer fit the typed record are kept so they round-trip and so that
// Validate can report them.
func RestoreProps(t Type, raw map[string]any) ComponentProps {
	p, err := Defaults(t)
	if err != nil {
		return ComponentProps{props: &unknownProps{typ: t, values: copyMap(raw)}}
	}
	var unchecked map[string]any
	for k, v := range raw {
		if err := p.set(k, v); err != nil {
			if unchecked == nil {
				unchecked = map[string]any{}
			}
			unchecked[k] = v
		}
	}
	return ComponentProps{props: p, unchecked: unchecked}
}

func (cp ComponentProps) Type() Type {
	if cp.props == nil {
		return ""
	}
	return cp.props.Type()
}

// Typed exposes the underlying record for exhaustive type switches.
func (cp ComponentProps) Typed() Props {
	if cp.props == nil {
		return nil
	}
	return cp.props.clone()
}

// Values returns a fresh snapshot of all properties.
func (cp ComponentProps) Values() map[string]any {
	out := map[string]any{}
	if cp.props != nil {
		for k, v := range cp.props.Values() {
			out[k] = v
		}
	}
	for k, v := range cp.unchecked {
		out[k] = v
	}
	return out
}

func (cp ComponentProps) Get(key string) (any, bool) {
	v, ok := cp.Values()[key]
	return v, ok
}

// Update applies raw on top of the current values. Either every key is
// accepted or nothing changes.
func (cp *ComponentProps) Update(raw map[string]any) error {
	if cp.props == nil {
		return invalidType("")
	}
	next := cp.props.clone()
	if err := apply(next, raw); err != nil {
		return err
	}
	cp.props = next
	if len(cp.unchecked) > 0 {
		rest := map[string]any{}
		for k, v := range cp.unchecked {
			if _, replaced := raw[k]; !replaced {
				rest[k] = v
			}
		}
		if len(rest) == 0 {
			rest = nil
		}
		cp.unchecked = rest
	}
	return nil
}

// Validate re-checks the current values and returns the first problem found.
func (cp ComponentProps) Validate() error {
	if cp.props == nil {
		return invalidType("")
	}
	if u, ok := cp.props.(*unknownProps); ok {
		return invalidType(string(u.typ))
	}
	if len(cp.unchecked) > 0 {
		keys := make([]string, 0, len(cp.unchecked))
		for k := range cp.unchecked {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		probe := cp.props.clone()
		return probe.set(keys[0], cp.unchecked[keys[0]])
	}
	_, err := Validate(cp.props.Type(), cp.props.Values())
	return err
}

func (cp ComponentProps) Equal(other ComponentProps) bool {
	if cp.Type() != other.Type() {
		return false
	}
	a, b := cp.Values(), other.Values()
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		w, ok := b[k]
		if !ok || !sameValue(v, w) {
			return false
		}
	}
	return true
}

// unknownProps carries stored props of a type the catalog no longer knows.
type unknownProps struct {
	typ    Type
	values map[string]any
}

func (u *unknownProps) Type() Type                  { return u.typ }
func (u *unknownProps) Keys() []string              { return nil }
func (u *unknownProps) Values() map[string]any      { return copyMap(u.values) }
func (u *unknownProps) set(key string, _ any) error { return invalidName(u.typ, key) }
func (u *unknownProps) clone() Props                { return &unknownProps{typ: u.typ, values: copyMap(u.values)} }

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sameValue(a, b any) bool {
	if an, ok := asNumber(a); ok {
		bn, ok := asNumber(b)
		return ok && an == bn
	}
	am, aok := a.(map[string]any)
	bm, bok := b.(map[string]any)
	if aok || bok {
		if !aok || !bok || len(am) != len(bm) {
			return false
		}
		for k, v := range am {
			if !sameValue(v, bm[k]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(a, b)
}
