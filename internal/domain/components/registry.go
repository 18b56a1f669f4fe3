package components

// Definition describes one palette entry.
type Definition struct {
	Type         Type           `json:"type"`
	Name         string         `json:"name"`
	DefaultProps map[string]any `json:"default_props"`
	Configurable []string       `json:"configurable"`
}

var displayNames = map[Type]string{
	TypeText:      "Text",
	TypeButton:    "Button",
	TypeInput:     "Input Field",
	TypeImage:     "Image",
	TypeContainer: "Container",
	TypeDivider:   "Divider",
}

// Lookup returns the catalog entry for t.
func Lookup(t Type) (Definition, error) {
	p, err := Defaults(t)
	if err != nil {
		return Definition{}, err
	}
	return Definition{
		Type:         t,
		Name:         displayNames[t],
		DefaultProps: p.Values(),
		Configurable: p.Keys(),
	}, nil
}

// Definitions returns the whole catalog in palette order.
func Definitions() []Definition {
	out := make([]Definition, 0, len(AllTypes()))
	for _, t := range AllTypes() {
		d, err := Lookup(t)
		if err != nil {
			continue
		}
		out = append(out, d)
	}
	return out
}

// IsConfigurable reports whether key is in the allowlist of t.
func IsConfigurable(t Type, key string) bool {
	p, err := Defaults(t)
	if err != nil {
		return false
	}
	for _, k := range p.Keys() {
		if k == key {
			return true
		}
	}
	return false
}
