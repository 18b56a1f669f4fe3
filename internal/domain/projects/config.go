package projects

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	domainagg "github.com/yungbote/sitebuilder-backend/internal/domain/aggregates"
)

var hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	defaultPrimaryColor = "#1890ff"
	defaultHeaderTitle  = "My Website"
	maxHeaderTitleLen   = 50
	maxMenuItems        = 10
	maxMenuLabelLen     = 20
)

type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

func (f FontSize) CSS() (string, bool) {
	switch f {
	case FontSmall:
		return "12px", true
	case FontMedium:
		return "14px", true
	case FontLarge:
		return "16px", true
	default:
		return "", false
	}
}

type FontFamily string

const (
	FontDefault   FontFamily = "default"
	FontSerif     FontFamily = "serif"
	FontMonospace FontFamily = "monospace"
)

func (f FontFamily) CSS() (string, bool) {
	switch f {
	case FontDefault:
		return `-apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif`, true
	case FontSerif:
		return `Georgia, "Times New Roman", Times, serif`, true
	case FontMonospace:
		return `"SFMono-Regular", Consolas, "Liberation Mono", Menlo, monospace`, true
	default:
		return "", false
	}
}

// ---- theme ----

// ThemeConfig is immutable; With* methods return validated copies.
type ThemeConfig struct {
	primaryColor string
	fontSize     FontSize
	fontFamily   FontFamily
}

type ThemeRecord struct {
	PrimaryColor string     `json:"primary_color"`
	FontSize     FontSize   `json:"font_size"`
	FontFamily   FontFamily `json:"font_family"`
}

func DefaultTheme() ThemeConfig {
	return ThemeConfig{primaryColor: defaultPrimaryColor, fontSize: FontMedium, fontFamily: FontDefault}
}

// NewTheme fills empty fields with defaults and validates the rest.
func NewTheme(r ThemeRecord) (ThemeConfig, error) {
	t := DefaultTheme()
	if r.PrimaryColor != "" {
		t.primaryColor = r.PrimaryColor
	}
	if r.FontSize != "" {
		t.fontSize = r.FontSize
	}
	if r.FontFamily != "" {
		t.fontFamily = r.FontFamily
	}
	if err := t.validate(); err != nil {
		return ThemeConfig{}, err
	}
	return t, nil
}

func (t ThemeConfig) validate() error {
	if !hexColor.MatchString(t.primaryColor) {
		return domainagg.Validation("primary_color", "primary color must be a hex color such as #1890ff")
	}
	if _, ok := t.fontSize.CSS(); !ok {
		return domainagg.Validation("font_size", "font size must be one of: small, medium, large")
	}
	if _, ok := t.fontFamily.CSS(); !ok {
		return domainagg.Validation("font_family", "font family must be one of: default, serif, monospace")
	}
	return nil
}

func (t ThemeConfig) PrimaryColor() string   { return t.primaryColor }
func (t ThemeConfig) FontSize() FontSize     { return t.fontSize }
func (t ThemeConfig) FontFamily() FontFamily { return t.fontFamily }

func (t ThemeConfig) FontSizeValue() string {
	v, _ := t.fontSize.CSS()
	return v
}

func (t ThemeConfig) FontFamilyValue() string {
	v, _ := t.fontFamily.CSS()
	return v
}

func (t ThemeConfig) WithPrimaryColor(c string) (ThemeConfig, error) {
	t.primaryColor = c
	return t.checked()
}

func (t ThemeConfig) WithFontSize(f FontSize) (ThemeConfig, error) {
	t.fontSize = f
	return t.checked()
}

func (t ThemeConfig) WithFontFamily(f FontFamily) (ThemeConfig, error) {
	t.fontFamily = f
	return t.checked()
}

func (t ThemeConfig) checked() (ThemeConfig, error) {
	if err := t.validate(); err != nil {
		return ThemeConfig{}, err
	}
	return t, nil
}

func (t ThemeConfig) Record() ThemeRecord {
	return ThemeRecord{PrimaryColor: t.primaryColor, FontSize: t.fontSize, FontFamily: t.fontFamily}
}

func (t ThemeConfig) Equal(o ThemeConfig) bool { return t == o }

// ---- navigation ----

type MenuItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

type NavigationConfig struct {
	showHeader  bool
	headerTitle string
	menuItems   []MenuItem
}

type NavigationRecord struct {
	ShowHeader  *bool      `json:"show_header"`
	HeaderTitle string     `json:"header_title"`
	MenuItems   []MenuItem `json:"menu_items"`
}

func DefaultNavigation() NavigationConfig {
	return NavigationConfig{showHeader: true, headerTitle: defaultHeaderTitle}
}

// NewNavigation applies defaults (header shown, default title) and validates.
func NewNavigation(r NavigationRecord) (NavigationConfig, error) {
	n := DefaultNavigation()
	if r.ShowHeader != nil {
		n.showHeader = *r.ShowHeader
	}
	if r.HeaderTitle != "" {
		n.headerTitle = r.HeaderTitle
	}
	n.menuItems = append([]MenuItem(nil), r.MenuItems...)
	if err := n.validate(); err != nil {
		return NavigationConfig{}, err
	}
	return n, nil
}

func (n NavigationConfig) validate() error {
	if strings.TrimSpace(n.headerTitle) == "" {
		return domainagg.Validation("header_title", "header title cannot be empty")
	}
	if utf8.RuneCountInString(n.headerTitle) > maxHeaderTitleLen {
		return domainagg.Validation("header_title", fmt.Sprintf("header title cannot exceed %d characters", maxHeaderTitleLen))
	}
	return validateMenuItems(n.menuItems)
}

func validateMenuItems(items []MenuItem) error {
	if len(items) > maxMenuItems {
		return domainagg.Validation("menu_items", fmt.Sprintf("navigation cannot have more than %d menu items", maxMenuItems))
	}
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.Label) == "" {
			return domainagg.Validation("menu_items", fmt.Sprintf("menu item %d label cannot be empty", i+1))
		}
		if utf8.RuneCountInString(it.Label) > maxMenuLabelLen {
			return domainagg.Validation("menu_items", fmt.Sprintf("menu item %d label cannot exceed %d characters", i+1, maxMenuLabelLen))
		}
		if it.Path == "" || !strings.HasPrefix(it.Path, "/") {
			return domainagg.Validation("menu_items", fmt.Sprintf("menu item %d path must start with /", i+1))
		}
		if seen[it.Path] {
			return domainagg.Validation("menu_items", fmt.Sprintf("duplicate menu path: %s", it.Path))
		}
		seen[it.Path] = true
	}
	return nil
}

func (n NavigationConfig) ShowHeader() bool    { return n.showHeader }
func (n NavigationConfig) HeaderTitle() string { return n.headerTitle }

func (n NavigationConfig) MenuItems() []MenuItem {
	return append([]MenuItem(nil), n.menuItems...)
}

func (n NavigationConfig) with(items []MenuItem) (NavigationConfig, error) {
	next := NavigationConfig{showHeader: n.showHeader, headerTitle: n.headerTitle, menuItems: items}
	if err := next.validate(); err != nil {
		return NavigationConfig{}, err
	}
	return next, nil
}

func (n NavigationConfig) AddMenuItem(item MenuItem) (NavigationConfig, error) {
	items := append(n.MenuItems(), item)
	return n.with(items)
}

func (n NavigationConfig) RemoveMenuItem(path string) (NavigationConfig, error) {
	items := make([]MenuItem, 0, len(n.menuItems))
	for _, it := range n.menuItems {
		if it.Path != path {
			items = append(items, it)
		}
	}
	return n.with(items)
}

// UpdateMenuItem replaces the item at oldPath. An unknown oldPath is a no-op
// apart from re-validation.
func (n NavigationConfig) UpdateMenuItem(oldPath string, item MenuItem) (NavigationConfig, error) {
	items := n.MenuItems()
	for i := range items {
		if items[i].Path == oldPath {
			items[i] = item
		}
	}
	return n.with(items)
}

func (n NavigationConfig) Record() NavigationRecord {
	show := n.showHeader
	return NavigationRecord{ShowHeader: &show, HeaderTitle: n.headerTitle, MenuItems: n.MenuItems()}
}

func (n NavigationConfig) Equal(o NavigationConfig) bool {
	if n.showHeader != o.showHeader || n.headerTitle != o.headerTitle || len(n.menuItems) != len(o.menuItems) {
		return false
	}
	for i := range n.menuItems {
		if n.menuItems[i] != o.menuItems[i] {
			return false
		}
	}
	return true
}

// ---- project config ----

// Config groups theme and optional navigation settings of a project.
type Config struct {
	theme      ThemeConfig
	navigation *NavigationConfig
}

type ConfigRecord struct {
	Theme      ThemeRecord       `json:"theme"`
	Navigation *NavigationRecord `json:"navigation,omitempty"`
}

func DefaultConfig() Config {
	return Config{theme: DefaultTheme()}
}

func NewConfig(r ConfigRecord) (Config, error) {
	theme, err := NewTheme(r.Theme)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{theme: theme}
	if r.Navigation != nil {
		nav, err := NewNavigation(*r.Navigation)
		if err != nil {
			return Config{}, err
		}
		cfg.navigation = &nav
	}
	return cfg, nil
}

func (c Config) Theme() ThemeConfig { return c.theme }

func (c Config) Navigation() (NavigationConfig, bool) {
	if c.navigation == nil {
		return NavigationConfig{}, false
	}
	return *c.navigation, true
}

func (c Config) WithTheme(t ThemeConfig) Config {
	c.theme = t
	return c
}

func (c Config) WithNavigation(n NavigationConfig) Config {
	c.navigation = &n
	return c
}

func (c Config) WithoutNavigation() Config {
	c.navigation = nil
	return c
}

func (c Config) Equal(o Config) bool {
	if !c.theme.Equal(o.theme) {
		return false
	}
	if (c.navigation == nil) != (o.navigation == nil) {
		return false
	}
	return c.navigation == nil || c.navigation.Equal(*o.navigation)
}

func (c Config) Record() ConfigRecord {
	r := ConfigRecord{Theme: c.theme.Record()}
	if c.navigation != nil {
		nav := c.navigation.Record()
		r.Navigation = &nav
	}
	return r
}
