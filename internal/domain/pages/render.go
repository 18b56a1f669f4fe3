package pages

import "github.com/yungbote/sitebuilder-backend/internal/domain/components"

type RenderMeta struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// RenderData is everything a renderer needs to draw a page preview.
type RenderData struct {
	Meta       RenderMeta                `json:"meta"`
	Layout     LayoutRecord              `json:"layout"`
	CSS        map[string]string         `json:"css"`
	Components []components.RenderConfig `json:"components"`
}

// RenderData uses the title for meta when set and falls back to the name.
func (p *Page) RenderData() RenderData {
	title := p.name
	if p.title != nil && *p.title != "" {
		title = *p.title
	}
	comps := make([]components.RenderConfig, 0, len(p.components))
	for _, c := range p.components {
		comps = append(comps, c.RenderConfig())
	}
	return RenderData{
		Meta:       RenderMeta{Title: title, Path: p.path},
		Layout:     p.layout.Record(),
		CSS:        p.layout.CSS(),
		Components: comps,
	}
}
