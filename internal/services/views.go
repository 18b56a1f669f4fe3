package services

import (
	"github.com/yungbote/sitebuilder-backend/internal/data/repos/paging"
	"github.com/yungbote/sitebuilder-backend/internal/domain/pages"
	"github.com/yungbote/sitebuilder-backend/internal/domain/projects"
	domainuser "github.com/yungbote/sitebuilder-backend/internal/domain/user"
)

type ProjectWithPages struct {
	Project projects.Record `json:"project"`
	Pages   []pages.Record  `json:"pages"`
}

type PagePreview struct {
	Page       pages.Record     `json:"page"`
	RenderData pages.RenderData `json:"render_data"`
}

type LoginResult struct {
	AccessToken string            `json:"access_token"`
	TokenType   string            `json:"token_type"`
	ExpiresIn   int64             `json:"expires_in"`
	User        domainuser.Record `json:"user"`
}

func projectRecords(ps []*projects.Project) []projects.Record {
	out := make([]projects.Record, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Record())
	}
	return out
}

func pageRecords(ps []*pages.Page) []pages.Record {
	out := make([]pages.Record, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Record())
	}
	return out
}

func mapPage[T, U any](in paging.Result[T], f func([]T) []U) paging.Result[U] {
	return paging.Result[U]{
		Items:      f(in.Items),
		Total:      in.Total,
		Page:       in.Page,
		Limit:      in.Limit,
		TotalPages: in.TotalPages,
	}
}
