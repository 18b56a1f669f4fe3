// Package paging normalizes list queries shared by the repositories.
package paging

import "strings"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is a 1-based page request.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// Normalize clamps page to >= 1 and limit to [1, MaxLimit].
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	p.Search = strings.TrimSpace(p.Search)
	return p
}

func (p Params) Offset() int { return (p.Page - 1) * p.Limit }

// Like returns a lowercase LIKE pattern for Search.
func (p Params) Like() string {
	s := strings.ToLower(p.Search)
	s = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return "%" + s + "%"
}

type Result[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

func NewResult[T any](items []T, total int64, p Params) Result[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Result[T]{Items: items, Total: total, Page: p.Page, Limit: p.Limit, TotalPages: pages}
}
