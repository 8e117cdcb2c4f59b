package store

import (
	"strings"

	"aicoder/internal/errors"
	"aicoder/pkg/types"

	"github.com/gobwas/glob"
)

// Matcher matches project titles against a case-insensitive glob.
type Matcher struct {
	pattern string
	g       glob.Glob
}

// NewMatcher compiles pattern. A pattern without glob metacharacters
// matches titles that contain it; an empty pattern matches everything.
func NewMatcher(pattern string) (*Matcher, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return &Matcher{}, nil
	}
	expr := strings.ToLower(pattern)
	if !strings.ContainsAny(expr, "*?[{") {
		expr = "*" + expr + "*"
	}
	g, err := glob.Compile(expr)
	if err != nil {
		return nil, errors.NewInputError("invalid filter pattern", pattern, err)
	}
	return &Matcher{pattern: pattern, g: g}, nil
}

// Pattern returns the pattern as given.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Match reports whether title matches.
func (m *Matcher) Match(title string) bool {
	if m.g == nil {
		return true
	}
	return m.g.Match(strings.ToLower(title))
}

// Filter returns the projects whose titles match, in order.
func (m *Matcher) Filter(projects []types.Project) []types.Project {
	if m.g == nil {
		return projects
	}
	out := make([]types.Project, 0, len(projects))
	for _, p := range projects {
		if m.Match(p.Title) {
			out = append(out, p)
		}
	}
	return out
}

// Filter is a one-shot helper around NewMatcher.
func Filter(projects []types.Project, pattern string) ([]types.Project, error) {
	m, err := NewMatcher(pattern)
	if err != nil {
		return nil, err
	}
	return m.Filter(projects), nil
}
