package workflow

import (
	"fmt"
	"strings"
)

// Media is a named video or book attached to a training module.
type Media struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Question is a single multiple choice quiz question.
type Question struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
}

// Module is one unit of contractor training: videos, books and a quiz.
type Module struct {
	ID                   uint       `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Videos               []Media    `json:"videos"`
	Books                []Media    `json:"books"`
	Questions            []Question `json:"questions"`
	RequiredScorePercent int        `json:"requiredScorePercent"`
	IsActive             bool       `json:"isActive"`
}

// Validate checks the cross-field rules a JSON schema can't express.
func (m Module) Validate() error {
	if m.RequiredScorePercent < 0 || m.RequiredScorePercent > 100 {
		return fmt.Errorf("module %d: required score %d out of range", m.ID, m.RequiredScorePercent)
	}
	if err := uniqueNames(m.Videos); err != nil {
		return fmt.Errorf("module %d videos: %w", m.ID, err)
	}
	if err := uniqueNames(m.Books); err != nil {
		return fmt.Errorf("module %d books: %w", m.ID, err)
	}
	for i, q := range m.Questions {
		if len(q.Options) == 0 {
			return fmt.Errorf("module %d question %d: no options", m.ID, i)
		}
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			return fmt.Errorf("module %d question %d: correct option %d out of range", m.ID, i, q.CorrectOptionIndex)
		}
	}
	return nil
}

func uniqueNames(media []Media) error {
	seen := make(map[string]bool, len(media))
	for _, md := range media {
		name := MediaKey(md.Name)
		if name == "" {
			return fmt.Errorf("empty media name")
		}
		if seen[name] {
			return fmt.Errorf("duplicate media name %q", name)
		}
		seen[name] = true
	}
	return nil
}

// MediaKey is the normalized form of a video or book name. Progress maps
// are keyed by it.
func MediaKey(name string) string {
	return strings.TrimSpace(name)
}

// ActiveModules drops inactive modules, keeping catalog order.
func ActiveModules(mods []Module) []Module {
	active := make([]Module, 0, len(mods))
	for _, m := range mods {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}
