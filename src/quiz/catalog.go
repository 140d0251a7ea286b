// Package quiz holds the spending-habits question catalog.
package quiz

import (
	_ "embed"
	"fmt"

	"finpal-server/src/models"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var questionsYAML []byte

type Catalog struct {
	questions []models.QuizQuestion
	byID      map[string]models.QuizQuestion
}

// Parse builds a catalog from YAML. Question ids must be unique and non-empty.
func Parse(data []byte) (*Catalog, error) {
	var questions []models.QuizQuestion
	if err := yaml.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse quiz catalog: %w", err)
	}

	byID := make(map[string]models.QuizQuestion, len(questions))
	for _, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("quiz question %q has no id", q.Question)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quiz question id %q", q.ID)
		}
		byID[q.ID] = q
	}
	return &Catalog{questions: questions, byID: byID}, nil
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(questionsYAML)
}

func (c *Catalog) Questions() []models.QuizQuestion {
	out := make([]models.QuizQuestion, len(c.questions))
	copy(out, c.questions)
	return out
}

// Category returns the category of a known question, or "" if unknown.
func (c *Catalog) Category(questionID string) string {
	return c.byID[questionID].Category
}

// Question returns the question text, falling back to the id for unknown ids.
func (c *Catalog) Question(questionID string) string {
	if q, ok := c.byID[questionID]; ok {
		return q.Question
	}
	return questionID
}
