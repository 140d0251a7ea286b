package models

import "time"

type QuizAnswer struct {
	QuestionID string `json:"questionId" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
	Category   string `json:"category"`
}

type QuizResponse struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Answers   []QuizAnswer `json:"answers"`
	Analysis  string       `json:"analysis"`
	CreatedAt time.Time    `json:"createdAt"`
}

// QuizQuestion is a catalog entry; Category is copied onto matching answers.
type QuizQuestion struct {
	ID       string   `json:"id" yaml:"id"`
	Question string   `json:"question" yaml:"question"`
	Category string   `json:"category" yaml:"category"`
	Options  []string `json:"options" yaml:"options"`
}
