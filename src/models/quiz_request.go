package models

type QuizSubmitRequest struct {
	Answers []QuizAnswer `json:"answers" validate:"required,min=1,dive"`
}
