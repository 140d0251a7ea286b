package models

type ChatMessageRequest struct {
	Message string `json:"message" validate:"required,max=4000"`
}
