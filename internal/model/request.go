package model

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username    string `json:"username" validate:"required,min=3,max=64"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"display_name" validate:"required,max=128"`
	Role        string `json:"role" validate:"omitempty,oneof=admin staff"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin staff"`
}

type UpdateUserSuspensionRequest struct {
	Suspended bool `json:"suspended"`
}

type CreateTemplateRequest struct {
	Name string `json:"name" validate:"required,max=128"`
	Open bool   `json:"open"`
}

type UpdateTemplateRequest struct {
	Name string `json:"name" validate:"required,max=128"`
	Open bool   `json:"open"`
}

type CreatePlayerRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Position string `json:"position" validate:"max=64"`
	Rating   int    `json:"rating" validate:"gte=0,lte=100"`
	Notes    string `json:"notes" validate:"max=4096"`
}

type UpdatePlayerRequest struct {
	Name     string `json:"name" validate:"required,max=128"`
	Position string `json:"position" validate:"max=64"`
	Rating   int    `json:"rating" validate:"gte=0,lte=100"`
	Notes    string `json:"notes" validate:"max=4096"`
}

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description" validate:"max=4096"`
	Status      string `json:"status" validate:"omitempty,oneof=open in_progress done"`
	AssigneeID  string `json:"assignee_id" validate:"omitempty,uuid4"`
	DueAt       string `json:"due_at" validate:"omitempty"`
}

type UpdateTaskRequest struct {
	Title       string `json:"title" validate:"required,max=256"`
	Description string `json:"description" validate:"max=4096"`
	Status      string `json:"status" validate:"required,oneof=open in_progress done"`
	AssigneeID  string `json:"assignee_id" validate:"omitempty,uuid4"`
	DueAt       string `json:"due_at" validate:"omitempty"`
}

type CreateMessageRequest struct {
	Body string `json:"body" validate:"required,max=4096"`
}

type CreateQuoteRequest struct {
	SaidBy string `json:"said_by" validate:"required,max=128"`
	Body   string `json:"body" validate:"required,max=4096"`
}

type CreateCommendationRequest struct {
	ToUserID string `json:"to_user_id" validate:"required,uuid4"`
	Reason   string `json:"reason" validate:"required,max=4096"`
}
