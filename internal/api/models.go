package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/taskwell/taskwell-api/internal/domain"
	"github.com/taskwell/taskwell-api/internal/store"
)

// Common request/response structures

// SignUpRequest defines the payload for the signup endpoint.
// The username becomes the user's nickname and the token subject.
type SignUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// SignInRequest defines the payload for the signin endpoint.
type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// TokenResponse defines the successful response for both authentication
// endpoints.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public projection of a user. Password material is
// never serialized.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Nickname string    `json:"nickname"`
	Email    string    `json:"email"`
}

// TaskResponse is the task DTO returned by all task endpoints.
type TaskResponse struct {
	ID        uuid.UUID      `json:"id"`
	Author    UserResponse   `json:"author"`
	Workers   []UserResponse `json:"workers"`
	Title     string         `json:"title"`
	Comment   string         `json:"comment"`
	Status    string         `json:"status"`
	Priority  string         `json:"priority"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// TaskPageResponse is one page of task DTOs plus paging metadata.
type TaskPageResponse struct {
	Items      []TaskResponse `json:"items"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalItems int64          `json:"total_items"`
	TotalPages int            `json:"total_pages"`
}

// NewUserResponse projects a domain user onto its public DTO.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Nickname: user.Nickname,
		Email:    user.Email,
	}
}

// NewTaskResponse projects a domain task onto its DTO.
func NewTaskResponse(task *domain.Task) TaskResponse {
	workers := make([]UserResponse, 0, len(task.Workers))
	for _, w := range task.Workers {
		workers = append(workers, NewUserResponse(w))
	}

	return TaskResponse{
		ID:        task.ID,
		Author:    NewUserResponse(task.Author),
		Workers:   workers,
		Title:     task.Title,
		Comment:   task.Comment,
		Status:    string(task.Status),
		Priority:  string(task.Priority),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
}

// NewTaskPageResponse projects a store page onto its DTO.
func NewTaskPageResponse(page *store.TaskPage) TaskPageResponse {
	items := make([]TaskResponse, 0, len(page.Items))
	for _, task := range page.Items {
		items = append(items, NewTaskResponse(task))
	}

	return TaskPageResponse{
		Items:      items,
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
