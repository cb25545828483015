package transport

import "github.com/taskflow/backend/domain"

// IdentityRequest is the provider payload forwarded by the client after an
// interactive sign-in.
type IdentityRequest struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

func (r IdentityRequest) ToUser() *domain.User {
	return &domain.User{
		ID:          r.ID,
		Email:       r.Email,
		DisplayName: r.DisplayName,
		PhotoURL:    r.PhotoURL,
	}
}

type LoginRequest struct {
	User IdentityRequest `json:"user"`
	TTL  int             `json:"ttl_seconds"`
}

type LogoutRequest struct {
	SessionID string `json:"session_id"`
}

type RefreshRequest struct {
	SessionID string `json:"session_id"`
	TTL       int    `json:"ttl_seconds"`
}

type TaskCreateRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	DueDate     string   `json:"due_date"`
	Status      string   `json:"status"`
	Attachments []string `json:"attachments"`
}

// TaskUpdateRequest mirrors domain.TaskPatch on the wire: absent fields stay
// untouched, present fields overwrite.
type TaskUpdateRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	DueDate     *string   `json:"due_date"`
	Status      *string   `json:"status"`
	Attachments *[]string `json:"attachments"`
}

func (r TaskUpdateRequest) ToPatch() domain.TaskPatch {
	patch := domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Attachments: r.Attachments,
	}
	if r.Category != nil {
		category := domain.Category(*r.Category)
		patch.Category = &category
	}
	if r.Status != nil {
		status := domain.Status(*r.Status)
		patch.Status = &status
	}
	return patch
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status"`
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type SessionResponse struct {
	Session interface{} `json:"session"`
	Token   string      `json:"token"`
}

type UploadResponse struct {
	URL string `json:"url"`
}
