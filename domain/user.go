package domain

import "time"

// User mirrors an identity provided by the external auth provider. All
// fields except timestamps come from the provider payload, never clients.
type User struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) Validate() error {
	if u == nil || u.ID == "" {
		return NewError(ErrCodeInvalid, "identity id is required")
	}
	return nil
}
