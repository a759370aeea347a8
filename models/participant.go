package models

import (
	"time"
)

// Participant is a friend the current user splits expenses with. The ID is
// the identifier used in split inputs (a handle or an email address).
type Participant struct {
	ID        string    `gorm:"primaryKey;size:255" json:"id"`
	OwnerID   string    `gorm:"not null;size:255;index" json:"owner_id"`
	Name      string    `gorm:"size:100" json:"name"`
	Email     string    `gorm:"size:255" json:"email,omitempty"`
	FCMToken  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateParticipantRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	FCMToken string `json:"fcm_token"`
}
