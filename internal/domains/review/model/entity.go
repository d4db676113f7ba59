package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 10
)

// Review - mỗi user chỉ review một contributor một lần
type Review struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Text          string    `json:"text"`
	Rating        int       `json:"rating"`
	ContributorID uuid.UUID `json:"contributor_id"`
	UserID        uuid.UUID `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`

	// populated on reads
	Contributor *ContributorRef `json:"contributor,omitempty"`
}

func (r *Review) OwnerID() uuid.UUID { return r.UserID }

type ContributorRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}
