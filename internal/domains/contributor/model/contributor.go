package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookmarket-backend/internal/shared"
)

// Contributor là người bán/đăng sách. Mỗi user (không phải admin) chỉ có một.
type Contributor struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Slug        string             `json:"slug"`
	Email       string             `json:"email"`
	Website     *string            `json:"website,omitempty"`
	Phone       string             `json:"phone"`
	City        string             `json:"city"`
	State       string             `json:"state"`
	Zipcode     string             `json:"zipcode"`
	Location    shared.GeoLocation `json:"location"`
	AverageCost decimal.Decimal    `json:"average_cost"` // 0 khi chưa có sách
	Photo       string             `json:"photo"`
	UserID      uuid.UUID          `json:"user_id"`
	CreatedAt   time.Time          `json:"created_at"`

	// Books is only populated on single reads.
	Books []BookSummary `json:"books,omitempty"`
}

func (c *Contributor) OwnerID() uuid.UUID { return c.UserID }

// BookSummary is the reverse-populated view of a contributor's books.
type BookSummary struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	Category  []string        `json:"category"`
	CreatedAt time.Time       `json:"created_at"`
}

// PhotoPrefix is the object-storage folder holding a contributor's photos.
func PhotoPrefix(id uuid.UUID) string {
	return fmt.Sprintf("contributors/%s/", id)
}

// PhotoFilename is the stored filename, e.g. photo_<id>.jpg
func PhotoFilename(id uuid.UUID, ext string) string {
	return fmt.Sprintf("photo_%s%s", id, ext)
}
