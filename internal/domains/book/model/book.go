package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookmarket-backend/internal/shared"
)

// Categories là tập giá trị hợp lệ của cột category
var Categories = []string{
	"Drama",
	"Engineering",
	"Fable",
	"Crime and Detective",
	"Fantasy",
	"Mystery",
	"Mythology",
	"Science",
	"Romance",
	"Satire",
	"Suspence/Thriller",
	"Comic/Novel",
	"Biography",
	"Poetry",
	"IT",
}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Book represents a book listed by a contributor
type Book struct {
	// Identity
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	ISBN  *string   `json:"isbn,omitempty"`

	// Content & Specs
	Description   string   `json:"description"`
	Authors       string   `json:"authors"`
	Language      string   `json:"language"`
	Category      []string `json:"category"`
	Pages         int      `json:"pages"`
	Dimensions    *string  `json:"dimensions,omitempty"`
	Publisher     string   `json:"publisher"`
	PublishedYear *int     `json:"published_year,omitempty"`

	// Pricing & rating
	Price         decimal.Decimal `json:"price"`
	AverageRating *int            `json:"average_rating,omitempty"`

	Photo    string             `json:"photo"`
	Location shared.GeoLocation `json:"location"`

	// Relationships
	ContributorID uuid.UUID           `json:"contributor_id"`
	UserID        uuid.UUID           `json:"user_id"`
	Contributor   *ContributorSummary `json:"contributor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// OwnerID: người tạo sách (không phải chủ contributor)
func (b *Book) OwnerID() uuid.UUID { return b.UserID }

// ContributorSummary is the populated contributor on book reads.
type ContributorSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone,omitempty"`
}
