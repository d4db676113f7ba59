package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"bookmarket-backend/internal/shared/utils"
)

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateReviewRequest - POST /contributors/:id/reviews
type CreateReviewRequest struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

func (r *CreateReviewRequest) Normalize() {
	utils.TrimAll(&r.Title, &r.Text)
}

func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("please add a title for the review"),
			validation.RuneLength(1, 100).Error("title cannot be more than 100 characters"),
		),
		validation.Field(&r.Text, validation.Required.Error("please add some text")),
		validation.Field(&r.Rating,
			validation.Required.Error("please add a rating between 1 and 10"),
			validation.Min(MinRating).Error("rating must be at least 1"),
			validation.Max(MaxRating).Error("rating must be at most 10"),
		),
	)
}

// UpdateReviewRequest - PUT /reviews/:id (partial)
type UpdateReviewRequest struct {
	Title  *string `json:"title,omitempty"`
	Text   *string `json:"text,omitempty"`
	Rating *int    `json:"rating,omitempty"`
}

func (r *UpdateReviewRequest) Normalize() {
	utils.TrimAll(r.Title, r.Text)
}

func (r UpdateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.RuneLength(1, 100)),
		validation.Field(&r.Text, validation.NilOrNotEmpty),
		validation.Field(&r.Rating, validation.NilOrNotEmpty, validation.Min(MinRating), validation.Max(MaxRating)),
	)
}

func (r UpdateReviewRequest) IsEmpty() bool {
	return r.Title == nil && r.Text == nil && r.Rating == nil
}

// ListReviewsRequest - GET /reviews?page&limit&sort&min_rating
type ListReviewsRequest struct {
	Page      int
	Limit     int
	Sort      string
	MinRating int
}

func (r ListReviewsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(1)),
		validation.Field(&r.Limit, validation.Min(1), validation.Max(100)),
		validation.Field(&r.MinRating, validation.Min(MinRating), validation.Max(MaxRating)),
	)
}

// SeedReview là fixture của seeder
type SeedReview struct {
	ID            uuid.UUID `json:"_id"`
	ContributorID uuid.UUID `json:"contributor"`
	UserID        uuid.UUID `json:"user"`
	CreateReviewRequest
}
