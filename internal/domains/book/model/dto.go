package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookmarket-backend/internal/shared/utils"
)

var (
	minPrice = decimal.Zero
	maxPrice = decimal.NewFromInt(500)
)

// priceRule: 0 <= price <= 500
var priceRule = validation.By(func(value interface{}) error {
	p, ok := value.(*decimal.Decimal)
	if !ok || p == nil {
		return nil
	}
	if p.LessThan(minPrice) || p.GreaterThan(maxPrice) {
		return errors.New("price must be between 0 and 500")
	}
	return nil
})

func categoryValues() []interface{} {
	out := make([]interface{}, len(Categories))
	for i, c := range Categories {
		out[i] = c
	}
	return out
}

// ========================================
// CREATE
// ========================================

// CreateBookRequest - POST /contributors/:id/books.
// Area chỉ dùng để geocode, không lưu.
type CreateBookRequest struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	Authors       string           `json:"authors"`
	Language      string           `json:"language"`
	Category      []string         `json:"category"`
	Pages         int              `json:"pages"`
	Price         *decimal.Decimal `json:"price"`
	Dimensions    *string          `json:"dimensions,omitempty"`
	Publisher     string           `json:"publisher"`
	PublishedYear *int             `json:"published_year,omitempty"`
	ISBN          *string          `json:"isbn,omitempty"`
	AverageRating *int             `json:"average_rating,omitempty"`
	Area          string           `json:"area"`
}

func (r *CreateBookRequest) Normalize() {
	utils.TrimAll(&r.Title, &r.Description, &r.Authors, &r.Language, r.Dimensions, &r.Publisher, r.ISBN, &r.Area)
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("please add a title"),
			validation.RuneLength(1, 50).Error("title cannot be more than 50 characters"),
		),
		validation.Field(&r.Description,
			validation.Required.Error("please add a description"),
			validation.RuneLength(1, 400).Error("description cannot be more than 400 characters"),
		),
		validation.Field(&r.Authors, validation.Required.Error("please add authors name")),
		validation.Field(&r.Language, validation.Required.Error("please enter the book language")),
		validation.Field(&r.Category,
			validation.Required.Error("please add at least one category"),
			validation.Each(validation.In(categoryValues()...).Error("unknown category")),
		),
		validation.Field(&r.Pages, validation.Required.Error("please add page numbers"), validation.Min(1)),
		validation.Field(&r.Price, validation.Required.Error("please add a price"), priceRule),
		validation.Field(&r.Publisher, validation.Required.Error("please add a publisher name")),
		validation.Field(&r.PublishedYear, validation.Min(1)),
		validation.Field(&r.ISBN, validation.NilOrNotEmpty, validation.Length(1, 20)),
		validation.Field(&r.AverageRating, validation.Min(1), validation.Max(10)),
		validation.Field(&r.Area, validation.Required.Error("address is required")),
	)
}

// ========================================
// UPDATE (partial)
// ========================================

type UpdateBookRequest struct {
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Authors       *string          `json:"authors,omitempty"`
	Language      *string          `json:"language,omitempty"`
	Category      []string         `json:"category,omitempty"`
	Pages         *int             `json:"pages,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	Dimensions    *string          `json:"dimensions,omitempty"`
	Publisher     *string          `json:"publisher,omitempty"`
	PublishedYear *int             `json:"published_year,omitempty"`
	ISBN          *string          `json:"isbn,omitempty"`
	AverageRating *int             `json:"average_rating,omitempty"`
	Area          *string          `json:"area,omitempty"`
}

func (r *UpdateBookRequest) Normalize() {
	utils.TrimAll(r.Title, r.Description, r.Authors, r.Language, r.Dimensions, r.Publisher, r.ISBN, r.Area)
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.RuneLength(1, 50)),
		validation.Field(&r.Description, validation.NilOrNotEmpty, validation.RuneLength(1, 400)),
		validation.Field(&r.Authors, validation.NilOrNotEmpty),
		validation.Field(&r.Language, validation.NilOrNotEmpty),
		validation.Field(&r.Category, validation.Each(validation.In(categoryValues()...).Error("unknown category"))),
		validation.Field(&r.Pages, validation.Min(1)),
		validation.Field(&r.Price, priceRule),
		validation.Field(&r.Publisher, validation.NilOrNotEmpty),
		validation.Field(&r.PublishedYear, validation.Min(1)),
		validation.Field(&r.ISBN, validation.Length(0, 20)),
		validation.Field(&r.AverageRating, validation.Min(1), validation.Max(10)),
		validation.Field(&r.Area, validation.NilOrNotEmpty),
	)
}

func (r UpdateBookRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Authors == nil && r.Language == nil &&
		r.Category == nil && r.Pages == nil && r.Price == nil && r.Dimensions == nil &&
		r.Publisher == nil && r.PublishedYear == nil && r.ISBN == nil &&
		r.AverageRating == nil && r.Area == nil
}

// ========================================
// LIST
// ========================================

// ListBooksRequest - GET /books?page&limit&sort&min_price&max_price&category
// Limit = 0 nghĩa là không phân trang (export).
type ListBooksRequest struct {
	Page     int
	Limit    int
	Sort     string
	MinPrice *float64
	MaxPrice *float64
	Category string
}

func (r ListBooksRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(1)),
		validation.Field(&r.Limit, validation.Min(0), validation.Max(100)),
		validation.Field(&r.MinPrice, validation.Min(0.0)),
		validation.Field(&r.MaxPrice, validation.Min(0.0)),
		validation.Field(&r.Category, validation.In(categoryValues()...).Error("unknown category")),
	)
}

// SeedBook là fixture của seeder
type SeedBook struct {
	ID            uuid.UUID `json:"_id"`
	ContributorID uuid.UUID `json:"contributor"`
	UserID        uuid.UUID `json:"user"`
	CreateBookRequest
}
