package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"bookmarket-backend/internal/shared/utils"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ()-]{6,20}$`)

// ========================================
// CREATE
// ========================================

// CreateContributorRequest - POST /contributors.
// Address chỉ dùng để geocode, không lưu vào DB.
type CreateContributorRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Website *string `json:"website,omitempty"`
	Phone   string  `json:"phone"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   string  `json:"state"`
	Zipcode string  `json:"zipcode"`
}

func (r *CreateContributorRequest) Normalize() {
	utils.TrimAll(&r.Name, &r.Email, r.Website, &r.Phone, &r.Address, &r.City, &r.State, &r.Zipcode)
}

func (r CreateContributorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("please enter your name"),
			validation.RuneLength(1, 50).Error("name should not exceed 50 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.EmailFormat.Error("please enter a valid email"),
		),
		validation.Field(&r.Website, validation.NilOrNotEmpty, is.URL.Error("please enter a valid URL")),
		validation.Field(&r.Phone,
			validation.Required.Error("phone number is required"),
			validation.Length(1, 20).Error("length exceeds the normal phone number"),
			validation.Match(phonePattern).Error("please enter a valid phone number"),
		),
		validation.Field(&r.Address, validation.Required.Error("address is required")),
		validation.Field(&r.City, validation.Required.Error("enter city")),
		validation.Field(&r.State, validation.Required.Error("enter state")),
		validation.Field(&r.Zipcode, validation.Required.Error("zipcode is required"), validation.Length(1, 20)),
	)
}

// ========================================
// UPDATE (partial)
// ========================================

type UpdateContributorRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Website *string `json:"website,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	Zipcode *string `json:"zipcode,omitempty"`
}

func (r *UpdateContributorRequest) Normalize() {
	utils.TrimAll(r.Name, r.Email, r.Website, r.Phone, r.Address, r.City, r.State, r.Zipcode)
}

func (r UpdateContributorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.RuneLength(1, 50)),
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat),
		validation.Field(&r.Website, is.URL),
		validation.Field(&r.Phone, validation.NilOrNotEmpty, validation.Length(1, 20), validation.Match(phonePattern)),
		validation.Field(&r.Address, validation.NilOrNotEmpty),
		validation.Field(&r.City, validation.NilOrNotEmpty),
		validation.Field(&r.State, validation.NilOrNotEmpty),
		validation.Field(&r.Zipcode, validation.NilOrNotEmpty, validation.Length(1, 20)),
	)
}

func (r UpdateContributorRequest) IsEmpty() bool {
	return r.Name == nil && r.Email == nil && r.Website == nil && r.Phone == nil &&
		r.Address == nil && r.City == nil && r.State == nil && r.Zipcode == nil
}

// ========================================
// LIST
// ========================================

// ListContributorsRequest - GET /contributors?page&limit&sort&min_cost&max_cost&city
type ListContributorsRequest struct {
	Page    int
	Limit   int
	Sort    string
	MinCost *float64
	MaxCost *float64
	City    string
}

func (r ListContributorsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(1)),
		validation.Field(&r.Limit, validation.Min(1), validation.Max(100)),
		validation.Field(&r.MinCost, validation.Min(0.0)),
		validation.Field(&r.MaxCost, validation.Min(0.0)),
	)
}

// RadiusRequest - GET /contributors/radius/:zipcode/:distance (km)
type RadiusRequest struct {
	Zipcode  string
	Distance float64
}

func (r RadiusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Zipcode, validation.Required),
		validation.Field(&r.Distance, validation.Required, validation.Min(0.0), validation.Max(20037.5)),
	)
}

// SeedContributor là fixture của seeder; ID/UserID là id trong file JSON.
type SeedContributor struct {
	ID     uuid.UUID `json:"_id"`
	UserID uuid.UUID `json:"user"`
	CreateContributorRequest
}
