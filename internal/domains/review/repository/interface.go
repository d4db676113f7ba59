package repository

import (
	"context"

	"github.com/google/uuid"

	"bookmarket-backend/internal/domains/review/model"
)

// =====================================================
// REVIEW REPOSITORY INTERFACE
// =====================================================

type ReviewRepository interface {
	// Create returns model.ErrAlreadyReviewed when (contributor, user) exists
	Create(ctx context.Context, review *model.Review) error

	// GetByID returns model.ErrReviewNotFound when missing
	GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error)

	Update(ctx context.Context, review *model.Review) error

	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, req model.ListReviewsRequest) ([]*model.Review, int64, error)

	ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*model.Review, error)
}
