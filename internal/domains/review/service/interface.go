package service

import (
	"context"

	"github.com/google/uuid"

	"bookmarket-backend/internal/domains/review/model"
	"bookmarket-backend/internal/shared/policy"
)

// =====================================================
// REVIEW SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// CreateReview: one review per (contributor, user)
	CreateReview(ctx context.Context, actor policy.Actor, contributorID uuid.UUID, req model.CreateReviewRequest) (*model.Review, error)

	GetReview(ctx context.Context, id uuid.UUID) (*model.Review, error)

	ListReviews(ctx context.Context, req model.ListReviewsRequest) ([]*model.Review, int64, error)

	ListContributorReviews(ctx context.Context, contributorID uuid.UUID) ([]*model.Review, error)

	UpdateReview(ctx context.Context, actor policy.Actor, id uuid.UUID, req model.UpdateReviewRequest) (*model.Review, error)

	DeleteReview(ctx context.Context, actor policy.Actor, id uuid.UUID) error
}
