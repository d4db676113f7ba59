package service

import (
	"context"

	"github.com/google/uuid"

	"bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/shared/policy"
)

// =====================================================
// CONTRIBUTOR SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// Create applies the creation gate, then geocodes and persists
	Create(ctx context.Context, actor policy.Actor, req model.CreateContributorRequest) (*model.Contributor, error)

	// Get returns the contributor with its books
	Get(ctx context.Context, id uuid.UUID) (*model.Contributor, error)

	List(ctx context.Context, req model.ListContributorsRequest) ([]*model.Contributor, int64, error)

	ListWithinRadius(ctx context.Context, req model.RadiusRequest) ([]*model.Contributor, error)

	Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req model.UpdateContributorRequest) (*model.Contributor, error)

	// Delete removes the contributor's books, then the contributor
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// UploadPhoto stores the photo and returns the persisted filename
	UploadPhoto(ctx context.Context, actor policy.Actor, id uuid.UUID, data []byte) (string, error)
}
