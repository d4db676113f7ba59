package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookmarket-backend/internal/domains/contributor/model"
)

// =====================================================
// CONTRIBUTOR REPOSITORY INTERFACE
// =====================================================

type ContributorRepository interface {
	// ========================================
	// CRUD Operations
	// ========================================

	// Create returns model.DuplicateField on email/phone conflicts
	Create(ctx context.Context, c *model.Contributor) error

	// GetByID returns model.ErrContributorNotFound when missing
	GetByID(ctx context.Context, id uuid.UUID) (*model.Contributor, error)

	// ExistsByUser backs the creation gate
	ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error)

	Update(ctx context.Context, c *model.Contributor) error

	// Delete không xóa cache; caller gọi Invalidate sau khi transaction commit
	Delete(ctx context.Context, id uuid.UUID) error

	// Invalidate drops the cached copy of a contributor
	Invalidate(ctx context.Context, id uuid.UUID)

	// ========================================
	// LIST Operations
	// ========================================

	List(ctx context.Context, req model.ListContributorsRequest) ([]*model.Contributor, int64, error)

	// ListWithinRadius lists contributors within radiusKm of (lat, lng)
	ListWithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*model.Contributor, error)

	// ListBookSummaries reverse-populates a contributor's books
	ListBookSummaries(ctx context.Context, id uuid.UUID) ([]model.BookSummary, error)

	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	// ========================================
	// Derived fields
	// ========================================

	UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error

	UpdateAverageCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error
}
