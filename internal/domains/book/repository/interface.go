package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"bookmarket-backend/internal/domains/book/model"
)

// =====================================================
// BOOK REPOSITORY INTERFACE
// =====================================================

type RepositoryInterface interface {
	// ========================================
	// CRUD Operations
	// ========================================

	// Create returns model.DuplicateField on title/isbn conflicts
	Create(ctx context.Context, book *model.Book) error

	// GetByID joins the contributor summary; model.ErrBookNotFound when missing
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	Update(ctx context.Context, book *model.Book) error

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByContributor removes every book of a contributor and returns the count
	DeleteByContributor(ctx context.Context, contributorID uuid.UUID) (int64, error)

	// ========================================
	// LIST Operations
	// ========================================

	List(ctx context.Context, req model.ListBooksRequest) ([]*model.Book, int64, error)

	ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*model.Book, error)

	// ========================================
	// Aggregates
	// ========================================

	// AveragePrice returns mean(price) and the number of books; mean is zero when count is 0
	AveragePrice(ctx context.Context, contributorID uuid.UUID) (decimal.Decimal, int64, error)
}
