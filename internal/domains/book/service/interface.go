package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"bookmarket-backend/internal/domains/book/model"
	"bookmarket-backend/internal/shared/policy"
)

// =====================================================
// BOOK SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	List(ctx context.Context, req model.ListBooksRequest) ([]*model.Book, int64, error)

	ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*model.Book, error)

	// Get returns the book with its contributor summary
	Get(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// Create adds a book to a contributor the actor owns (admins: any)
	Create(ctx context.Context, actor policy.Actor, contributorID uuid.UUID, req model.CreateBookRequest) (*model.Book, error)

	Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error)

	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// ExportBooksToExcel builds an xlsx of the filtered book list
	ExportBooksToExcel(ctx context.Context, req model.ListBooksRequest) (*excelize.File, int, error)
}
