package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"bookmarket-backend/internal/domains/book/model"
	"bookmarket-backend/internal/domains/book/repository"
	contributormodel "bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/infrastructure/geocoder"
	"bookmarket-backend/internal/shared"
	"bookmarket-backend/internal/shared/apperror"
	"bookmarket-backend/internal/shared/policy"
	"bookmarket-backend/internal/shared/utils"
)

// ContributorLookup resolves the contributor a book is added to.
type ContributorLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*contributormodel.Contributor, error)
}

type BookService struct {
	repo         repository.RepositoryInterface
	contributors ContributorLookup
	geocoder     geocoder.Geocoder
	averageCost  *AverageCostRecalculator
}

func NewService(
	repo repository.RepositoryInterface,
	contributors ContributorLookup,
	geo geocoder.Geocoder,
	averageCost *AverageCostRecalculator,
) ServiceInterface {
	return &BookService{
		repo:         repo,
		contributors: contributors,
		geocoder:     geo,
		averageCost:  averageCost,
	}
}

// =====================================================
// READ
// =====================================================

func (s *BookService) List(ctx context.Context, req model.ListBooksRequest) ([]*model.Book, int64, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, apperror.FromValidation(err)
	}
	return s.repo.List(ctx, req)
}

func (s *BookService) ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*model.Book, error) {
	return s.repo.ListByContributor(ctx, contributorID)
}

func (s *BookService) Get(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	return s.repo.GetByID(ctx, id)
}

// =====================================================
// CREATE
// =====================================================

func (s *BookService) Create(ctx context.Context, actor policy.Actor, contributorID uuid.UUID, req model.CreateBookRequest) (*model.Book, error) {
	// 1. Contributor phải tồn tại và thuộc về actor (admin: bất kỳ)
	contributor, err := s.contributors.GetByID(ctx, contributorID)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(actor, contributor) {
		return nil, model.ErrNotContributorOwner
	}

	// 2. Validate input
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// 3. Derived fields: geocode area, slug
	loc, err := s.geocoder.Geocode(ctx, req.Area)
	if err != nil {
		return nil, geocoder.Classify("area", err)
	}

	book := &model.Book{
		ID:            uuid.New(),
		Title:         strings.TrimSpace(req.Title),
		ISBN:          req.ISBN,
		Description:   req.Description,
		Authors:       req.Authors,
		Language:      req.Language,
		Category:      req.Category,
		Pages:         req.Pages,
		Dimensions:    req.Dimensions,
		Publisher:     req.Publisher,
		PublishedYear: req.PublishedYear,
		Price:         *req.Price,
		AverageRating: req.AverageRating,
		Photo:         shared.DefaultPhoto,
		Location:      *loc,
		ContributorID: contributorID,
		UserID:        actor.ID,
	}
	book.Slug = utils.GenerateSlug(book.Title)

	// 4. Persist
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	// 5. Recompute average cost (lỗi chỉ log)
	s.averageCost.RecalculateBestEffort(ctx, contributorID)

	log.Info().
		Str("book_id", book.ID.String()).
		Str("contributor_id", contributorID.String()).
		Msg("book created")
	return book, nil
}

// =====================================================
// UPDATE
// =====================================================

func (s *BookService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req model.UpdateBookRequest) (*model.Book, error) {
	// 1. Lookup → ownership
	book, err := s.loadForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	// 2. Validate
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}
	if req.IsEmpty() {
		return nil, model.ErrEmptyUpdate
	}

	// 3. Apply changes + derived fields
	priceChanged := false
	if req.Title != nil {
		book.Title = strings.TrimSpace(*req.Title)
		book.Slug = utils.GenerateSlug(book.Title)
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Authors != nil {
		book.Authors = *req.Authors
	}
	if req.Language != nil {
		book.Language = *req.Language
	}
	if len(req.Category) > 0 {
		book.Category = req.Category
	}
	if req.Pages != nil {
		book.Pages = *req.Pages
	}
	if req.Price != nil {
		priceChanged = !req.Price.Equal(book.Price)
		book.Price = *req.Price
	}
	if req.Dimensions != nil {
		book.Dimensions = req.Dimensions
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.PublishedYear != nil {
		book.PublishedYear = req.PublishedYear
	}
	if req.ISBN != nil {
		if *req.ISBN == "" {
			book.ISBN = nil
		} else {
			book.ISBN = req.ISBN
		}
	}
	if req.AverageRating != nil {
		book.AverageRating = req.AverageRating
	}
	if req.Area != nil {
		loc, err := s.geocoder.Geocode(ctx, *req.Area)
		if err != nil {
			return nil, geocoder.Classify("area", err)
		}
		book.Location = *loc
	}

	// 4. Persist
	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	if priceChanged {
		s.averageCost.RecalculateBestEffort(ctx, book.ContributorID)
	}
	return book, nil
}

// =====================================================
// DELETE
// =====================================================

func (s *BookService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	book, err := s.loadForMutation(ctx, actor, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// tính lại sau khi đã xóa để sách này không còn trong aggregate
	s.averageCost.RecalculateBestEffort(ctx, book.ContributorID)

	log.Info().
		Str("book_id", id.String()).
		Str("contributor_id", book.ContributorID.String()).
		Msg("book deleted")
	return nil
}

func (s *BookService) loadForMutation(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(actor, book) {
		return nil, model.ErrNotOwner
	}
	return book, nil
}
