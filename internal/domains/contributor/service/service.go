package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/domains/contributor/repository"
	"bookmarket-backend/internal/infrastructure/geocoder"
	"bookmarket-backend/internal/infrastructure/queue"
	"bookmarket-backend/internal/infrastructure/storage"
	"bookmarket-backend/internal/shared"
	"bookmarket-backend/internal/shared/apperror"
	"bookmarket-backend/internal/shared/policy"
	"bookmarket-backend/internal/shared/utils"
)

// BookRemover deletes every book of a contributor (cascade phase one).
type BookRemover interface {
	DeleteByContributor(ctx context.Context, contributorID uuid.UUID) (int64, error)
}

// Transactor is satisfied by *database.Transactor.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type PhotoStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

type PhotoProcessor interface {
	ValidateImage(data []byte) (string, error)
	Thumbnail(data []byte) ([]byte, error)
}

type contributorService struct {
	repo     repository.ContributorRepository
	books    BookRemover
	tx       Transactor
	geocoder geocoder.Geocoder
	storage  PhotoStorage
	images   PhotoProcessor
	queue    queue.Enqueuer
}

func NewContributorService(
	repo repository.ContributorRepository,
	books BookRemover,
	tx Transactor,
	geo geocoder.Geocoder,
	photos PhotoStorage,
	images PhotoProcessor,
	enqueuer queue.Enqueuer,
) ServiceInterface {
	return &contributorService{
		repo:     repo,
		books:    books,
		tx:       tx,
		geocoder: geo,
		storage:  photos,
		images:   images,
		queue:    enqueuer,
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *contributorService) Create(ctx context.Context, actor policy.Actor, req model.CreateContributorRequest) (*model.Contributor, error) {
	// 1. Validate input
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	// 2. Creation gate: user thường chỉ được đăng ký 1 contributor
	registered, err := s.repo.ExistsByUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if !policy.CanRegister(actor, registered) {
		return nil, model.ErrAlreadyRegistered
	}

	// 3. Derived fields: geocode address, slug
	loc, err := s.geocoder.Geocode(ctx, req.Address)
	if err != nil {
		return nil, geocoder.Classify("address", err)
	}

	c := &model.Contributor{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Website:  req.Website,
		Phone:    strings.TrimSpace(req.Phone),
		City:     req.City,
		State:    req.State,
		Zipcode:  req.Zipcode,
		Location: *loc,
		Photo:    shared.DefaultPhoto,
		UserID:   actor.ID,

		AverageCost: decimal.Zero,
	}
	c.Slug = utils.GenerateSlug(c.Name)

	// 4. Persist
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	log.Info().
		Str("contributor_id", c.ID.String()).
		Str("user_id", actor.ID.String()).
		Msg("contributor created")
	return c, nil
}

// =====================================================
// READ
// =====================================================

func (s *contributorService) Get(ctx context.Context, id uuid.UUID) (*model.Contributor, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	books, err := s.repo.ListBookSummaries(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Books = books
	return c, nil
}

func (s *contributorService) List(ctx context.Context, req model.ListContributorsRequest) ([]*model.Contributor, int64, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, apperror.FromValidation(err)
	}
	return s.repo.List(ctx, req)
}

func (s *contributorService) ListWithinRadius(ctx context.Context, req model.RadiusRequest) ([]*model.Contributor, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	loc, err := s.geocoder.Geocode(ctx, req.Zipcode)
	if err != nil {
		return nil, geocoder.Classify("zipcode", err)
	}

	return s.repo.ListWithinRadius(ctx, loc.Latitude, loc.Longitude, req.Distance)
}

// =====================================================
// UPDATE
// =====================================================

func (s *contributorService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, req model.UpdateContributorRequest) (*model.Contributor, error) {
	// 1. Lookup trước, NotFound phải trả về trước Forbidden
	c, err := s.loadForMutation(ctx, actor, id)
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
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
		c.Slug = utils.GenerateSlug(c.Name)
	}
	if req.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Website != nil {
		if *req.Website == "" {
			c.Website = nil
		} else {
			c.Website = req.Website
		}
	}
	if req.Phone != nil {
		c.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.State != nil {
		c.State = *req.State
	}
	if req.Zipcode != nil {
		c.Zipcode = *req.Zipcode
	}
	if req.Address != nil {
		loc, err := s.geocoder.Geocode(ctx, *req.Address)
		if err != nil {
			return nil, geocoder.Classify("address", err)
		}
		c.Location = *loc
	}

	// 4. Persist
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// =====================================================
// DELETE (cascade)
// =====================================================

func (s *contributorService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	if _, err := s.loadForMutation(ctx, actor, id); err != nil {
		return err
	}

	// Xóa books trước, rồi mới xóa contributor; lỗi ở bước 1 thì dừng
	var removedBooks int64
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		n, err := s.books.DeleteByContributor(ctx, id)
		if err != nil {
			return fmt.Errorf("delete books of contributor %s: %w", id, err)
		}
		removedBooks = n

		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	// Xóa cache sau commit, tránh GetByID đồng thời cache lại bản ghi đã xóa
	s.repo.Invalidate(ctx, id)

	log.Info().
		Str("contributor_id", id.String()).
		Int64("books_removed", removedBooks).
		Msg("contributor deleted")

	// Best effort: dọn ảnh trên MinIO ở worker
	if err := queue.Enqueue(ctx, s.queue, shared.TypeDeleteContributorPhotos,
		shared.DeleteContributorPhotosPayload{ContributorID: id},
		asynq.Queue(shared.QueueMaintenance), asynq.MaxRetry(3),
	); err != nil {
		log.Warn().Err(err).Str("contributor_id", id.String()).Msg("failed to enqueue photo cleanup")
	}
	return nil
}

// =====================================================
// PHOTO
// =====================================================

func (s *contributorService) UploadPhoto(ctx context.Context, actor policy.Actor, id uuid.UUID, data []byte) (string, error) {
	c, err := s.loadForMutation(ctx, actor, id)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", model.ErrNoFile
	}

	// 1. Validate image (jpeg/png, <= MAX_FILE_UPLOAD)
	ext, err := s.images.ValidateImage(data)
	if err != nil {
		return "", apperror.Validation(apperror.CodeValidationFailed, err.Error(),
			map[string]string{"file": err.Error()})
	}

	thumb, err := s.images.Thumbnail(data)
	if err != nil {
		return "", apperror.Validation(apperror.CodeValidationFailed, "Could not process image",
			map[string]string{"file": err.Error()})
	}

	// 2. Upload original + thumbnail
	filename := model.PhotoFilename(id, ext)
	prefix := model.PhotoPrefix(id)
	if err := s.storage.Upload(ctx, prefix+filename, data, http.DetectContentType(data)); err != nil {
		return "", model.StorageUnavailable(err)
	}
	if err := s.storage.Upload(ctx, prefix+"thumbnail.jpg", thumb, "image/jpeg"); err != nil {
		return "", model.StorageUnavailable(err)
	}

	// 3. Persist filename
	if err := s.repo.UpdatePhoto(ctx, id, filename); err != nil {
		return "", err
	}

	// 4. Ảnh cũ khác extension (photo_<id>.png → .jpg) không bị ghi đè, xóa best effort
	if old := c.Photo; old != "" && old != shared.DefaultPhoto && old != filename {
		if err := s.storage.Delete(ctx, prefix+old); err != nil {
			log.Warn().Err(err).Str("contributor_id", id.String()).Str("photo", old).Msg("failed to remove previous photo")
		}
	}
	return filename, nil
}

// loadForMutation: NotFound → ownership policy
func (s *contributorService) loadForMutation(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.Contributor, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanMutate(actor, c) {
		return nil, model.ErrNotOwner
	}
	return c, nil
}

var _ PhotoProcessor = (*storage.ImageProcessor)(nil)
