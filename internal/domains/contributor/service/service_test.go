package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/infrastructure/geocoder"
	"bookmarket-backend/internal/shared"
	"bookmarket-backend/internal/shared/apperror"
	"bookmarket-backend/internal/shared/policy"
)

// =====================================================
// MOCKS
// =====================================================

type MockContributorRepository struct {
	mock.Mock
}

func (m *MockContributorRepository) Create(ctx context.Context, c *model.Contributor) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockContributorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contributor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Contributor), args.Error(1)
}

func (m *MockContributorRepository) ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContributorRepository) Update(ctx context.Context, c *model.Contributor) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockContributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContributorRepository) Invalidate(ctx context.Context, id uuid.UUID) {
	m.Called(ctx, id)
}

func (m *MockContributorRepository) List(ctx context.Context, req model.ListContributorsRequest) ([]*model.Contributor, int64, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Contributor), args.Get(1).(int64), args.Error(2)
}

func (m *MockContributorRepository) ListWithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*model.Contributor, error) {
	args := m.Called(ctx, lat, lng, radiusKm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Contributor), args.Error(1)
}

func (m *MockContributorRepository) ListBookSummaries(ctx context.Context, id uuid.UUID) ([]model.BookSummary, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BookSummary), args.Error(1)
}

func (m *MockContributorRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockContributorRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error {
	return m.Called(ctx, id, photo).Error(0)
}

func (m *MockContributorRepository) UpdateAverageCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error {
	return m.Called(ctx, id, cost).Error(0)
}

type MockBookRemover struct {
	mock.Mock
}

func (m *MockBookRemover) DeleteByContributor(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*shared.GeoLocation, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.GeoLocation), args.Error(1)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	return m.Called(ctx, key, data, contentType).Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockImages struct {
	mock.Mock
}

func (m *MockImages) ValidateImage(data []byte) (string, error) {
	args := m.Called(data)
	return args.String(0), args.Error(1)
}

func (m *MockImages) Thumbnail(data []byte) ([]byte, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task.Type())
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*asynq.TaskInfo), args.Error(1)
}

// fakeTx runs fn directly and counts calls; commitErr fails the commit.
type fakeTx struct {
	calls     int
	commitErr error
	onCommit  func()
}

func (f *fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	if f.commitErr != nil {
		return f.commitErr
	}
	if f.onCommit != nil {
		f.onCommit()
	}
	return nil
}

type fixture struct {
	repo   *MockContributorRepository
	books  *MockBookRemover
	tx     *fakeTx
	geo    *MockGeocoder
	store  *MockStorage
	images *MockImages
	queue  *MockEnqueuer
	svc    ServiceInterface
}

func newFixture() *fixture {
	f := &fixture{
		repo:   new(MockContributorRepository),
		books:  new(MockBookRemover),
		tx:     &fakeTx{},
		geo:    new(MockGeocoder),
		store:  new(MockStorage),
		images: new(MockImages),
		queue:  new(MockEnqueuer),
	}
	f.svc = NewContributorService(f.repo, f.books, f.tx, f.geo, f.store, f.images, f.queue)
	return f
}

func validCreate() model.CreateContributorRequest {
	return model.CreateContributorRequest{
		Name:    "Devworks Bootcamp",
		Email:   "Enroll@Devworks.com",
		Phone:   "(111) 111-1111",
		Address: "233 Bay State Rd Boston MA 02215",
		City:    "Boston",
		State:   "MA",
		Zipcode: "02215",
	}
}

var boston = &shared.GeoLocation{Latitude: 42.35, Longitude: -71.10, FormattedAddress: "233 Bay State Rd, Boston, MA 02215, US", Zipcode: "02215"}

func requireKind(t *testing.T, err error, kind apperror.Kind, code string) {
	t.Helper()
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
	if code != "" {
		assert.Equal(t, code, appErr.Code)
	}
}

// =====================================================
// CREATE / CREATION GATE
// =====================================================

func TestCreate_DerivesSlugAndLocation(t *testing.T) {
	f := newFixture()
	actor := policy.Actor{ID: uuid.New(), Role: policy.RoleUser}

	f.repo.On("ExistsByUser", mock.Anything, actor.ID).Return(false, nil)
	f.geo.On("Geocode", mock.Anything, "233 Bay State Rd Boston MA 02215").Return(boston, nil)
	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Contributor")).Return(nil)

	c, err := f.svc.Create(context.Background(), actor, validCreate())
	require.NoError(t, err)

	assert.Equal(t, "devworks-bootcamp", c.Slug)
	assert.Equal(t, "enroll@devworks.com", c.Email)
	assert.Equal(t, *boston, c.Location)
	assert.Equal(t, actor.ID, c.UserID)
	assert.Equal(t, shared.DefaultPhoto, c.Photo)
	assert.True(t, c.AverageCost.IsZero())
}

func TestCreate_SecondRegistrationRejected(t *testing.T) {
	f := newFixture()
	actor := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	f.repo.On("ExistsByUser", mock.Anything, actor.ID).Return(true, nil)

	_, err := f.svc.Create(context.Background(), actor, validCreate())

	requireKind(t, err, apperror.KindValidation, model.CodeAlreadyRegistered)
	f.geo.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_AdminMayRegisterMany(t *testing.T) {
	f := newFixture()
	admin := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}
	f.repo.On("ExistsByUser", mock.Anything, admin.ID).Return(true, nil)
	f.geo.On("Geocode", mock.Anything, mock.Anything).Return(boston, nil)
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Create(context.Background(), admin, validCreate())
	assert.NoError(t, err)
}

func TestCreate_GeocodeNoResultWritesNothing(t *testing.T) {
	f := newFixture()
	actor := policy.Actor{ID: uuid.New(), Role: policy.RoleUser}
	f.repo.On("ExistsByUser", mock.Anything, actor.ID).Return(false, nil)
	f.geo.On("Geocode", mock.Anything, mock.Anything).Return(nil, geocoder.ErrNoResult)

	_, err := f.svc.Create(context.Background(), actor, validCreate())

	requireKind(t, err, apperror.KindValidation, geocoder.CodeNoResult)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_GeocoderDownIsDependencyFailure(t *testing.T) {
	f := newFixture()
	actor := policy.Actor{ID: uuid.New(), Role: policy.RoleUser}
	f.repo.On("ExistsByUser", mock.Anything, actor.ID).Return(false, nil)
	f.geo.On("Geocode", mock.Anything, mock.Anything).Return(nil, geocoder.ErrUnavailable)

	_, err := f.svc.Create(context.Background(), actor, validCreate())

	requireKind(t, err, apperror.KindDependency, geocoder.CodeUnavailable)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_InvalidInput(t *testing.T) {
	f := newFixture()
	req := validCreate()
	req.Name = ""
	req.Email = "not-an-email"

	_, err := f.svc.Create(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleUser}, req)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Details, "name")
	assert.Contains(t, appErr.Details, "email")
	f.repo.AssertNotCalled(t, "ExistsByUser", mock.Anything, mock.Anything)
}

func TestCreate_WhitespaceNameIsRequired(t *testing.T) {
	f := newFixture()
	req := validCreate()
	req.Name = "  \t  "

	_, err := f.svc.Create(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleUser}, req)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	assert.Contains(t, appErr.Details, "name")
	f.repo.AssertNotCalled(t, "ExistsByUser", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdate_WhitespaceNameIsRejected(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID, Name: "Old", Slug: "old"}
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	blank := "   "
	_, err := f.svc.Update(context.Background(), owner, existing.ID, model.UpdateContributorRequest{Name: &blank})

	requireKind(t, err, apperror.KindValidation, "")
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, "Old", existing.Name)
}

// =====================================================
// UPDATE / OWNERSHIP
// =====================================================

func TestUpdate_NotFoundBeforeForbidden(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.repo.On("GetByID", mock.Anything, id).Return(nil, model.ErrContributorNotFound)

	name := "New name"
	_, err := f.svc.Update(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}, id,
		model.UpdateContributorRequest{Name: &name})

	requireKind(t, err, apperror.KindNotFound, model.CodeContributorNotFound)
}

func TestUpdate_StrangerForbidden(t *testing.T) {
	f := newFixture()
	existing := &model.Contributor{ID: uuid.New(), UserID: uuid.New(), Name: "Old"}
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	name := "New name"
	_, err := f.svc.Update(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}, existing.ID,
		model.UpdateContributorRequest{Name: &name})

	requireKind(t, err, apperror.KindForbidden, apperror.CodeForbidden)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_OwnerRegeneratesSlugAndLocation(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID, Name: "Old", Slug: "old"}
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.geo.On("Geocode", mock.Anything, "02118").Return(boston, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	name, addr := "Codemasters", "02118"
	c, err := f.svc.Update(context.Background(), owner, existing.ID,
		model.UpdateContributorRequest{Name: &name, Address: &addr})
	require.NoError(t, err)
	assert.Equal(t, "codemasters", c.Slug)
	assert.Equal(t, boston.Latitude, c.Location.Latitude)
}

func TestUpdate_AdminMayEditAnyone(t *testing.T) {
	f := newFixture()
	existing := &model.Contributor{ID: uuid.New(), UserID: uuid.New(), Name: "Old"}
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	phone := "+1 555 0100"
	_, err := f.svc.Update(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}, existing.ID,
		model.UpdateContributorRequest{Phone: &phone})
	assert.NoError(t, err)
}

func TestUpdate_GeocodeFailureWritesNothing(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID}
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.geo.On("Geocode", mock.Anything, mock.Anything).Return(nil, geocoder.ErrNoResult)

	addr := "nowhere"
	_, err := f.svc.Update(context.Background(), owner, existing.ID, model.UpdateContributorRequest{Address: &addr})

	requireKind(t, err, apperror.KindValidation, geocoder.CodeNoResult)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// =====================================================
// DELETE / CASCADE
// =====================================================

func TestDelete_RemovesBooksThenContributor(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID}

	var order []string
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.books.On("DeleteByContributor", mock.Anything, existing.ID).
		Run(func(mock.Arguments) { order = append(order, "books") }).Return(int64(3), nil)
	f.repo.On("Delete", mock.Anything, existing.ID).
		Run(func(mock.Arguments) { order = append(order, "contributor") }).Return(nil)
	f.tx.onCommit = func() { order = append(order, "commit") }
	f.repo.On("Invalidate", mock.Anything, existing.ID).
		Run(func(mock.Arguments) { order = append(order, "invalidate") }).Return()
	f.queue.On("EnqueueContext", mock.Anything, shared.TypeDeleteContributorPhotos).
		Run(func(mock.Arguments) { order = append(order, "enqueue") }).Return(&asynq.TaskInfo{}, nil)

	require.NoError(t, f.svc.Delete(context.Background(), owner, existing.ID))

	assert.Equal(t, []string{"books", "contributor", "commit", "invalidate", "enqueue"}, order)
	assert.Equal(t, 1, f.tx.calls)
}

func TestDelete_AbortsWhenBookDeleteFails(t *testing.T) {
	f := newFixture()
	admin := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}
	existing := &model.Contributor{ID: uuid.New(), UserID: uuid.New()}
	boom := errors.New("connection reset")

	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.books.On("DeleteByContributor", mock.Anything, existing.ID).Return(int64(0), boom)

	err := f.svc.Delete(context.Background(), admin, existing.ID)

	assert.ErrorIs(t, err, boom)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	f.queue.AssertNotCalled(t, "EnqueueContext", mock.Anything, mock.Anything)
}

func TestDelete_CommitFailureKeepsCache(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID}
	f.tx.commitErr = errors.New("commit failed")

	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.books.On("DeleteByContributor", mock.Anything, existing.ID).Return(int64(1), nil)
	f.repo.On("Delete", mock.Anything, existing.ID).Return(nil)

	err := f.svc.Delete(context.Background(), owner, existing.ID)

	assert.ErrorIs(t, err, f.tx.commitErr)
	f.repo.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
	f.queue.AssertNotCalled(t, "EnqueueContext", mock.Anything, mock.Anything)
}

func TestDelete_EnqueueFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID}

	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.books.On("DeleteByContributor", mock.Anything, existing.ID).Return(int64(0), nil)
	f.repo.On("Delete", mock.Anything, existing.ID).Return(nil)
	f.repo.On("Invalidate", mock.Anything, existing.ID).Return()
	f.queue.On("EnqueueContext", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	assert.NoError(t, f.svc.Delete(context.Background(), owner, existing.ID))
}

func TestDelete_StrangerForbidden(t *testing.T) {
	f := newFixture()
	existing := &model.Contributor{ID: uuid.New(), UserID: uuid.New()}
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	err := f.svc.Delete(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}, existing.ID)

	requireKind(t, err, apperror.KindForbidden, "")
	f.books.AssertNotCalled(t, "DeleteByContributor", mock.Anything, mock.Anything)
	assert.Equal(t, 0, f.tx.calls)
}

// =====================================================
// PHOTO
// =====================================================

func TestUploadPhoto(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID}
	data := []byte("\x89PNG fake")
	thumb := []byte("thumb")
	prefix := model.PhotoPrefix(existing.ID)
	filename := "photo_" + existing.ID.String() + ".png"

	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.images.On("ValidateImage", data).Return(".png", nil)
	f.images.On("Thumbnail", data).Return(thumb, nil)
	f.store.On("Upload", mock.Anything, prefix+filename, data, mock.Anything).Return(nil)
	f.store.On("Upload", mock.Anything, prefix+"thumbnail.jpg", thumb, "image/jpeg").Return(nil)
	f.repo.On("UpdatePhoto", mock.Anything, existing.ID, filename).Return(nil)

	got, err := f.svc.UploadPhoto(context.Background(), owner, existing.ID, data)
	require.NoError(t, err)
	assert.Equal(t, filename, got)
	f.store.AssertExpectations(t)
}

func TestUploadPhoto_RemovesPreviousExtension(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID}
	existing.Photo = "photo_" + existing.ID.String() + ".png"
	data := []byte("\xff\xd8 fake jpeg")
	prefix := model.PhotoPrefix(existing.ID)
	filename := "photo_" + existing.ID.String() + ".jpg"

	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.images.On("ValidateImage", data).Return(".jpg", nil)
	f.images.On("Thumbnail", data).Return([]byte("thumb"), nil)
	f.store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.repo.On("UpdatePhoto", mock.Anything, existing.ID, filename).Return(nil)
	f.store.On("Delete", mock.Anything, prefix+existing.Photo).Return(errors.New("minio down")).Once()

	got, err := f.svc.UploadPhoto(context.Background(), owner, existing.ID, data)
	require.NoError(t, err)
	assert.Equal(t, filename, got)
	f.store.AssertExpectations(t)
}

func TestUploadPhoto_RejectsNonImage(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
	existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID}
	data := []byte("plain text")

	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.images.On("ValidateImage", data).Return("", errors.New("please upload an image file"))

	_, err := f.svc.UploadPhoto(context.Background(), owner, existing.ID, data)

	requireKind(t, err, apperror.KindValidation, apperror.CodeValidationFailed)
	f.store.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadPhoto_StrangerForbidden(t *testing.T) {
	f := newFixture()
	existing := &model.Contributor{ID: uuid.New(), UserID: uuid.New()}
	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

	_, err := f.svc.UploadPhoto(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}, existing.ID, []byte("x"))
	requireKind(t, err, apperror.KindForbidden, "")
}

func TestUploadPhoto_LookupAndOwnershipBeforeFileChecks(t *testing.T) {
	oversize := make([]byte, 2<<20)

	t.Run("missing contributor with oversize file", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.repo.On("GetByID", mock.Anything, id).Return(nil, model.ErrContributorNotFound)

		_, err := f.svc.UploadPhoto(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}, id, oversize)

		requireKind(t, err, apperror.KindNotFound, model.CodeContributorNotFound)
		f.images.AssertNotCalled(t, "ValidateImage", mock.Anything)
	})

	t.Run("missing contributor without file", func(t *testing.T) {
		f := newFixture()
		id := uuid.New()
		f.repo.On("GetByID", mock.Anything, id).Return(nil, model.ErrContributorNotFound)

		_, err := f.svc.UploadPhoto(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}, id, nil)

		requireKind(t, err, apperror.KindNotFound, model.CodeContributorNotFound)
	})

	t.Run("stranger without file", func(t *testing.T) {
		f := newFixture()
		existing := &model.Contributor{ID: uuid.New(), UserID: uuid.New()}
		f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

		_, err := f.svc.UploadPhoto(context.Background(), policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}, existing.ID, nil)

		requireKind(t, err, apperror.KindForbidden, "")
	})

	t.Run("owner without file", func(t *testing.T) {
		f := newFixture()
		owner := policy.Actor{ID: uuid.New(), Role: policy.RoleContributor}
		existing := &model.Contributor{ID: uuid.New(), UserID: owner.ID}
		f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)

		_, err := f.svc.UploadPhoto(context.Background(), owner, existing.ID, nil)

		assert.ErrorIs(t, err, model.ErrNoFile)
		f.images.AssertNotCalled(t, "ValidateImage", mock.Anything)
	})
}

func TestUploadPhoto_StorageDown(t *testing.T) {
	f := newFixture()
	owner := policy.Actor{ID: uuid.New(), Role: policy.RoleAdmin}
	existing := &model.Contributor{ID: uuid.New(), UserID: uuid.New()}
	data := []byte("img")

	f.repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	f.images.On("ValidateImage", data).Return(".jpg", nil)
	f.images.On("Thumbnail", data).Return([]byte("t"), nil)
	f.store.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("dial tcp"))

	_, err := f.svc.UploadPhoto(context.Background(), owner, existing.ID, data)
	requireKind(t, err, apperror.KindDependency, model.CodeStorageUnavailable)
	f.repo.AssertNotCalled(t, "UpdatePhoto", mock.Anything, mock.Anything, mock.Anything)
}

// =====================================================
// RADIUS
// =====================================================

func TestListWithinRadius(t *testing.T) {
	f := newFixture()
	f.geo.On("Geocode", mock.Anything, "02118").Return(boston, nil)
	f.repo.On("ListWithinRadius", mock.Anything, boston.Latitude, boston.Longitude, 10.0).
		Return([]*model.Contributor{{ID: uuid.New()}}, nil)

	got, err := f.svc.ListWithinRadius(context.Background(), model.RadiusRequest{Zipcode: "02118", Distance: 10})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestListWithinRadius_UnknownZipcode(t *testing.T) {
	f := newFixture()
	f.geo.On("Geocode", mock.Anything, "00000").Return(nil, geocoder.ErrNoResult)

	_, err := f.svc.ListWithinRadius(context.Background(), model.RadiusRequest{Zipcode: "00000", Distance: 10})
	requireKind(t, err, apperror.KindValidation, geocoder.CodeNoResult)
}
