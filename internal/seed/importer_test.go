package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookmodel "bookmarket-backend/internal/domains/book/model"
	contributormodel "bookmarket-backend/internal/domains/contributor/model"
	reviewmodel "bookmarket-backend/internal/domains/review/model"
	"bookmarket-backend/internal/domains/user"
	"bookmarket-backend/internal/shared/policy"
)

type recorder struct {
	users        []uuid.UUID
	contributors []policy.Actor
	bookTargets  []uuid.UUID
	reviewActors []policy.Actor
	reviewTarget []uuid.UUID
	createdIDs   map[string]uuid.UUID
	failBook     error
}

func (r *recorder) Seed(_ context.Context, req user.SeedUser) (*user.UserDTO, error) {
	r.users = append(r.users, req.ID)
	return &user.UserDTO{ID: req.ID, Email: req.Email}, nil
}

func (r *recorder) Create(_ context.Context, actor policy.Actor, req contributormodel.CreateContributorRequest) (*contributormodel.Contributor, error) {
	r.contributors = append(r.contributors, actor)
	id := uuid.New()
	r.createdIDs[req.Name] = id
	return &contributormodel.Contributor{ID: id, Name: req.Name, UserID: actor.ID}, nil
}

type bookRecorder struct{ *recorder }

func (b bookRecorder) Create(_ context.Context, _ policy.Actor, contributorID uuid.UUID, req bookmodel.CreateBookRequest) (*bookmodel.Book, error) {
	if b.failBook != nil {
		return nil, b.failBook
	}
	b.bookTargets = append(b.bookTargets, contributorID)
	return &bookmodel.Book{ID: uuid.New(), Title: req.Title, ContributorID: contributorID}, nil
}

func (r *recorder) CreateReview(_ context.Context, actor policy.Actor, contributorID uuid.UUID, req reviewmodel.CreateReviewRequest) (*reviewmodel.Review, error) {
	r.reviewActors = append(r.reviewActors, actor)
	r.reviewTarget = append(r.reviewTarget, contributorID)
	return &reviewmodel.Review{ID: uuid.New(), Title: req.Title}, nil
}

func newRecorder() *recorder {
	return &recorder{createdIDs: map[string]uuid.UUID{}}
}

func TestImport_MapsFixtureContributorIDs(t *testing.T) {
	rec := newRecorder()
	imp := NewImporter(rec, rec, bookRecorder{rec}, rec)

	owner := uuid.New()
	reviewer := uuid.New()
	fixtureContributor := uuid.New()

	f := &Fixtures{
		Users: []user.SeedUser{
			{ID: owner, Name: "Owner", Email: "owner@example.com", Password: "123456", Role: "contributor"},
			{ID: reviewer, Name: "Reader", Email: "reader@example.com", Password: "123456", Role: "user"},
		},
		Contributors: []contributormodel.SeedContributor{
			{ID: fixtureContributor, UserID: owner, CreateContributorRequest: contributormodel.CreateContributorRequest{Name: "Old Pages"}},
		},
		Books: []bookmodel.SeedBook{
			{ContributorID: fixtureContributor, UserID: owner, CreateBookRequest: bookmodel.CreateBookRequest{Title: "Dune"}},
		},
		Reviews: []reviewmodel.SeedReview{
			{ContributorID: fixtureContributor, UserID: reviewer, CreateReviewRequest: reviewmodel.CreateReviewRequest{Title: "Nice", Rating: 8}},
		},
	}

	res, err := imp.Import(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, &Result{Users: 2, Contributors: 1, Books: 1, Reviews: 1}, res)

	created := rec.createdIDs["Old Pages"]
	assert.Equal(t, []uuid.UUID{created}, rec.bookTargets)
	assert.Equal(t, []uuid.UUID{created}, rec.reviewTarget)
	assert.Equal(t, owner, rec.contributors[0].ID)
	assert.Equal(t, policy.RoleAdmin, rec.contributors[0].Role)
	assert.Equal(t, policy.Actor{ID: reviewer, Role: policy.RoleUser}, rec.reviewActors[0])
}

func TestImport_UnknownContributorStops(t *testing.T) {
	rec := newRecorder()
	imp := NewImporter(rec, rec, bookRecorder{rec}, rec)

	f := &Fixtures{
		Books: []bookmodel.SeedBook{{ContributorID: uuid.New(), CreateBookRequest: bookmodel.CreateBookRequest{Title: "Orphan"}}},
	}

	res, err := imp.Import(context.Background(), f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown contributor")
	assert.Zero(t, res.Books)
}

func TestImport_WrapsServiceErrors(t *testing.T) {
	rec := newRecorder()
	rec.failBook = errors.New("geocode failed")
	imp := NewImporter(rec, rec, bookRecorder{rec}, rec)

	cid := uuid.New()
	f := &Fixtures{
		Contributors: []contributormodel.SeedContributor{{ID: cid, UserID: uuid.New(), CreateContributorRequest: contributormodel.CreateContributorRequest{Name: "A"}}},
		Books:        []bookmodel.SeedBook{{ContributorID: cid, CreateBookRequest: bookmodel.CreateBookRequest{Title: "B"}}},
	}

	_, err := imp.Import(context.Background(), f)
	assert.ErrorIs(t, err, rec.failBook)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	owner := uuid.New()
	users := `[{"_id":"` + owner.String() + `","name":"Owner","email":"o@example.com","password":"123456","role":"contributor"}]`
	contributors := `[{"_id":"` + uuid.New().String() + `","user":"` + owner.String() + `","name":"Old Pages","address":"233 Bay State Rd Boston MA 02215"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, UsersFile), []byte(users), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ContributorsFile), []byte(contributors), 0o600))

	f, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, f.Users, 1)
	assert.Equal(t, owner, f.Users[0].ID)
	require.Len(t, f.Contributors, 1)
	assert.Equal(t, "Old Pages", f.Contributors[0].Name)
	assert.Equal(t, owner, f.Contributors[0].UserID)
	assert.Empty(t, f.Books)
	assert.Empty(t, f.Reviews)
}

func TestLoadDir_BadJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, BooksFile), []byte(`{not json`), 0o600))

	_, err := LoadDir(dir)
	assert.Error(t, err)
}
