package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	bookmodel "bookmarket-backend/internal/domains/book/model"
	contributormodel "bookmarket-backend/internal/domains/contributor/model"
	reviewmodel "bookmarket-backend/internal/domains/review/model"
	"bookmarket-backend/internal/domains/user"
	"bookmarket-backend/internal/shared/policy"
)

// Fixture file names inside the import directory.
const (
	UsersFile        = "users.json"
	ContributorsFile = "contributors.json"
	BooksFile        = "books.json"
	ReviewsFile      = "reviews.json"
)

// ========================================
// DEPENDENCIES (subset của các service)
// ========================================

type UserSeeder interface {
	Seed(ctx context.Context, req user.SeedUser) (*user.UserDTO, error)
}

type ContributorCreator interface {
	Create(ctx context.Context, actor policy.Actor, req contributormodel.CreateContributorRequest) (*contributormodel.Contributor, error)
}

type BookCreator interface {
	Create(ctx context.Context, actor policy.Actor, contributorID uuid.UUID, req bookmodel.CreateBookRequest) (*bookmodel.Book, error)
}

type ReviewCreator interface {
	CreateReview(ctx context.Context, actor policy.Actor, contributorID uuid.UUID, req reviewmodel.CreateReviewRequest) (*reviewmodel.Review, error)
}

// Fixtures is the decoded content of an import directory.
type Fixtures struct {
	Users        []user.SeedUser
	Contributors []contributormodel.SeedContributor
	Books        []bookmodel.SeedBook
	Reviews      []reviewmodel.SeedReview
}

// Result counts created records per collection.
type Result struct {
	Users        int
	Contributors int
	Books        int
	Reviews      int
}

// Importer pushes fixtures through the services so geocoding, slugs and
// average-cost recomputation apply exactly as they do for API writes.
type Importer struct {
	users        UserSeeder
	contributors ContributorCreator
	books        BookCreator
	reviews      ReviewCreator
}

func NewImporter(users UserSeeder, contributors ContributorCreator, books BookCreator, reviews ReviewCreator) *Importer {
	return &Importer{
		users:        users,
		contributors: contributors,
		books:        books,
		reviews:      reviews,
	}
}

// LoadDir đọc 4 file JSON; file nào không tồn tại thì bỏ qua
func LoadDir(dir string) (*Fixtures, error) {
	f := &Fixtures{}
	files := []struct {
		name string
		dest interface{}
	}{
		{UsersFile, &f.Users},
		{ContributorsFile, &f.Contributors},
		{BooksFile, &f.Books},
		{ReviewsFile, &f.Reviews},
	}

	for _, file := range files {
		path := filepath.Join(dir, file.name)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			log.Warn().Str("file", path).Msg("fixture file missing, skipped")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := json.Unmarshal(data, file.dest); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
	}
	return f, nil
}

// Import tạo dữ liệu theo thứ tự users → contributors → books → reviews.
// Contributor ids trong file được map sang id mới để books/reviews trỏ đúng.
func (i *Importer) Import(ctx context.Context, f *Fixtures) (*Result, error) {
	res := &Result{}

	// STEP 1: Users giữ nguyên fixture id
	for _, u := range f.Users {
		if _, err := i.users.Seed(ctx, u); err != nil {
			return res, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		res.Users++
	}

	// STEP 2: Contributors (admin actor bỏ qua creation gate, owner = fixture user)
	contributorIDs := make(map[uuid.UUID]uuid.UUID, len(f.Contributors))
	for _, c := range f.Contributors {
		created, err := i.contributors.Create(ctx, seedActor(c.UserID), c.CreateContributorRequest)
		if err != nil {
			return res, fmt.Errorf("seed contributor %q: %w", c.Name, err)
		}
		contributorIDs[c.ID] = created.ID
		res.Contributors++
	}

	// STEP 3: Books
	for _, b := range f.Books {
		contributorID, ok := contributorIDs[b.ContributorID]
		if !ok {
			return res, fmt.Errorf("seed book %q: unknown contributor %s", b.Title, b.ContributorID)
		}
		if _, err := i.books.Create(ctx, seedActor(b.UserID), contributorID, b.CreateBookRequest); err != nil {
			return res, fmt.Errorf("seed book %q: %w", b.Title, err)
		}
		res.Books++
	}

	// STEP 4: Reviews
	for _, r := range f.Reviews {
		contributorID, ok := contributorIDs[r.ContributorID]
		if !ok {
			return res, fmt.Errorf("seed review %q: unknown contributor %s", r.Title, r.ContributorID)
		}
		actor := policy.Actor{ID: r.UserID, Role: policy.RoleUser}
		if _, err := i.reviews.CreateReview(ctx, actor, contributorID, r.CreateReviewRequest); err != nil {
			return res, fmt.Errorf("seed review %q: %w", r.Title, err)
		}
		res.Reviews++
	}

	log.Info().
		Int("users", res.Users).
		Int("contributors", res.Contributors).
		Int("books", res.Books).
		Int("reviews", res.Reviews).
		Msg("fixtures imported")
	return res, nil
}

func seedActor(userID uuid.UUID) policy.Actor {
	return policy.Actor{ID: userID, Role: policy.RoleAdmin}
}
