package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	contributormodel "bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/domains/review/model"
	"bookmarket-backend/internal/shared/utils"
	"bookmarket-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresReviewRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &postgresReviewRepository{pool: pool}
}

const reviewColumns = `
	r.id, r.title, r.text, r.rating, r.contributor_id, r.user_id, r.created_at,
	c.name, c.slug`

const reviewFrom = ` FROM reviews r LEFT JOIN contributors c ON c.id = r.contributor_id`

var sortableColumns = map[string]string{
	"rating":     "r.rating",
	"created_at": "r.created_at",
	"title":      "r.title",
}

func scanReview(row pgx.Row) (*model.Review, error) {
	r := &model.Review{}
	var name, slug *string
	if err := row.Scan(&r.ID, &r.Title, &r.Text, &r.Rating, &r.ContributorID, &r.UserID, &r.CreatedAt, &name, &slug); err != nil {
		return nil, err
	}
	if name != nil {
		r.Contributor = &model.ContributorRef{ID: r.ContributorID, Name: *name}
		if slug != nil {
			r.Contributor.Slug = *slug
		}
	}
	return r, nil
}

func collect(rows pgx.Rows) ([]*model.Review, error) {
	defer rows.Close()
	reviews := make([]*model.Review, 0)
	for rows.Next() {
		r, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// =====================================================
// CREATE
// =====================================================

func (repo *postgresReviewRepository) Create(ctx context.Context, r *model.Review) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	query := `
		INSERT INTO reviews (id, title, text, rating, contributor_id, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := database.Conn(ctx, repo.pool).QueryRow(ctx, query,
		r.ID, r.Title, r.Text, r.Rating, r.ContributorID, r.UserID,
	).Scan(&r.CreatedAt)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return model.ErrAlreadyReviewed
		}
		if constraint, ok := database.ForeignKeyViolation(err); ok && strings.Contains(constraint, "contributor") {
			return contributormodel.ErrContributorNotFound
		}
		return database.WrapError(err, "failed to create review")
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (repo *postgresReviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	query := `SELECT ` + reviewColumns + reviewFrom + ` WHERE r.id = $1`
	r, err := scanReview(database.Conn(ctx, repo.pool).QueryRow(ctx, query, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrReviewNotFound
		}
		return nil, database.WrapError(err, "failed to get review")
	}
	return r, nil
}

func (repo *postgresReviewRepository) List(ctx context.Context, req model.ListReviewsRequest) ([]*model.Review, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	if req.MinRating > 0 {
		args = append(args, req.MinRating)
		where = append(where, fmt.Sprintf("r.rating >= $%d", len(args)))
	}
	whereClause := strings.Join(where, " AND ")
	conn := database.Conn(ctx, repo.pool)

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM reviews r WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, database.WrapError(err, "failed to count reviews")
	}

	args = append(args, req.Limit, (req.Page-1)*req.Limit)
	query := fmt.Sprintf(`SELECT %s%s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		reviewColumns, reviewFrom, whereClause,
		utils.OrderBy(req.Sort, sortableColumns, "r.created_at DESC"),
		len(args)-1, len(args))

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, database.WrapError(err, "failed to list reviews")
	}
	reviews, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (repo *postgresReviewRepository) ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*model.Review, error) {
	query := `SELECT ` + reviewColumns + reviewFrom + ` WHERE r.contributor_id = $1 ORDER BY r.created_at DESC`
	rows, err := database.Conn(ctx, repo.pool).Query(ctx, query, contributorID)
	if err != nil {
		return nil, database.WrapError(err, "failed to list contributor reviews")
	}
	return collect(rows)
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (repo *postgresReviewRepository) Update(ctx context.Context, r *model.Review) error {
	tag, err := database.Conn(ctx, repo.pool).Exec(ctx,
		`UPDATE reviews SET title = $2, text = $3, rating = $4 WHERE id = $1`,
		r.ID, r.Title, r.Text, r.Rating,
	)
	if err != nil {
		return database.WrapError(err, "failed to update review")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}

func (repo *postgresReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := database.Conn(ctx, repo.pool).Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return database.WrapError(err, "failed to delete review")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrReviewNotFound
	}
	return nil
}
