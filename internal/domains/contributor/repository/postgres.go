package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/shared/utils"
	"bookmarket-backend/pkg/cache"
	"bookmarket-backend/pkg/database"
)

const (
	cacheTTL = 10 * time.Minute

	// bán kính trái đất (km), dùng cho radius search
	earthRadiusKm = 6378.0
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresContributorRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresContributorRepository(pool *pgxpool.Pool, cache cache.Cache) ContributorRepository {
	return &postgresContributorRepository{pool: pool, cache: cache}
}

const contributorColumns = `
	c.id, c.name, c.slug, c.email, c.website, c.phone, c.city, c.state, c.zipcode,
	c.location_lat, c.location_lng, c.location_formatted_address, c.location_street,
	c.location_city, c.location_state, c.location_zipcode, c.location_country,
	c.average_cost, c.photo, c.user_id, c.created_at`

var sortableColumns = map[string]string{
	"name":         "c.name",
	"average_cost": "c.average_cost",
	"created_at":   "c.created_at",
	"city":         "c.city",
}

// CachePrefix namespaces cached contributor reads in Redis.
const CachePrefix = "contributor:"

func cacheKey(id uuid.UUID) string {
	return CachePrefix + id.String()
}

func scanContributor(row pgx.Row) (*model.Contributor, error) {
	c := &model.Contributor{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Email, &c.Website, &c.Phone, &c.City, &c.State, &c.Zipcode,
		&c.Location.Latitude, &c.Location.Longitude, &c.Location.FormattedAddress, &c.Location.Street,
		&c.Location.City, &c.Location.StateCode, &c.Location.Zipcode, &c.Location.CountryCode,
		&c.AverageCost, &c.Photo, &c.UserID, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func collect(rows pgx.Rows) ([]*model.Contributor, error) {
	defer rows.Close()
	out := make([]*model.Contributor, 0)
	for rows.Next() {
		c, err := scanContributor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contributor: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresContributorRepository) Create(ctx context.Context, c *model.Contributor) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	query := `
		INSERT INTO contributors (
			id, name, slug, email, website, phone, city, state, zipcode,
			location_lat, location_lng, location_formatted_address, location_street,
			location_city, location_state, location_zipcode, location_country,
			average_cost, photo, user_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING created_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		c.ID, c.Name, c.Slug, c.Email, c.Website, c.Phone, c.City, c.State, c.Zipcode,
		c.Location.Latitude, c.Location.Longitude, c.Location.FormattedAddress, c.Location.Street,
		c.Location.City, c.Location.StateCode, c.Location.Zipcode, c.Location.CountryCode,
		c.AverageCost, c.Photo, c.UserID,
	).Scan(&c.CreatedAt)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			return model.DuplicateField(constraint)
		}
		return database.WrapError(err, "failed to create contributor")
	}
	return nil
}

// =====================================================
// GET BY ID (cache-aside)
// =====================================================

func (r *postgresContributorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Contributor, error) {
	var cached model.Contributor
	if found, err := r.cache.Get(ctx, cacheKey(id), &cached); err != nil {
		log.Warn().Err(err).Str("contributor_id", id.String()).Msg("contributor cache read failed")
	} else if found {
		return &cached, nil
	}

	query := `SELECT ` + contributorColumns + ` FROM contributors c WHERE c.id = $1`
	c, err := scanContributor(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrContributorNotFound
		}
		return nil, database.WrapError(err, "failed to get contributor")
	}

	if err := r.cache.Set(ctx, cacheKey(id), c, cacheTTL); err != nil {
		log.Warn().Err(err).Str("contributor_id", id.String()).Msg("contributor cache write failed")
	}
	return c, nil
}

func (r *postgresContributorRepository) ExistsByUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM contributors WHERE user_id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, database.WrapError(err, "failed to check registered contributor")
	}
	return exists, nil
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (r *postgresContributorRepository) Update(ctx context.Context, c *model.Contributor) error {
	query := `
		UPDATE contributors SET
			name = $2, slug = $3, email = $4, website = $5, phone = $6,
			city = $7, state = $8, zipcode = $9,
			location_lat = $10, location_lng = $11, location_formatted_address = $12,
			location_street = $13, location_city = $14, location_state = $15,
			location_zipcode = $16, location_country = $17
		WHERE id = $1
	`
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		c.ID, c.Name, c.Slug, c.Email, c.Website, c.Phone, c.City, c.State, c.Zipcode,
		c.Location.Latitude, c.Location.Longitude, c.Location.FormattedAddress,
		c.Location.Street, c.Location.City, c.Location.StateCode,
		c.Location.Zipcode, c.Location.CountryCode,
	)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			return model.DuplicateField(constraint)
		}
		return database.WrapError(err, "failed to update contributor")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContributorNotFound
	}
	r.Invalidate(ctx, c.ID)
	return nil
}

func (r *postgresContributorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM contributors WHERE id = $1`, id)
	if err != nil {
		return database.WrapError(err, "failed to delete contributor")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContributorNotFound
	}
	return nil
}

func (r *postgresContributorRepository) UpdatePhoto(ctx context.Context, id uuid.UUID, photo string) error {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, `UPDATE contributors SET photo = $2 WHERE id = $1`, id, photo)
	if err != nil {
		return database.WrapError(err, "failed to update contributor photo")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContributorNotFound
	}
	r.Invalidate(ctx, id)
	return nil
}

func (r *postgresContributorRepository) UpdateAverageCost(ctx context.Context, id uuid.UUID, cost decimal.Decimal) error {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE contributors SET average_cost = $2 WHERE id = $1`, id, cost)
	if err != nil {
		return database.WrapError(err, "failed to update average cost")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrContributorNotFound
	}
	r.Invalidate(ctx, id)
	return nil
}

func (r *postgresContributorRepository) Invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Warn().Err(err).Str("contributor_id", id.String()).Msg("contributor cache invalidation failed")
	}
}

// =====================================================
// LIST
// =====================================================

func (r *postgresContributorRepository) List(ctx context.Context, req model.ListContributorsRequest) ([]*model.Contributor, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if req.MinCost != nil {
		args = append(args, *req.MinCost)
		where = append(where, fmt.Sprintf("c.average_cost >= $%d", len(args)))
	}
	if req.MaxCost != nil {
		args = append(args, *req.MaxCost)
		where = append(where, fmt.Sprintf("c.average_cost <= $%d", len(args)))
	}
	if req.City != "" {
		args = append(args, req.City)
		where = append(where, fmt.Sprintf("lower(c.city) = lower($%d)", len(args)))
	}
	whereClause := strings.Join(where, " AND ")
	conn := database.Conn(ctx, r.pool)

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM contributors c WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, database.WrapError(err, "failed to count contributors")
	}

	orderBy := utils.OrderBy(req.Sort, sortableColumns, "c.created_at DESC")
	args = append(args, req.Limit, (req.Page-1)*req.Limit)
	query := fmt.Sprintf(`SELECT %s FROM contributors c WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		contributorColumns, whereClause, orderBy, len(args)-1, len(args))

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, database.WrapError(err, "failed to list contributors")
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListWithinRadius dùng công thức haversine trên location_lat/lng
func (r *postgresContributorRepository) ListWithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*model.Contributor, error) {
	query := `
		SELECT ` + contributorColumns + `
		FROM contributors c
		WHERE 2 * $4::float8 * asin(least(1.0, sqrt(
			power(sin(radians(c.location_lat - $1::float8) / 2), 2) +
			cos(radians($1::float8)) * cos(radians(c.location_lat)) *
			power(sin(radians(c.location_lng - $2::float8) / 2), 2)
		))) <= $3::float8
		ORDER BY c.created_at DESC
	`
	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, lat, lng, radiusKm, earthRadiusKm)
	if err != nil {
		return nil, database.WrapError(err, "failed to query contributors in radius")
	}
	return collect(rows)
}

func (r *postgresContributorRepository) ListBookSummaries(ctx context.Context, id uuid.UUID) ([]model.BookSummary, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx, `
		SELECT id, title, slug, price, category, created_at
		FROM books
		WHERE contributor_id = $1
		ORDER BY created_at DESC
	`, id)
	if err != nil {
		return nil, database.WrapError(err, "failed to list contributor books")
	}
	defer rows.Close()

	books := make([]model.BookSummary, 0)
	for rows.Next() {
		var b model.BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.Price, pq.Array(&b.Category), &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book summary: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

func (r *postgresContributorRepository) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := database.Conn(ctx, r.pool).Query(ctx, `SELECT id FROM contributors ORDER BY created_at`)
	if err != nil {
		return nil, database.WrapError(err, "failed to list contributor ids")
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("scan contributor ids: %w", err)
	}
	return ids, nil
}
