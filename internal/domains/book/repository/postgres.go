package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"bookmarket-backend/internal/domains/book/model"
	contributormodel "bookmarket-backend/internal/domains/contributor/model"
	"bookmarket-backend/internal/shared/utils"
	"bookmarket-backend/pkg/database"
)

// =====================================================
// POSTGRES REPOSITORY IMPLEMENTATION
// =====================================================

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const bookColumns = `
	b.id, b.title, b.slug, b.isbn, b.description, b.authors, b.language, b.category,
	b.pages, b.dimensions, b.publisher, b.published_year, b.price, b.average_rating,
	b.photo, b.location_lat, b.location_lng, b.location_formatted_address,
	b.location_street, b.location_city, b.location_state, b.location_zipcode,
	b.location_country, b.contributor_id, b.user_id, b.created_at,
	ct.name, ct.email, ct.phone`

const bookFrom = ` FROM books b LEFT JOIN contributors ct ON ct.id = b.contributor_id`

var sortableColumns = map[string]string{
	"title":          "b.title",
	"price":          "b.price",
	"pages":          "b.pages",
	"published_year": "b.published_year",
	"created_at":     "b.created_at",
}

func scanBook(row pgx.Row) (*model.Book, error) {
	b := &model.Book{}
	var ctName, ctEmail, ctPhone *string
	err := row.Scan(
		&b.ID, &b.Title, &b.Slug, &b.ISBN, &b.Description, &b.Authors, &b.Language, pq.Array(&b.Category),
		&b.Pages, &b.Dimensions, &b.Publisher, &b.PublishedYear, &b.Price, &b.AverageRating,
		&b.Photo, &b.Location.Latitude, &b.Location.Longitude, &b.Location.FormattedAddress,
		&b.Location.Street, &b.Location.City, &b.Location.StateCode, &b.Location.Zipcode,
		&b.Location.CountryCode, &b.ContributorID, &b.UserID, &b.CreatedAt,
		&ctName, &ctEmail, &ctPhone,
	)
	if err != nil {
		return nil, err
	}
	if ctName != nil {
		b.Contributor = &model.ContributorSummary{ID: b.ContributorID, Name: *ctName}
		if ctEmail != nil {
			b.Contributor.Email = *ctEmail
		}
		if ctPhone != nil {
			b.Contributor.Phone = *ctPhone
		}
	}
	return b, nil
}

func collect(rows pgx.Rows) ([]*model.Book, error) {
	defer rows.Close()
	books := make([]*model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	query := `
		INSERT INTO books (
			id, title, slug, isbn, description, authors, language, category,
			pages, dimensions, publisher, published_year, price, average_rating, photo,
			location_lat, location_lng, location_formatted_address, location_street,
			location_city, location_state, location_zipcode, location_country,
			contributor_id, user_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
		RETURNING created_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		b.ID, b.Title, b.Slug, b.ISBN, b.Description, b.Authors, b.Language, pq.Array(b.Category),
		b.Pages, b.Dimensions, b.Publisher, b.PublishedYear, b.Price, b.AverageRating, b.Photo,
		b.Location.Latitude, b.Location.Longitude, b.Location.FormattedAddress, b.Location.Street,
		b.Location.City, b.Location.StateCode, b.Location.Zipcode, b.Location.CountryCode,
		b.ContributorID, b.UserID,
	).Scan(&b.CreatedAt)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			return model.DuplicateField(constraint)
		}
		if database.IsCheckViolation(err) {
			return model.ErrInvalidValue
		}
		// contributor bị xóa (cascade) giữa lúc lookup và insert
		if constraint, ok := database.ForeignKeyViolation(err); ok && strings.Contains(constraint, "contributor") {
			return contributormodel.ErrContributorNotFound
		}
		return database.WrapError(err, "failed to create book")
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + ` WHERE b.id = $1`
	b, err := scanBook(database.Conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, model.ErrBookNotFound
		}
		return nil, database.WrapError(err, "failed to get book")
	}
	return b, nil
}

// =====================================================
// UPDATE / DELETE
// =====================================================

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) error {
	query := `
		UPDATE books SET
			title = $2, slug = $3, isbn = $4, description = $5, authors = $6,
			language = $7, category = $8, pages = $9, dimensions = $10,
			publisher = $11, published_year = $12, price = $13, average_rating = $14,
			location_lat = $15, location_lng = $16, location_formatted_address = $17,
			location_street = $18, location_city = $19, location_state = $20,
			location_zipcode = $21, location_country = $22
		WHERE id = $1
	`
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, query,
		b.ID, b.Title, b.Slug, b.ISBN, b.Description, b.Authors,
		b.Language, pq.Array(b.Category), b.Pages, b.Dimensions,
		b.Publisher, b.PublishedYear, b.Price, b.AverageRating,
		b.Location.Latitude, b.Location.Longitude, b.Location.FormattedAddress,
		b.Location.Street, b.Location.City, b.Location.StateCode,
		b.Location.Zipcode, b.Location.CountryCode,
	)
	if err != nil {
		if constraint, ok := database.UniqueViolation(err); ok {
			return model.DuplicateField(constraint)
		}
		if database.IsCheckViolation(err) {
			return model.ErrInvalidValue
		}
		return database.WrapError(err, "failed to update book")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return database.WrapError(err, "failed to delete book")
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteByContributor(ctx context.Context, contributorID uuid.UUID) (int64, error) {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM books WHERE contributor_id = $1`, contributorID)
	if err != nil {
		return 0, database.WrapError(err, "failed to delete contributor books")
	}
	return tag.RowsAffected(), nil
}

// =====================================================
// LIST
// =====================================================

func (r *postgresRepository) List(ctx context.Context, req model.ListBooksRequest) ([]*model.Book, int64, error) {
	where := []string{"1=1"}
	args := []interface{}{}

	if req.MinPrice != nil {
		args = append(args, *req.MinPrice)
		where = append(where, fmt.Sprintf("b.price >= $%d", len(args)))
	}
	if req.MaxPrice != nil {
		args = append(args, *req.MaxPrice)
		where = append(where, fmt.Sprintf("b.price <= $%d", len(args)))
	}
	if req.Category != "" {
		args = append(args, req.Category)
		where = append(where, fmt.Sprintf("$%d = ANY(b.category)", len(args)))
	}
	whereClause := strings.Join(where, " AND ")
	conn := database.Conn(ctx, r.pool)

	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM books b WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, database.WrapError(err, "failed to count books")
	}

	query := `SELECT ` + bookColumns + bookFrom + ` WHERE ` + whereClause +
		` ORDER BY ` + utils.OrderBy(req.Sort, sortableColumns, "b.created_at DESC")
	// Limit = 0: lấy tất cả (export)
	if req.Limit > 0 {
		page := req.Page
		if page < 1 {
			page = 1
		}
		args = append(args, req.Limit, (page-1)*req.Limit)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, database.WrapError(err, "failed to list books")
	}
	books, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *postgresRepository) ListByContributor(ctx context.Context, contributorID uuid.UUID) ([]*model.Book, error) {
	query := `SELECT ` + bookColumns + bookFrom + ` WHERE b.contributor_id = $1 ORDER BY b.created_at DESC`
	rows, err := database.Conn(ctx, r.pool).Query(ctx, query, contributorID)
	if err != nil {
		return nil, database.WrapError(err, "failed to list contributor books")
	}
	return collect(rows)
}

// =====================================================
// AGGREGATES
// =====================================================

func (r *postgresRepository) AveragePrice(ctx context.Context, contributorID uuid.UUID) (decimal.Decimal, int64, error) {
	var (
		avg   decimal.NullDecimal
		count int64
	)
	err := database.Conn(ctx, r.pool).QueryRow(ctx,
		`SELECT AVG(price), COUNT(*) FROM books WHERE contributor_id = $1`, contributorID,
	).Scan(&avg, &count)
	if err != nil {
		return decimal.Zero, 0, database.WrapError(err, "failed to aggregate book prices")
	}
	if !avg.Valid {
		return decimal.Zero, count, nil
	}
	return avg.Decimal, count, nil
}
