package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"bookmarket-backend/internal/domains/user"
	"bookmarket-backend/internal/shared/utils"
	"bookmarket-backend/pkg/database"
)

// postgresRepository là implementation của user.Repository
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) user.Repository {
	return &postgresRepository{pool: pool}
}

const selectUser = `SELECT id, name, email, password_hash, role, created_at FROM users`

func (r *postgresRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role,
	).Scan(&u.CreatedAt)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return user.ErrEmailAlreadyExists
		}
		if database.IsCheckViolation(err) {
			return user.ErrInvalidRole
		}
		return database.WrapError(err, "insert user")
	}
	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE id = $1`, id)
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, selectUser+` WHERE lower(email) = lower($1)`, email)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	u := &user.User{}
	err := database.Conn(ctx, r.pool).QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, database.WrapError(err, "query user")
	}
	return u, nil
}

var sortableColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"role":      "role",
	"createdAt": "created_at",
}

// List hỗ trợ filter theo role và tìm kiếm theo name/email (ILIKE)
func (r *postgresRepository) List(ctx context.Context, req user.ListUsersRequest) ([]*user.User, int64, error) {
	conn := database.Conn(ctx, r.pool)

	// STEP 1: BUILD WHERE
	where := []string{"1=1"}
	args := []interface{}{}
	if req.Role != "" {
		args = append(args, req.Role)
		where = append(where, fmt.Sprintf("role = $%d", len(args)))
	}
	if req.Search != "" {
		args = append(args, "%"+req.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d)", len(args), len(args)))
	}
	whereClause := strings.Join(where, " AND ")

	// STEP 2: COUNT
	var total int64
	if err := conn.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE `+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, database.WrapError(err, "count users")
	}

	// STEP 3: PAGE
	args = append(args, req.Limit, (req.Page-1)*req.Limit)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		selectUser, whereClause,
		utils.OrderBy(req.Sort, sortableColumns, "created_at DESC"),
		len(args)-1, len(args),
	)
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, database.WrapError(err, "list users")
	}
	defer rows.Close()

	users := make([]*user.User, 0, req.Limit)
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, 0, database.WrapError(err, "scan user")
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, database.WrapError(err, "iterate users")
	}
	return users, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx,
		`UPDATE users SET name = $2, email = $3, role = $4 WHERE id = $1`,
		u.ID, u.Name, u.Email, u.Role,
	)
	if err != nil {
		if _, ok := database.UniqueViolation(err); ok {
			return user.ErrEmailAlreadyExists
		}
		if database.IsCheckViolation(err) {
			return user.ErrInvalidRole
		}
		return database.WrapError(err, "update user")
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := database.Conn(ctx, r.pool).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		if _, ok := database.ForeignKeyViolation(err); ok {
			return user.ErrUserHasResources
		}
		return database.WrapError(err, "delete user")
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
