package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivanmarin/orbit/internal/domain"
	"github.com/ivanmarin/orbit/internal/repository"
)

const userColumns = `id, email, name, password_hash, bio, location, website, date_of_birth,
	career, profile_image, linkedin, github, twitter, is_private, theme_pref, is_admin, created_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create inserts the user and, when joined is non-nil, the signup activity
// in a single transaction. A duplicate email maps to ErrDuplicateEmail.
func (r *UserRepo) Create(ctx context.Context, user *domain.User, joined *domain.Activity) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		INSERT INTO users (id, email, name, password_hash, profile_image, theme_pref, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.Exec(ctx, query,
		user.ID, user.Email, user.Name, user.PasswordHash,
		user.ProfileImage, user.ThemePref, user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}

	if joined != nil {
		if err := insertActivity(ctx, tx, joined); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)
}

// Update writes all mutable profile fields and, when logged is non-nil, the
// profile_update activity in a single transaction.
func (r *UserRepo) Update(ctx context.Context, user *domain.User, logged *domain.Activity) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	query := `
		UPDATE users
		SET name = $2, bio = $3, location = $4, website = $5, date_of_birth = $6,
			career = $7, profile_image = $8, linkedin = $9, github = $10, twitter = $11,
			is_private = $12, theme_pref = $13
		WHERE id = $1`

	_, err = tx.Exec(ctx, query,
		user.ID, user.Name, user.Bio, user.Location, user.Website, user.DateOfBirth,
		user.Career, user.ProfileImage, user.Linkedin, user.Github, user.Twitter,
		user.IsPrivate, user.ThemePref,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	if logged != nil {
		if err := insertActivity(ctx, tx, logged); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+userColumns+" FROM users")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := scanUserRow(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepo) scanUser(ctx context.Context, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := scanUserRow(r.pool.QueryRow(ctx, query, arg), &u)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func scanUserRow(row pgx.Row, u *domain.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Bio, &u.Location, &u.Website,
		&u.DateOfBirth, &u.Career, &u.ProfileImage, &u.Linkedin, &u.Github, &u.Twitter,
		&u.IsPrivate, &u.ThemePref, &u.IsAdmin, &u.CreatedAt,
	)
}

func insertActivity(ctx context.Context, tx pgx.Tx, a *domain.Activity) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO activities (id, user_id, type, description, timestamp)
		VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.UserID, a.Type, a.Description, a.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
