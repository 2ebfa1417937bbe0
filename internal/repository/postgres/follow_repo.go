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

type FollowRepo struct {
	pool *pgxpool.Pool
}

func NewFollowRepo(pool *pgxpool.Pool) *FollowRepo {
	return &FollowRepo{pool: pool}
}

// Create inserts the edge and the follower's activity entry in a single
// transaction. The unique (follower_id, followed_id) index serializes
// concurrent duplicates; the loser gets ErrDuplicateFollow.
func (r *FollowRepo) Create(ctx context.Context, follow *domain.Follow, logged *domain.Activity) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx,
		`INSERT INTO follows (id, follower_id, followed_id, created_at)
		VALUES ($1, $2, $3, $4)`,
		follow.ID, follow.FollowerID, follow.FollowedID, follow.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return repository.ErrDuplicateFollow
		}
		return fmt.Errorf("insert follow: %w", err)
	}

	if logged != nil {
		if err := insertActivity(ctx, tx, logged); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *FollowRepo) Get(ctx context.Context, followerID, followedID uuid.UUID) (*domain.Follow, error) {
	var f domain.Follow
	err := r.pool.QueryRow(ctx,
		`SELECT id, follower_id, followed_id, created_at
		FROM follows
		WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID,
	).Scan(&f.ID, &f.FollowerID, &f.FollowedID, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Delete removes the edge if present and reports whether it existed.
func (r *FollowRepo) Delete(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`,
		followerID, followedID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FollowRepo) CountFollowers(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM follows WHERE followed_id = $1`, userID,
	).Scan(&n)
	return n, err
}

func (r *FollowRepo) CountFollowing(ctx context.Context, userID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID,
	).Scan(&n)
	return n, err
}

func (r *FollowRepo) List(ctx context.Context) ([]domain.Follow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, follower_id, followed_id, created_at FROM follows`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var follows []domain.Follow
	for rows.Next() {
		var f domain.Follow
		if err := rows.Scan(&f.ID, &f.FollowerID, &f.FollowedID, &f.CreatedAt); err != nil {
			return nil, err
		}
		follows = append(follows, f)
	}
	return follows, rows.Err()
}
