package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/sleeptracker-server/internal/model"
)

const pgerrUniqueViolation = "23505"

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByNickname(ctx context.Context, nickname string) (model.User, error) {
	var user model.User
	query := `SELECT id, nickname, password_hash, created_at
			  FROM users WHERE nickname = $1`

	err := r.db.QueryRow(ctx, query, nickname).Scan(
		&user.ID, &user.Nickname, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by nickname: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (id, nickname, password_hash, created_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, nickname, password_hash, created_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.ID, user.Nickname, user.PasswordHash, user.CreatedAt,
	).Scan(
		&savedUser.ID, &savedUser.Nickname, &savedUser.PasswordHash, &savedUser.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrUniqueViolation {
			return model.User{}, model.ErrDuplicateNickname
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}
