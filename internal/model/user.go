package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for user accounts.
type UserStore interface {
	GetByNickname(ctx context.Context, nickname string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a registered account.
type User struct {
	ID           uuid.UUID
	Nickname     string
	PasswordHash []byte
	CreatedAt    time.Time
}
