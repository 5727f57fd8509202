// Package mocks provides testify mocks for the model store interfaces.
package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dtroode/sleeptracker-server/internal/model"
)

// OnboardingStore mocks model.OnboardingStore.
type OnboardingStore struct {
	mock.Mock
}

func (m *OnboardingStore) UpsertStep(ctx context.Context, identity string, step model.Step, answer model.StepAnswer, nextScreen string) (model.Progress, error) {
	args := m.Called(ctx, identity, step, answer, nextScreen)
	return args.Get(0).(model.Progress), args.Error(1)
}

func (m *OnboardingStore) GetByIdentity(ctx context.Context, identity string) (model.Progress, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(model.Progress), args.Error(1)
}

func (m *OnboardingStore) Rekey(ctx context.Context, oldIdentity, newIdentity string) (model.Progress, error) {
	args := m.Called(ctx, oldIdentity, newIdentity)
	return args.Get(0).(model.Progress), args.Error(1)
}

func (m *OnboardingStore) DropOffs(ctx context.Context, idleFor time.Duration) ([]model.DropOff, error) {
	args := m.Called(ctx, idleFor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DropOff), args.Error(1)
}

// VisitStore mocks model.VisitStore.
type VisitStore struct {
	mock.Mock
}

func (m *VisitStore) Create(ctx context.Context, visit model.ScreenVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *VisitStore) AverageDwellPerScreen(ctx context.Context) ([]model.ScreenDwell, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScreenDwell), args.Error(1)
}

// UserStore mocks model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) GetByNickname(ctx context.Context, nickname string) (model.User, error) {
	args := m.Called(ctx, nickname)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

// TokenManager mocks model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) Generate(claims model.TokenClaims) (string, error) {
	args := m.Called(claims)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) Parse(token string) (model.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenClaims), args.Error(1)
}

// Storage mocks model.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader) error {
	args := m.Called(ctx, key, reader)
	return args.Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
