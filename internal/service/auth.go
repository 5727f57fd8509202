package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/sleeptracker-server/internal/logger"
	"github.com/dtroode/sleeptracker-server/internal/model"
)

// Auth handles account signup, signin and the onboarding identity link.
type Auth struct {
	userStore     model.UserStore
	progressStore model.OnboardingStore
	tokenManager  model.TokenManager
	adminSuffix   string
	logger        *logger.Logger
}

// NewAuth creates an Auth service. Nicknames ending with adminSuffix are
// issued the admin role on signin.
func NewAuth(
	userStore model.UserStore,
	progressStore model.OnboardingStore,
	tokenManager model.TokenManager,
	adminSuffix string,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:     userStore,
		progressStore: progressStore,
		tokenManager:  tokenManager,
		adminSuffix:   adminSuffix,
		logger:        logger,
	}
}

// SignUpParams contains a signup request. Identity optionally names an
// anonymous onboarding session to link to the new account.
type SignUpParams struct {
	Nickname string
	Password string
	Identity string
}

// SignUpResult reports the created account and whether an onboarding session
// was relinked to it.
type SignUpResult struct {
	Identity string
	Linked   bool
}

// SignUp registers a new account and, when an onboarding session identity is
// supplied, rekeys that session's progress record to the account nickname.
func (a *Auth) SignUp(ctx context.Context, params SignUpParams) (SignUpResult, error) {
	nickname := strings.TrimSpace(params.Nickname)

	a.logger.Debug("Auth service: processing signup",
		"nickname", nickname)

	if nickname == "" || params.Password == "" {
		return SignUpResult{}, fmt.Errorf("%w: nickname and password are required", model.ErrMalformedRequest)
	}

	_, err := a.userStore.GetByNickname(ctx, nickname)
	if err == nil {
		a.logger.Info("Auth service: nickname already taken",
			"nickname", nickname)
		return SignUpResult{}, model.ErrDuplicateNickname
	}
	if !errors.Is(err, model.ErrNotFound) {
		return SignUpResult{}, fmt.Errorf("failed to get user by nickname: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return SignUpResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Nickname:     nickname,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if _, err := a.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrDuplicateNickname) {
			return SignUpResult{}, model.ErrDuplicateNickname
		}
		a.logger.Error("Auth service: failed to create user",
			"nickname", nickname,
			"error", err.Error())
		return SignUpResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	result := SignUpResult{}
	if params.Identity != "" {
		result.Linked = a.linkIdentity(ctx, params.Identity, nickname)
		if result.Linked {
			result.Identity = nickname
		}
	}

	a.logger.Info("Auth service: user registered",
		"nickname", nickname,
		"linked", result.Linked)

	return result, nil
}

// linkIdentity migrates the onboarding session keyed by oldIdentity to the
// account nickname. Linking is best effort: a missing session or a conflict
// with an existing record under the nickname is logged and the signup still
// succeeds.
func (a *Auth) linkIdentity(ctx context.Context, oldIdentity, nickname string) bool {
	_, err := a.progressStore.Rekey(ctx, oldIdentity, nickname)
	switch {
	case err == nil:
		a.logger.Info("Auth service: onboarding identity linked",
			"identity", oldIdentity,
			"nickname", nickname)
		return true
	case errors.Is(err, model.ErrNotFound):
		a.logger.Info("Auth service: no onboarding session to link",
			"identity", oldIdentity)
	case errors.Is(err, model.ErrDuplicateIdentity):
		a.logger.Warn("Auth service: nickname already holds an onboarding record, link rejected",
			"identity", oldIdentity,
			"nickname", nickname)
	default:
		a.logger.Error("Auth service: failed to link onboarding identity",
			"identity", oldIdentity,
			"nickname", nickname,
			"error", err.Error())
	}
	return false
}

// SignInResult carries the issued token and the decoded role.
type SignInResult struct {
	Token    string
	Nickname string
	Role     model.Role
}

// SignIn validates credentials and issues an access token carrying the
// nickname and derived role.
func (a *Auth) SignIn(ctx context.Context, nickname, password string) (SignInResult, error) {
	a.logger.Debug("Auth service: processing signin",
		"nickname", nickname)

	if nickname == "" || password == "" {
		return SignInResult{}, fmt.Errorf("%w: nickname and password are required", model.ErrMalformedRequest)
	}

	user, err := a.userStore.GetByNickname(ctx, nickname)
	if errors.Is(err, model.ErrNotFound) {
		return SignInResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return SignInResult{}, fmt.Errorf("failed to get user by nickname: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return SignInResult{}, model.ErrInvalidCredentials
	}

	role := model.RoleUser
	if strings.HasSuffix(nickname, a.adminSuffix) {
		role = model.RoleAdmin
	}

	tokenString, err := a.tokenManager.Generate(model.TokenClaims{Nickname: nickname, Role: role})
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"nickname", nickname,
			"error", err.Error())
		return SignInResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user signed in",
		"nickname", nickname,
		"role", string(role))

	return SignInResult{
		Token:    tokenString,
		Nickname: nickname,
		Role:     role,
	}, nil
}
