package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dtroode/sleeptracker-server/internal/logger"
	"github.com/dtroode/sleeptracker-server/internal/model"
	"github.com/dtroode/sleeptracker-server/internal/service"
)

// AuthService defines account signup and signin operations.
type AuthService interface {
	SignUp(ctx context.Context, params service.SignUpParams) (service.SignUpResult, error)
	SignIn(ctx context.Context, nickname, password string) (service.SignInResult, error)
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	service AuthService
	logger  *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		service: service,
		logger:  logger,
	}
}

type signUpRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
	Identity string `json:"identity"`
}

type signUpResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Identity string `json:"identity"`
}

// SignUp handles POST /api/auth/signup.
func (h *Auth) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, model.ErrMalformedRequest)
		return
	}

	result, err := h.service.SignUp(r.Context(), service.SignUpParams{
		Nickname: req.Nickname,
		Password: req.Password,
		Identity: req.Identity,
	})
	if err != nil {
		h.logger.Error("Auth handler: signup failed",
			"nickname", req.Nickname,
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, signUpResponse{
		Success:  true,
		Message:  "User created successfully.",
		Identity: result.Identity,
	})
}

type signInRequest struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type signInResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token"`
	Nickname string `json:"nickname"`
}

// SignIn handles POST /api/auth/signin.
func (h *Auth) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, model.ErrMalformedRequest)
		return
	}

	result, err := h.service.SignIn(r.Context(), req.Nickname, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: signin failed",
			"nickname", req.Nickname,
			"error", err.Error())
		handleError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, signInResponse{
		Success:  true,
		Message:  "User login successful.",
		Token:    result.Token,
		Nickname: result.Nickname,
	})
}
