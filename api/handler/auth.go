package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskmind/backend/api/transport"
	"github.com/taskmind/backend/domain"
	"github.com/taskmind/backend/pkg/httpcontext"
	"github.com/taskmind/backend/repository"
	accountUC "github.com/taskmind/backend/usecase/account"
)

type AuthHandler struct {
	baseHandler
	accounts   *accountUC.Service
	sessions   repository.SessionRepository
	jwtSecret  string
	jwtIssuer  string
	sessionTTL time.Duration
}

func NewAuthHandler(
	accounts *accountUC.Service,
	sessions repository.SessionRepository,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
	jwtSecret, jwtIssuer string,
	sessionTTL time.Duration,
) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		accounts:    accounts,
		sessions:    sessions,
		jwtSecret:   jwtSecret,
		jwtIssuer:   jwtIssuer,
		sessionTTL:  sessionTTL,
	}
}

// @Summary Register a new account
// @Tags auth
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	ok, err := h.accounts.Register(stdCtx, req.Username, req.Password, req.Email)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !ok {
		h.respondJSON(ctx, http.StatusConflict, transport.NewError(string(domain.ErrCodeConflict), "username unavailable", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]string{"username": req.Username})
}

// @Summary Log in and receive a token
// @Tags auth
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Username == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	account, err := h.accounts.Authenticate(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if account == nil {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "invalid credentials", nil))
		return
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		Username:  account.Username,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(h.sessionTTL),
	}
	if err := h.sessions.Save(stdCtx, session); err != nil {
		h.respondError(ctx, err)
		return
	}

	token, err := h.signToken(account.Username, session.ID, session.ExpiresAt)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"token":   token,
		"session": session,
	})
}

// @Summary Refresh a session
// @Tags auth
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(ctx *fasthttp.RequestCtx) {
	var req transport.RefreshRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.SessionID == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	ttl := h.sessionTTL
	if req.TTL > 0 {
		ttl = time.Duration(req.TTL) * time.Second
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.sessions.Get(stdCtx, req.SessionID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if err := h.sessions.Extend(stdCtx, req.SessionID, ttl); err != nil {
		h.respondError(ctx, err)
		return
	}
	session.ExpiresAt = time.Now().Add(ttl)

	token, err := h.signToken(session.Username, session.ID, session.ExpiresAt)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.respondSuccess(ctx, http.StatusOK, map[string]interface{}{
		"token":   token,
		"session": session,
	})
}

// @Summary Log out
// @Tags auth
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	var req transport.RefreshRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.SessionID == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.sessions.Delete(stdCtx, req.SessionID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

// @Summary Change password
// @Tags auth
// @Router /api/v1/auth/password [put]
func (h *AuthHandler) ChangePassword(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.ChangePasswordRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	ok, err := h.accounts.ChangePassword(stdCtx, username, req.OldPassword, req.NewPassword)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !ok {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError(string(domain.ErrCodeUnauthorized), "invalid credentials", nil))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// @Summary Get notification settings
// @Tags auth
// @Router /api/v1/account/settings [get]
func (h *AuthHandler) Settings(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	settings, err := h.accounts.NotificationSettings(stdCtx, username)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewSettingsView(*settings))
}

// @Summary Update notification settings
// @Tags auth
// @Router /api/v1/account/settings [put]
func (h *AuthHandler) UpdateSettings(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.SettingsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	settings, err := h.accounts.NotificationSettings(stdCtx, username)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if req.EmailEnabled != nil {
		settings.EmailEnabled = *req.EmailEnabled
	}
	if req.AppEnabled != nil {
		settings.AppEnabled = *req.AppEnabled
	}
	if req.DefaultReminderMinutes != nil {
		settings.DefaultReminderMinutes = *req.DefaultReminderMinutes
	}

	if err := h.accounts.UpdateNotificationSettings(stdCtx, settings); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewSettingsView(*settings))
}

func (h *AuthHandler) signToken(username, sessionID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"username":   username,
		"session_id": sessionID,
		"iss":        h.jwtIssuer,
		"exp":        expiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
