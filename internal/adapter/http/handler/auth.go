package handler

import (
	"context"
	"net/http"

	"github.com/jasamarga/toll-ops-gateway/internal/adapter/http/handler/dto"
	"github.com/jasamarga/toll-ops-gateway/internal/service/session"
	"github.com/jasamarga/toll-ops-gateway/internal/store"
	"github.com/jasamarga/toll-ops-gateway/pkg/logger"
	wrap "github.com/jasamarga/toll-ops-gateway/pkg/logger/wrapper"
	"github.com/jasamarga/toll-ops-gateway/pkg/validator"
)

type SessionController interface {
	Hydrate(ctx context.Context, sess *store.Store) session.Session
	Login(ctx context.Context, sess *store.Store, username, password string) (*session.LoginOutcome, error)
	Logout(ctx context.Context, sess *store.Store) string
}

type Auth struct {
	controller SessionController
	sessions   *Sessions
	log        logger.Logger
}

func NewAuth(controller SessionController, sessions *Sessions, log logger.Logger) *Auth {
	return &Auth{
		controller: controller,
		sessions:   sessions,
		log:        log,
	}
}

// Login godoc
// @Summary      Operator login
// @Description  Authenticates against the toll backend and persists the session
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credentials"
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "login_user")

	req := &dto.LoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		h.log.Error(ctx, "failed to read request JSON data", err)
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	req.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	sess := h.sessions.FromRequest(w, r)
	out, err := h.controller.Login(ctx, sess, req.Username, req.Password)
	if err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "login failed", err)
		toastResponse(w, GetCode(err), "Login Gagal", session.ErrorMessage(err))
		return
	}

	response := envelope{
		"status":   true,
		"message":  "Login berhasil",
		"user":     out.Session.User,
		"redirect": out.Redirect,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Logout godoc
// @Summary      Operator logout
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /api/auth/logout [post]
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "logout_user")

	sess := h.sessions.FromRequest(w, r)
	redirect := h.controller.Logout(ctx, sess)

	response := envelope{
		"status":   true,
		"message":  "Anda telah keluar dari sistem",
		"redirect": redirect,
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Me godoc
// @Summary      Current session
// @Description  Resolves the device's session state from the token store
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/auth/me [get]
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "session_me")

	sess := h.sessions.FromRequest(w, r)
	current := h.controller.Hydrate(ctx, sess)

	status := http.StatusOK
	if !current.Authenticated() {
		status = http.StatusUnauthorized
	}

	response := envelope{
		"state": current.State,
		"user":  current.User,
	}
	if err := writeJSON(w, status, response, nil); err != nil {
		h.log.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
