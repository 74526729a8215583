package httpapi

import (
	"net/http"

	"github.com/arthurCDG/Vinted-clone-server/internal/platform/logger"
	"github.com/arthurCDG/Vinted-clone-server/internal/platform/metrics"
	"github.com/arthurCDG/Vinted-clone-server/internal/usecase"
	"go.uber.org/zap"
)

type UserHandler struct {
	users   UserService
	metrics *metrics.Manager
	logger  *logger.Logger
}

func NewUserHandler(users UserService, m *metrics.Manager, log *logger.Logger) *UserHandler {
	return &UserHandler{
		users:   users,
		metrics: m,
		logger:  log.Named("UserHandler"),
	}
}

type accountPayload struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

type signupResponse struct {
	ID      string         `json:"id"`
	Token   string         `json:"token"`
	Account accountPayload `json:"account"`
}

type loginResponse struct {
	ID      string         `json:"id"`
	Token   string         `json:"token"`
	Account accountPayload `json:"account"`
}

// Signup handles POST /auth/signup (multipart form with an optional avatar
// file).
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.logger.Warn("Failed to parse signup form", zap.Error(err))
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form data"})
		return
	}

	avatarName, avatarData, err := formFile(r, "avatar")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid avatar upload"})
		return
	}

	user, err := h.users.Register(r.Context(), usecase.RegisterInput{
		Username:       r.FormValue("username"),
		Email:          r.FormValue("email"),
		Password:       r.FormValue("password"),
		Newsletter:     r.FormValue("newsletter") == "true",
		AvatarFileName: avatarName,
		AvatarData:     avatarData,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	h.metrics.UsersRegisteredTotal.Inc()
	respondJSON(w, http.StatusOK, signupResponse{
		ID:    user.ID,
		Token: user.Token,
		Account: accountPayload{
			Username: user.Username,
			Avatar:   user.Avatar,
		},
	})
}

// Login handles POST /auth/login.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid form data"})
		return
	}

	user, err := h.users.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, loginResponse{
		ID:    user.ID,
		Token: user.Token,
		Account: accountPayload{
			Username: user.Username,
		},
	})
}
