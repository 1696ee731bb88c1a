package http

import (
	"net/http"
	"time"

	"paylite-backend/internal/domain/session"
	"paylite-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

type registerReq struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"     validate:"required,max=100"`
}

type loginReq struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// sessionResp is what a client keeps after register/login.
type sessionResp struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresAt string `json:"expires_at"`
	User      struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		Name   string `json:"name"`
		Role   string `json:"role"`
	} `json:"user"`
}

func toSessionResp(st *session.AuthState) sessionResp {
	var r sessionResp
	r.Token = st.Token
	r.TokenType = "Bearer"
	r.ExpiresAt = st.ExpiresAt.UTC().Format(time.RFC3339)
	r.User.UserID = st.UserID
	r.User.Email = st.Email
	r.User.Name = st.Name
	r.User.Role = string(st.Role)
	return r
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if code, er := bindValid(c, &req); er != nil {
		return c.JSON(code, er)
	}
	st, err := h.uc.Register(c.Request().Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, toSessionResp(st))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if code, er := bindValid(c, &req); er != nil {
		return c.JSON(code, er)
	}
	st, err := h.uc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, toSessionResp(st))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	st := currentSession(c)
	if err := h.uc.Logout(c.Request().Context(), st.SessionID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.uc.Me(c.Request().Context(), currentSession(c).UserID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// ListUsers is admin only.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
