package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/unitynest/nest-backend/internal/application/auth"
)

type AuthHandler struct {
	login app.Login
}

type loginRequest struct {
	Login    string `json:"login" validate:"required,max=320"`
	Password string `json:"password" validate:"required,max=128"`
}

func NewAuthHandler(login app.Login) *AuthHandler {
	return &AuthHandler{login: login}
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	out, err := h.login.Execute(c.Request().Context(), app.LoginInput{Login: req.Login, Password: req.Password})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCredentials) {
			return fail(c, http.StatusUnauthorized, "invalid_credentials", "invalid login or password")
		}
		return fail(c, http.StatusInternalServerError, "internal_error", "failed to log in")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
