package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/unitynest/nest-backend/internal/application/user"
)

type UserHandler struct {
	useCase app.GetUserByID
}

func NewUserHandler(useCase app.GetUserByID) *UserHandler {
	return &UserHandler{useCase: useCase}
}

func (h *UserHandler) GetUserByID(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetUserByIDInput{
		ID:            c.Param("id"),
		RequesterID:   currentUserID(c),
		RequesterRole: currentRole(c),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidUserID) {
			return fail(c, http.StatusBadRequest, "invalid_user_id", "id must be a valid UUID")
		}
		if errors.Is(err, app.ErrForbidden) {
			return fail(c, http.StatusForbidden, "forbidden", "you can only view your own profile")
		}
		if errors.Is(err, app.ErrUserNotFound) {
			return fail(c, http.StatusNotFound, "not_found", "user not found")
		}

		return fail(c, http.StatusInternalServerError, "internal_error", "failed to get user")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
