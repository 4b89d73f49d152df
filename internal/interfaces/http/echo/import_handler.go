package echo

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	app "github.com/unitynest/nest-backend/internal/application/user"
)

const uploadField = "file"

type ImportHandler struct {
	importUsers app.ImportUsers
	listBatches app.ListImportBatches
	maxBytes    int64
}

func NewImportHandler(importUsers app.ImportUsers, listBatches app.ListImportBatches, maxBytes int64) *ImportHandler {
	return &ImportHandler{importUsers: importUsers, listBatches: listBatches, maxBytes: maxBytes}
}

func (h *ImportHandler) ImportUsers(c echo.Context) error {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return fail(c, http.StatusBadRequest, "missing_file", "multipart field \"file\" is required")
	}
	if h.maxBytes > 0 && header.Size > h.maxBytes {
		return fail(c, http.StatusRequestEntityTooLarge, "file_too_large",
			fmt.Sprintf("file exceeds the maximum size of %d bytes", h.maxBytes))
	}

	f, err := header.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "invalid_file", "uploaded file could not be read")
	}
	defer f.Close()

	summary, err := h.importUsers.Execute(c.Request().Context(), app.ImportUsersInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Content:     f,
		UploadedBy:  currentUserID(c),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportFile) {
			return fail(c, http.StatusBadRequest, "invalid_file", err.Error())
		}
		if errors.Is(err, app.ErrImportAborted) {
			log.Printf("bulk upload %s aborted after %d rows: %v", header.Filename, summary.Total, err)
			return c.JSON(http.StatusServiceUnavailable, apiResponse{
				Data:  summary,
				Error: &errorBody{Code: "import_aborted", Message: "import stopped before all rows were processed"},
			})
		}
		return fail(c, http.StatusInternalServerError, "internal_error", "failed to import users")
	}

	return c.JSON(http.StatusOK, apiResponse{Data: summary})
}

func (h *ImportHandler) ListBatches(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
		}
		limit = n
	}

	batches, err := h.listBatches.Execute(c.Request().Context(), limit)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "internal_error", "failed to list import batches")
	}
	return c.JSON(http.StatusOK, apiResponse{Data: batches})
}
