package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	app "github.com/unitynest/nest-backend/internal/application/payment"
)

type PaymentHandler struct {
	submit app.SubmitPayment
	list   app.ListPayments
	review app.ReviewPayment
}

type submitPaymentRequest struct {
	Plan             string `json:"plan" validate:"required,oneof=annual lifetime"`
	Amount           string `json:"amount" validate:"required,max=32"`
	UPITransactionID string `json:"upi_transaction_id" validate:"required,max=64"`
}

type reviewPaymentRequest struct {
	Note string `json:"note" validate:"max=500"`
}

func NewPaymentHandler(submit app.SubmitPayment, list app.ListPayments, review app.ReviewPayment) *PaymentHandler {
	return &PaymentHandler{submit: submit, list: list, review: review}
}

func (h *PaymentHandler) Submit(c echo.Context) error {
	var req submitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, "validation_failed", err.Error())
	}

	out, err := h.submit.Execute(c.Request().Context(), app.SubmitPaymentInput{
		UserID:           currentUserID(c),
		Plan:             req.Plan,
		Amount:           req.Amount,
		UPITransactionID: req.UPITransactionID,
	})
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(http.StatusCreated, apiResponse{Data: out})
}

func (h *PaymentHandler) List(c echo.Context) error {
	out, err := h.list.Execute(c.Request().Context(), app.ListPaymentsInput{Status: c.QueryParam("status")})
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *PaymentHandler) Verify(c echo.Context) error {
	return h.decide(c, true)
}

func (h *PaymentHandler) Reject(c echo.Context) error {
	return h.decide(c, false)
}

func (h *PaymentHandler) decide(c echo.Context, approve bool) error {
	var req reviewPaymentRequest
	if c.Request().ContentLength > 0 {
		if err := c.Bind(&req); err != nil {
			return fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
		}
		if err := c.Validate(&req); err != nil {
			return fail(c, http.StatusBadRequest, "validation_failed", err.Error())
		}
	}

	out, err := h.review.Execute(c.Request().Context(), app.ReviewPaymentInput{
		ID:       c.Param("id"),
		Reviewer: currentUserID(c),
		Approve:  approve,
		Note:     req.Note,
	})
	if err != nil {
		return paymentError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func paymentError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidPayment):
		return fail(c, http.StatusBadRequest, "invalid_payment", err.Error())
	case errors.Is(err, app.ErrInvalidPaymentID):
		return fail(c, http.StatusBadRequest, "invalid_payment_id", "id must be a valid UUID")
	case errors.Is(err, app.ErrPaymentNotFound):
		return fail(c, http.StatusNotFound, "not_found", "payment not found")
	case errors.Is(err, app.ErrDuplicateTransaction):
		return fail(c, http.StatusConflict, "duplicate_transaction", "this UPI transaction id was already submitted")
	case errors.Is(err, app.ErrPaymentAlreadyReviewed):
		return fail(c, http.StatusConflict, "already_reviewed", "payment was already reviewed")
	}
	return fail(c, http.StatusInternalServerError, "internal_error", "failed to process payment")
}
