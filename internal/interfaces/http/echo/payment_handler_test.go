package echo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	app "github.com/unitynest/nest-backend/internal/application/payment"
	httpecho "github.com/unitynest/nest-backend/internal/interfaces/http/echo"
)

type fakeSubmit struct {
	got app.SubmitPaymentInput
	err error
}

func (f *fakeSubmit) Execute(ctx context.Context, in app.SubmitPaymentInput) (app.PaymentOutput, error) {
	f.got = in
	if f.err != nil {
		return app.PaymentOutput{}, f.err
	}
	return app.PaymentOutput{ID: "p1", Status: "pending", Amount: in.Amount}, nil
}

type fakeList struct {
	got app.ListPaymentsInput
}

func (f *fakeList) Execute(ctx context.Context, in app.ListPaymentsInput) ([]app.PaymentOutput, error) {
	f.got = in
	return []app.PaymentOutput{{ID: "p1"}}, nil
}

type fakeReview struct {
	got app.ReviewPaymentInput
	err error
}

func (f *fakeReview) Execute(ctx context.Context, in app.ReviewPaymentInput) (app.PaymentOutput, error) {
	f.got = in
	if f.err != nil {
		return app.PaymentOutput{}, f.err
	}
	return app.PaymentOutput{ID: in.ID, Status: "verified"}, nil
}

func paymentServer(submit *fakeSubmit, list *fakeList, review *fakeReview) *echo.Echo {
	return newServer(httpecho.Handlers{Payment: httpecho.NewPaymentHandler(submit, list, review)})
}

func jsonRequest(method, path, body, auth string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set(echo.HeaderAuthorization, auth)
	return req
}

func TestSubmitPaymentHandler(t *testing.T) {
	t.Parallel()

	submit := &fakeSubmit{}
	e := paymentServer(submit, &fakeList{}, &fakeReview{})

	rec := do(e, jsonRequest(http.MethodPost, "/api/v1/payments",
		`{"plan":"annual","amount":"1200.00","upi_transaction_id":"412345678901"}`, memberAuth(t)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if submit.got.UserID != memberID || submit.got.Amount != "1200.00" {
		t.Fatalf("unexpected input: %+v", submit.got)
	}
}

func TestSubmitPaymentHandlerErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{"unknown plan", `{"plan":"weekly","amount":"10","upi_transaction_id":"412345678901"}`, nil, http.StatusBadRequest, "validation_failed"},
		{"invalid amount", `{"plan":"annual","amount":"-1","upi_transaction_id":"412345678901"}`, app.ErrInvalidPayment, http.StatusBadRequest, "invalid_payment"},
		{"duplicate", `{"plan":"annual","amount":"10","upi_transaction_id":"412345678901"}`, app.ErrDuplicateTransaction, http.StatusConflict, "duplicate_transaction"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			e := paymentServer(&fakeSubmit{err: tc.err}, &fakeList{}, &fakeReview{})
			rec := do(e, jsonRequest(http.MethodPost, "/api/v1/payments", tc.body, memberAuth(t)))

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, rec.Code, rec.Body.String())
			}
			if code := errorCode(t, rec); code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, code)
			}
		})
	}
}

func TestListPaymentsHandlerAdminOnly(t *testing.T) {
	t.Parallel()

	list := &fakeList{}
	e := paymentServer(&fakeSubmit{}, list, &fakeReview{})

	if rec := do(e, jsonRequest(http.MethodGet, "/api/v1/admin/payments", "", memberAuth(t))); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	rec := do(e, jsonRequest(http.MethodGet, "/api/v1/admin/payments?status=pending", "", adminAuth(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if list.got.Status != "pending" {
		t.Fatalf("status not forwarded: %+v", list.got)
	}
}

func TestReviewPaymentHandlers(t *testing.T) {
	t.Parallel()

	review := &fakeReview{}
	e := paymentServer(&fakeSubmit{}, &fakeList{}, review)
	path := "/api/v1/admin/payments/5f1c1a3e-2b7d-4a55-9d0e-8f9a6b1c2d3e"

	rec := do(e, jsonRequest(http.MethodPost, path+"/verify", "", adminAuth(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !review.got.Approve || review.got.Reviewer != adminID {
		t.Fatalf("unexpected review input: %+v", review.got)
	}

	rec = do(e, jsonRequest(http.MethodPost, path+"/reject", `{"note":"no matching transfer"}`, adminAuth(t)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if review.got.Approve || review.got.Note != "no matching transfer" {
		t.Fatalf("unexpected review input: %+v", review.got)
	}
}

func TestReviewPaymentHandlerErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
	}{
		{app.ErrPaymentNotFound, http.StatusNotFound},
		{app.ErrPaymentAlreadyReviewed, http.StatusConflict},
		{app.ErrInvalidPaymentID, http.StatusBadRequest},
	}

	for _, tc := range cases {
		e := paymentServer(&fakeSubmit{}, &fakeList{}, &fakeReview{err: tc.err})
		rec := do(e, jsonRequest(http.MethodPost, "/api/v1/admin/payments/x/verify", "", adminAuth(t)))
		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
	}
}
