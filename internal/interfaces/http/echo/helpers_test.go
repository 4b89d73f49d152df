package echo_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
	"github.com/unitynest/nest-backend/internal/infrastructure/security"
	httpecho "github.com/unitynest/nest-backend/internal/interfaces/http/echo"
)

const (
	adminID  = "0b6f5b8e-7d55-4f0e-8a1c-52f1c1f0d111"
	memberID = "a3f91a91-7fdd-43bf-bfd2-00bc02f6c53e"
)

var testTokens = security.NewTokenManager("handler-test-secret", time.Hour)

func newServer(h httpecho.Handlers) *echo.Echo {
	e := echo.New()
	httpecho.RegisterRoutes(e, testTokens, h)
	return e
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()

	token, _, err := testTokens.Issue(userID, role)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return "Bearer " + token
}

func adminAuth(t *testing.T) string {
	return bearer(t, adminID, domain.RoleAdmin)
}

func memberAuth(t *testing.T) string {
	return bearer(t, memberID, domain.RoleMember)
}

func multipartUpload(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	return body, w.FormDataContentType()
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unexpected json: %v (%s)", err, rec.Body.String())
	}
	return got
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body, ok := decodeBody(t, rec)["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
	code, _ := body["code"].(string)
	return code
}
