package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"akariomart/internal/auth"
)

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return body
}

func TestRegisterValidationAggregatesFieldErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := auth.NewTokenCodec("secret", time.Hour)

	r := gin.New()
	r.POST("/register", Register(nil, codec))

	w := postJSON(r, "/register", `{"email":"not-an-email","password":"123"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	body := decodeBody(t, w)
	details, ok := body["error"].([]interface{})
	if !ok {
		t.Fatalf("expected aggregated error list, got %v", body["error"])
	}

	joined := make([]string, 0, len(details))
	for _, detail := range details {
		joined = append(joined, detail.(string))
	}
	all := strings.Join(joined, "; ")

	for _, want := range []string{"name is required", "email must be a valid email", "password must be at least 6 characters"} {
		if !strings.Contains(all, want) {
			t.Fatalf("expected %q in details, got %s", want, all)
		}
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := auth.NewTokenCodec("secret", time.Hour)

	r := gin.New()
	r.POST("/register", Register(nil, codec))

	w := postJSON(r, "/register", `{"name":"Alice","email":"alice@example.com","password":"pw123456","role":"superadmin"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown role, got %d", w.Code)
	}
}

func TestLoginRequiresAllFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := auth.NewTokenCodec("secret", time.Hour)

	r := gin.New()
	r.POST("/login", Login(nil, codec))

	for _, body := range []string{
		`{}`,
		`{"email":"alice@example.com"}`,
		`{"email":"alice@example.com","password":"pw123456"}`,
		`{"password":"pw123456","role":"user"}`,
	} {
		w := postJSON(r, "/login", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for body %s, got %d", body, w.Code)
		}
		resp := decodeBody(t, w)
		if resp["error"] != "Please provide email, password, and role" {
			t.Fatalf("unexpected error message: %v", resp["error"])
		}
	}
}

func TestLowerCamel(t *testing.T) {
	if got := lowerCamel("Email"); got != "email" {
		t.Fatalf("expected email, got %s", got)
	}
	if got := lowerCamel(""); got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
