package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"akariomart/internal/auth"
	"akariomart/internal/models"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func doRequest(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProtectMissingToken(t *testing.T) {
	codec := auth.NewTokenCodec("secret", time.Hour)
	r := newTestRouter()
	r.GET("/protected", Protect(nil, codec), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestProtectMalformedHeader(t *testing.T) {
	codec := auth.NewTokenCodec("secret", time.Hour)
	r := newTestRouter()
	r.GET("/protected", Protect(nil, codec), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, header := range []string{"Bearer", "Token abc", "Bearer a b"} {
		if w := doRequest(r, header); w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for header %q, got %d", header, w.Code)
		}
	}
}

func TestProtectExpiredToken(t *testing.T) {
	issuer := auth.NewTokenCodec("secret", -time.Minute)
	verifier := auth.NewTokenCodec("secret", time.Hour)

	token, err := issuer.Issue(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	r := newTestRouter()
	r.GET("/protected", Protect(nil, verifier), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(r, "Bearer "+token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["error"] != "Session expired, please login again" {
		t.Fatalf("expected expiry message, got %v", body["error"])
	}
}

func TestProtectForgedToken(t *testing.T) {
	forger := auth.NewTokenCodec("other-secret", time.Hour)
	verifier := auth.NewTokenCodec("secret", time.Hour)

	token, err := forger.Issue(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	r := newTestRouter()
	r.GET("/protected", Protect(nil, verifier), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	if w := doRequest(r, "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for forged token, got %d", w.Code)
	}
}

func TestOptionalAuthWithoutToken(t *testing.T) {
	codec := auth.NewTokenCodec("secret", time.Hour)
	r := newTestRouter()
	r.GET("/protected", OptionalAuth(nil, codec), func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			t.Error("expected no identity for anonymous request")
		}
		c.Status(http.StatusOK)
	})

	if w := doRequest(r, ""); w.Code != http.StatusOK {
		t.Fatalf("anonymous request must pass, got %d", w.Code)
	}
}

func TestOptionalAuthWithInvalidToken(t *testing.T) {
	codec := auth.NewTokenCodec("secret", time.Hour)
	r := newTestRouter()
	r.GET("/protected", OptionalAuth(nil, codec), func(c *gin.Context) {
		if _, ok := CurrentUser(c); ok {
			t.Error("expected no identity for invalid token")
		}
		c.Status(http.StatusOK)
	})

	if w := doRequest(r, "Bearer garbage"); w.Code != http.StatusOK {
		t.Fatalf("invalid token must not fail an optional-auth route, got %d", w.Code)
	}
}

func withIdentity(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		SetCurrentUser(c, user)
		c.Next()
	}
}

func TestAuthorizeAllowsMatchingRole(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	r := newTestRouter()
	r.GET("/protected", withIdentity(user), Authorize(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	if w := doRequest(r, ""); w.Code != http.StatusOK {
		t.Fatalf("expected admin to pass, got %d", w.Code)
	}
}

func TestAuthorizeRejectsOtherRole(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	r := newTestRouter()
	r.GET("/protected", withIdentity(user), Authorize(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := doRequest(r, "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for wrong role, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["error"] != "User role user is not authorized to access this route" {
		t.Fatalf("expected role named in error, got %v", body["error"])
	}
}

func TestAuthorizeWithoutIdentity(t *testing.T) {
	r := newTestRouter()
	r.GET("/protected", Authorize(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	if w := doRequest(r, ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %d", w.Code)
	}
}
