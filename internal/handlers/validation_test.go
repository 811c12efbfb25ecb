package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"selta_back_end/internal/config"
)

func testCfg() config.Config {
	return config.Config{JWTSecret: "test-secret", AdminEmails: []string{"admin@selta.shop"}}
}

func TestResolveRole(t *testing.T) {
	cfg := testCfg()
	if got := resolveRole(cfg, "ADMIN@selta.shop"); got != "admin" {
		t.Errorf("expected admin, got %q", got)
	}
	if got := resolveRole(cfg, "jane@example.com"); got != "user" {
		t.Errorf("expected user, got %q", got)
	}
}

// The handlers validate input before they touch the database, so the 400
// paths can run against a nil *gorm.DB.

func postJSON(t *testing.T, handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", uint(1))
	handler(c)
	return w
}

func errorField(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	msg, _ := resp["error"].(string)
	return msg
}

func TestAddToCartRequiresProductID(t *testing.T) {
	w := postJSON(t, AddToCart(nil), `{"quantity": 2}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorField(t, w); msg != "Product ID is required" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestUpdateCartItemRejectsBadQuantity(t *testing.T) {
	for _, body := range []string{`{"quantity": 0}`, `{"quantity": -3}`, `{}`} {
		w := postJSON(t, UpdateCartItem(nil), body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
		if msg := errorField(t, w); msg != "Valid quantity is required" {
			t.Errorf("body %s: unexpected error message: %q", body, msg)
		}
	}
}

func TestCreateAddressRequiresFields(t *testing.T) {
	w := postJSON(t, CreateAddress(nil), `{"first_name": "Jane", "address": "1 Main St"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorField(t, w); msg != "Missing required address fields" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestCreateAddressDefaultsType(t *testing.T) {
	req := addressRequest{FirstName: "Jane"}
	if got := req.addrType(); got != "shipping" {
		t.Errorf("expected shipping, got %q", got)
	}
	req.Type = "billing"
	if got := req.addrType(); got != "billing" {
		t.Errorf("expected billing, got %q", got)
	}
}

func TestSubmitTestimonialValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing fields", `{"title": "Great"}`, "Title, message, and rating are required"},
		{"rating too low", `{"title": "t", "message": "m", "rating": 0}`, "Title, message, and rating are required"},
		{"rating too high", `{"title": "t", "message": "m", "rating": 6}`, "Rating must be between 1 and 5"},
		{"negative rating", `{"title": "t", "message": "m", "rating": -1}`, "Rating must be between 1 and 5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, SubmitTestimonial(nil), tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			if msg := errorField(t, w); msg != tc.want {
				t.Errorf("unexpected error message: %q", msg)
			}
		})
	}
}

func TestCreateBannerRequiresTitleAndImage(t *testing.T) {
	w := postJSON(t, CreateBanner(nil), `{"title": "Summer sale"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorField(t, w); msg != "Title and image URL are required" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestUpdateBannerStatusRequiresBoolean(t *testing.T) {
	for _, body := range []string{`{}`, `{"is_active": "yes"}`} {
		w := postJSON(t, UpdateBannerStatus(nil), body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
		if msg := errorField(t, w); msg != "is_active must be a boolean value" {
			t.Errorf("body %s: unexpected error message: %q", body, msg)
		}
	}
}

func TestSignupRequiresCredentials(t *testing.T) {
	w := postJSON(t, Signup(nil, testCfg()), `{"email": "jane@example.com"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if msg := errorField(t, w); msg != "Email and password are required" {
		t.Errorf("unexpected error message: %q", msg)
	}
}

func TestUploadImageRequiresFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(nil))

	UploadImage(nil, "uploads")(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
