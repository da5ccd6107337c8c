package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shamim-001/portfolio-backend/models"
	"github.com/shamim-001/portfolio-backend/store"
)

const testPassword = "correct-horse-battery"

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	st := store.New(filepath.Join(t.TempDir(), "data"))
	c := map[string]string{
		"ADMIN_SESSION_SECRET": "test-secret",
		"ADMIN_PASSWORD":       testPassword,
		"SECURE_COOKIES":       "false",
		"UPLOAD_DIR":           t.TempDir(),
		"ACCEPTED_ORIGINS":     "*",
	}
	return newRouter(st, withConfig(c), withStartupTime(time.Now()))
}

func loginCookie(t *testing.T, router *chi.Mux) *http.Cookie {
	t.Helper()

	body := fmt.Sprintf(`{"password":%q}`, testPassword)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "admin_session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("login response carried no session cookie")
	return nil
}

func doJSON(router *chi.Mux, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestProjectListStartsEmpty(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/projects", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var projects []models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &projects); err != nil {
		t.Fatalf("body %q is not a project array: %v", rec.Body.String(), err)
	}
	if len(projects) != 0 {
		t.Errorf("len = %d, want 0", len(projects))
	}
}

func TestMutationsRequireSession(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/projects"},
		{http.MethodPut, "/api/projects/4b4a4bf6-0000-0000-0000-000000000000"},
		{http.MethodDelete, "/api/projects/4b4a4bf6-0000-0000-0000-000000000000"},
		{http.MethodPost, "/api/case-studies"},
		{http.MethodPost, "/api/upload"},
	}

	for _, tt := range tests {
		rec := doJSON(router, tt.method, tt.path, `{}`, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s status = %d, want 401", tt.method, tt.path, rec.Code)
		}
	}

	// a forged cookie is rejected too
	forged := &http.Cookie{Name: "admin_session", Value: "not.a.token"}
	rec := doJSON(router, http.MethodPost, "/api/projects", `{}`, forged)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("forged cookie status = %d, want 401", rec.Code)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/admin/login", `{"password":"wrong"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLoginLockout(t *testing.T) {
	router := newTestRouter(t)

	var last int
	for i := 0; i < 6; i++ {
		rec := doJSON(router, http.MethodPost, "/api/admin/login", `{"password":"wrong"}`, nil)
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("6th failed login status = %d, want 429", last)
	}
}

func TestProjectCRUDFlow(t *testing.T) {
	router := newTestRouter(t)
	cookie := loginCookie(t, router)

	// create with tags as a comma string
	createBody := `{"title":"Site A","description":"d","image":"/i.png","link":"https://a.com","tags":"a, b"}`
	rec := doJSON(router, http.MethodPost, "/api/projects", createBody, cookie)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var created models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if len(created.Tags) != 2 || created.Tags[0] != "a" || created.Tags[1] != "b" {
		t.Errorf("created tags = %v, want [a b]", created.Tags)
	}
	if created.Featured {
		t.Error("featured should default to false")
	}

	// public read
	rec = doJSON(router, http.MethodGet, "/api/projects/"+created.ID.String(), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	// partial update
	rec = doJSON(router, http.MethodPut, "/api/projects/"+created.ID.String(), `{"title":"Site A2"}`, cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var updated models.Project
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Site A2" || updated.Link != created.Link {
		t.Errorf("update merged wrong: %+v", updated)
	}

	// delete, then 404
	rec = doJSON(router, http.MethodDelete, "/api/projects/"+created.ID.String(), "", cookie)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(router, http.MethodGet, "/api/projects/"+created.ID.String(), "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", rec.Code)
	}
}

func TestProjectValidationResponse(t *testing.T) {
	router := newTestRouter(t)
	cookie := loginCookie(t, router)

	rec := doJSON(router, http.MethodPost, "/api/projects", `{"title":"only a title"}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"fields"`) {
		t.Errorf("body %q carries no field details", rec.Body.String())
	}
}

func TestProjectFeatureLimitConflict(t *testing.T) {
	router := newTestRouter(t)
	cookie := loginCookie(t, router)

	for i := 0; i < store.FeaturedLimit; i++ {
		body := fmt.Sprintf(`{"title":"P%d","description":"d","image":"/i.png","link":"https://a.com","featured":true}`, i)
		rec := doJSON(router, http.MethodPost, "/api/projects", body, cookie)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d", i, rec.Code)
		}
	}

	body := `{"title":"P4","description":"d","image":"/i.png","link":"https://a.com","featured":true}`
	rec := doJSON(router, http.MethodPost, "/api/projects", body, cookie)
	if rec.Code != http.StatusConflict {
		t.Errorf("4th featured status = %d, want 409", rec.Code)
	}
}

func TestCaseStudyInvalidID(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/api/case-studies/not-a-uuid", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestContactUnconfigured(t *testing.T) {
	router := newTestRouter(t)

	body := `{"name":"Ada","email":"ada@example.com","subject":"A project","message":"I need a website built."}`
	rec := doJSON(router, http.MethodPost, "/api/contact", body, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without mail config", rec.Code)
	}
}

func TestUploadThroughHandler(t *testing.T) {
	router := newTestRouter(t)
	cookie := loginCookie(t, router)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="logo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte("png bytes")); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"/uploads/`) {
		t.Errorf("body %q carries no upload url", rec.Body.String())
	}
}

func TestUploadOversizedFile(t *testing.T) {
	router := newTestRouter(t)
	cookie := loginCookie(t, router)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="huge.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("x"), 6*1024*1024)); err != nil {
		t.Fatal(err)
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "maximum limit") {
		t.Errorf("body %q carries no size-limit error", rec.Body.String())
	}
}

func TestAuditRequestUnconfigured(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/request-audit", `{"websiteUrl":"https://a.com"}`, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 without mail config", rec.Code)
	}
}

func TestAuditRequestInvalidURL(t *testing.T) {
	st := store.New(filepath.Join(t.TempDir(), "data"))
	c := map[string]string{
		"ADMIN_SESSION_SECRET": "test-secret",
		"ADMIN_PASSWORD":       testPassword,
		"SECURE_COOKIES":       "false",
		"UPLOAD_DIR":           t.TempDir(),
		"RESEND_API_KEY":       "re_test",
		"RESEND_FROM_EMAIL":    "site@example.com",
		"CONTACT_RECIPIENT":    "owner@example.com",
	}
	router := newRouter(st, withConfig(c), withStartupTime(time.Now()))

	rec := doJSON(router, http.MethodPost, "/api/request-audit", `{"websiteUrl":"not a url"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "websiteUrl") {
		t.Errorf("body %q carries no websiteUrl field error", rec.Body.String())
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing X-Content-Type-Options header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options header")
	}
}
