package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vitrine-cms/vitrine/internal/adapters/sqlite"
	"github.com/vitrine-cms/vitrine/internal/app/ports"
	"github.com/vitrine-cms/vitrine/internal/app/services"
	"github.com/vitrine-cms/vitrine/internal/db"
	"github.com/vitrine-cms/vitrine/internal/uploads"
)

type testApp struct {
	e        *echo.Echo
	sessions *services.SessionAuthority
	gallery  ports.OrderedCollectionStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	database, err := db.New(filepath.Join(t.TempDir(), "routes-test"))
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	sessions := services.NewSessionAuthority([]byte("routes-test-secret"))
	identity := services.NewIdentityService(sqlite.NewIdentityStore(database), sessions)
	if err := identity.Seed(context.Background(), "admin@site.test", "correct horse"); err != nil {
		t.Fatalf("seed identity: %v", err)
	}
	inquiries := services.NewInquiryService(sqlite.NewInquiryStore(database), nil, nil)
	ingestor, err := uploads.NewIngestor(t.TempDir())
	if err != nil {
		t.Fatalf("new ingestor: %v", err)
	}
	gallery := sqlite.NewGalleryStore(database)

	e := echo.New()
	for _, register := range []interface{ RegisterRoutes(*echo.Echo) }{
		NewAuthRoutes(identity, sessions, false),
		NewPageRoutes(sessions),
		NewSectionRoutes(sqlite.NewSectionStore(database), sessions),
		NewCollectionRoutes("gallery", gallery, sessions),
		NewCollectionRoutes("portfolio", sqlite.NewPortfolioStore(database), sessions),
		NewInquiryRoutes(inquiries, sessions),
		NewUploadRoutes(ingestor, sessions),
	} {
		register.RegisterRoutes(e)
	}

	return &testApp{e: e, sessions: sessions, gallery: gallery}
}

func (a *testApp) request(t *testing.T, method, target string, body []byte, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if authenticated {
		token, err := a.sessions.Issue("admin@site.test", services.RoleAdmin)
		if err != nil {
			t.Fatalf("issue token: %v", err)
		}
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func TestLoginSetsSessionCookie(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/auth/login",
		[]byte(`{"email":"admin@site.test","password":"correct horse"}`), false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil || sessionCookie.Value == "" {
		t.Fatal("expected session cookie to be set")
	}
	if !sessionCookie.HttpOnly {
		t.Fatal("expected HttpOnly session cookie")
	}
	if _, err := app.sessions.Verify(sessionCookie.Value); err != nil {
		t.Fatalf("expected verifiable token in cookie: %v", err)
	}
}

func TestLoginFailuresShareOneResponse(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	unknown := app.request(t, http.MethodPost, "/api/auth/login",
		[]byte(`{"email":"nobody@site.test","password":"correct horse"}`), false)
	wrong := app.request(t, http.MethodPost, "/api/auth/login",
		[]byte(`{"email":"admin@site.test","password":"battery staple"}`), false)

	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for both failures, got %d and %d", unknown.Code, wrong.Code)
	}
	if unknown.Body.String() != wrong.Body.String() {
		t.Fatalf("expected identical bodies, got %s and %s", unknown.Body, wrong.Body)
	}
}

func TestAdminEndpointsRequireAuth(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	cases := []struct {
		method string
		target string
	}{
		{http.MethodPost, "/api/gallery"},
		{http.MethodPut, "/api/gallery/reorder"},
		{http.MethodDelete, "/api/gallery/some-id"},
		{http.MethodPut, "/api/sections/hero"},
		{http.MethodGet, "/api/inquiries"},
		{http.MethodPost, "/api/uploads"},
		{http.MethodPut, "/api/auth/password"},
	}
	for _, tc := range cases {
		rec := app.request(t, tc.method, tc.target, []byte(`{}`), false)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.target, rec.Code)
		}
	}
}

func TestPublicReadsNeedNoAuth(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	for _, target := range []string{"/api/gallery", "/api/portfolio"} {
		rec := app.request(t, http.MethodGet, target, nil, false)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", target, rec.Code)
		}
	}
}

func TestPageGateRedirects(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	rec := app.request(t, http.MethodGet, "/admin", nil, false)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to /login, got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = app.request(t, http.MethodGet, "/login", nil, true)
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/admin" {
		t.Fatalf("expected redirect to /admin, got %d %s", rec.Code, rec.Header().Get("Location"))
	}

	rec = app.request(t, http.MethodGet, "/login", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected login page for anonymous visitor, got %d", rec.Code)
	}
	rec = app.request(t, http.MethodGet, "/admin", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected admin page for authenticated visitor, got %d", rec.Code)
	}
}

func TestGalleryLifecycleOverHTTP(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	ids := make([]string, 0, 3)
	for _, title := range []string{"a", "b", "c"} {
		rec := app.request(t, http.MethodPost, "/api/gallery",
			[]byte(`{"title":"`+title+`"}`), true)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %s: expected 201, got %d: %s", title, rec.Code, rec.Body)
		}
		var item ports.OrderedItem
		if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
			t.Fatalf("decode created item: %v", err)
		}
		ids = append(ids, item.ID)
	}

	// reorder [c, a, b]
	payload, _ := json.Marshal(map[string][]string{"ids": {ids[2], ids[0], ids[1]}})
	rec := app.request(t, http.MethodPut, "/api/gallery/reorder", payload, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder: expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var reordered []ports.OrderedItem
	if err := json.Unmarshal(rec.Body.Bytes(), &reordered); err != nil {
		t.Fatalf("decode reordered items: %v", err)
	}
	if reordered[0].ID != ids[2] || reordered[1].ID != ids[0] || reordered[2].ID != ids[1] {
		t.Fatalf("unexpected order after reorder: %+v", reordered)
	}

	// delete a, expect the gap to survive until compact
	rec = app.request(t, http.MethodDelete, "/api/gallery/"+ids[0], nil, true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	rec = app.request(t, http.MethodGet, "/api/gallery", nil, false)
	var listed []ports.OrderedItem
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed) != 2 || listed[0].Position != 1 || listed[1].Position != 3 {
		t.Fatalf("expected positions 1 and 3 after delete, got %+v", listed)
	}

	rec = app.request(t, http.MethodPost, "/api/gallery/compact", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("compact: expected 200, got %d", rec.Code)
	}
	var compacted []ports.OrderedItem
	if err := json.Unmarshal(rec.Body.Bytes(), &compacted); err != nil {
		t.Fatalf("decode compacted items: %v", err)
	}
	if compacted[0].Position != 1 || compacted[1].Position != 2 {
		t.Fatalf("expected dense positions after compact, got %+v", compacted)
	}
}

func TestReorderRejectsPartialSequenceOverHTTP(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	item, err := app.gallery.Append(context.Background(), ports.OrderedItemFields{Title: "only"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := app.gallery.Append(context.Background(), ports.OrderedItemFields{Title: "second"}); err != nil {
		t.Fatalf("append second: %v", err)
	}

	payload, _ := json.Marshal(map[string][]string{"ids": {item.ID}})
	rec := app.request(t, http.MethodPut, "/api/gallery/reorder", payload, true)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for partial reorder, got %d: %s", rec.Code, rec.Body)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body["message"] == "" {
		t.Fatal("expected a message field in error body")
	}
}

func TestSectionReplaceAndPublicRead(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	document := []byte(`{"headline":"Welcome"}`)
	rec := app.request(t, http.MethodPut, "/api/sections/hero", document, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("replace section: expected 200, got %d: %s", rec.Code, rec.Body)
	}

	rec = app.request(t, http.MethodGet, "/api/sections/hero", nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("get section: expected 200, got %d", rec.Code)
	}
	var response struct {
		Name     string          `json:"name"`
		Document json.RawMessage `json:"document"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode section: %v", err)
	}
	if response.Name != "hero" || string(response.Document) != string(document) {
		t.Fatalf("unexpected section response: %+v", response)
	}

	rec = app.request(t, http.MethodGet, "/api/sections/missing", nil, false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing section, got %d", rec.Code)
	}
}

func TestInquirySubmitListDeleteOverHTTP(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	rec := app.request(t, http.MethodPost, "/api/inquiries",
		[]byte(`{"first_name":"Ada","email":"ada@site.test","message":"hello"}`), false)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit inquiry: expected 201, got %d: %s", rec.Code, rec.Body)
	}
	var inquiry ports.Inquiry
	if err := json.Unmarshal(rec.Body.Bytes(), &inquiry); err != nil {
		t.Fatalf("decode inquiry: %v", err)
	}

	rec = app.request(t, http.MethodPost, "/api/inquiries",
		[]byte(`{"email":"ada@site.test"}`), false)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing message, got %d", rec.Code)
	}

	rec = app.request(t, http.MethodGet, "/api/inquiries", nil, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("list inquiries: expected 200, got %d", rec.Code)
	}

	rec = app.request(t, http.MethodDelete, "/api/inquiries/"+inquiry.ID, nil, true)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete inquiry: expected 204, got %d", rec.Code)
	}
	rec = app.request(t, http.MethodDelete, "/api/inquiries/"+inquiry.ID, nil, true)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on repeat delete, got %d", rec.Code)
	}
}

func TestUploadAndRetrieveOverHTTP(t *testing.T) {
	t.Parallel()
	app := newTestApp(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "photo.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("png-bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.WriteField("section", "gallery"); err != nil {
		t.Fatalf("write section field: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	token, err := app.sessions.Issue("admin@site.test", services.RoleAdmin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &body)
	req.Header.Set(echo.HeaderContentType, writer.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	app.e.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d: %s", rec.Code, rec.Body)
	}

	var response map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	reference := response["path"]
	if !strings.HasPrefix(reference, "/uploads/gallery/") || !strings.HasSuffix(reference, "-photo.png") {
		t.Fatalf("unexpected reference path: %s", reference)
	}

	rec = app.request(t, http.MethodGet, reference, nil, false)
	if rec.Code != http.StatusOK {
		t.Fatalf("retrieve: expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "png-bytes" {
		t.Fatalf("unexpected asset body: %q", rec.Body)
	}
	if contentType := rec.Header().Get(echo.HeaderContentType); contentType != "image/png" {
		t.Fatalf("expected image/png, got %s", contentType)
	}

	rec = app.request(t, http.MethodGet, "/uploads/gallery/missing.png", nil, false)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing asset, got %d", rec.Code)
	}

	rec = app.request(t, http.MethodGet, "/uploads/gallery/../../../etc/passwd", nil, false)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for traversal attempt, got %d", rec.Code)
	}
}
