package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"cashflow/internal/models"
	"cashflow/internal/testutil"
	"cashflow/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

// testApp holds the full application stack for end-to-end tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	r, err := New(NewServices(db))
	if err != nil {
		t.Fatalf("failed to build router: %v", err)
	}
	return &testApp{DB: db, Router: r}
}

func (app *testApp) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// quickAdd posts form to a quick-add endpoint and returns the created id.
func (app *testApp) quickAdd(t *testing.T, path string, form url.Values) uint {
	t.Helper()

	rec := app.do(t, http.MethodPost, path, form)
	if rec.Code != http.StatusOK {
		t.Fatalf("%s: expected 200, got %d: %s", path, rec.Code, rec.Body.String())
	}
	var item models.LookupItem
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("%s: invalid JSON: %v", path, err)
	}
	if item.ID == 0 {
		t.Fatalf("%s: expected an id, got %s", path, rec.Body.String())
	}
	return item.ID
}

func name(n string) url.Values {
	return url.Values{"name": {n}}
}

func id(v uint) string {
	return fmt.Sprint(v)
}

func TestRecordLifecycle(t *testing.T) {
	app := setupApp(t)

	statusID := app.quickAdd(t, "/status/quick-add/", name("Personal"))
	typeID := app.quickAdd(t, "/type/quick-add/", name("Expense"))
	categoryID := app.quickAdd(t, "/category/quick-add/", name("Food"))
	subcategoryID := app.quickAdd(t, "/subcategory/quick-add/", url.Values{
		"category_id": {id(categoryID)},
		"name":        {"Snacks"},
	})

	rec := app.do(t, http.MethodPost, "/add/", url.Values{
		"date":        {"2024-03-01"},
		"status":      {id(statusID)},
		"type":        {id(typeID)},
		"category":    {id(categoryID)},
		"subcategory": {id(subcategoryID)},
		"amount":      {"50.00"},
	})
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.do(t, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"50.00", "2024-03-01", "Food", "Snacks"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected list to contain %q", want)
		}
	}

	var record models.Record
	if err := app.DB.First(&record).Error; err != nil {
		t.Fatalf("record not stored: %v", err)
	}

	t.Run("lookups", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/get_subcategories/?category_id="+id(categoryID), nil)
		if got := rec.Body.String(); got != fmt.Sprintf(`[{"id":%d,"name":"Snacks"}]`, subcategoryID) {
			t.Errorf("unexpected subcategories: %s", got)
		}

		rec = app.do(t, http.MethodGet, "/get_categories/?type_id="+id(typeID), nil)
		if got := rec.Body.String(); got != fmt.Sprintf(`[{"id":%d,"name":"Food"}]`, categoryID) {
			t.Errorf("unexpected categories: %s", got)
		}

		rec = app.do(t, http.MethodGet, "/get_categories/?type_id=999", nil)
		if rec.Body.String() != "[]" {
			t.Errorf("expected [], got %s", rec.Body.String())
		}
	})

	t.Run("filter", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/?date_after=2024-03-02", nil)
		if strings.Contains(rec.Body.String(), "50.00") {
			t.Error("record before date_after must be filtered out")
		}
		rec = app.do(t, http.MethodGet, "/?date_before=2024-03-01&category="+id(categoryID), nil)
		if !strings.Contains(rec.Body.String(), "50.00") {
			t.Error("record on the inclusive bound must be listed")
		}
	})

	t.Run("edit", func(t *testing.T) {
		path := fmt.Sprintf("/edit-record/%d/", record.ID)

		rec := app.do(t, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `value="50.00"`) {
			t.Fatalf("expected pre-populated form, got %d", rec.Code)
		}

		rec = app.do(t, http.MethodPost, path, url.Values{
			"date":        {"2024-03-02"},
			"status":      {id(statusID)},
			"type":        {id(typeID)},
			"category":    {id(categoryID)},
			"subcategory": {id(subcategoryID)},
			"amount":      {"75.5"},
			"comment":     {"updated"},
		})
		if rec.Code != http.StatusFound {
			t.Fatalf("expected 302, got %d: %s", rec.Code, rec.Body.String())
		}

		var updated models.Record
		if err := app.DB.First(&updated, record.ID).Error; err != nil {
			t.Fatalf("record lost: %v", err)
		}
		if updated.FormattedAmount() != "75.50" || updated.Comment != "updated" {
			t.Errorf("unexpected record after edit: %s %q", updated, updated.Comment)
		}
	})

	t.Run("protected lookups", func(t *testing.T) {
		if n := testutil.CountRows(t, app.DB, &models.Category{}); n != 1 {
			t.Fatalf("expected 1 category, got %d", n)
		}
		svc := NewServices(app.DB)
		testutil.AssertAppError(t, svc.Categories.DeleteCategory(categoryID), "CATEGORY_IN_USE")
	})

	t.Run("delete twice", func(t *testing.T) {
		path := fmt.Sprintf("/delete/%d/", record.ID)

		rec := app.do(t, http.MethodPost, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		rec = app.do(t, http.MethodPost, path, nil)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), fmt.Sprintf("Record %d not found", record.ID)) {
			t.Errorf("unexpected body: %s", rec.Body.String())
		}
	})
}

func TestInvalidSubmission(t *testing.T) {
	app := setupApp(t)

	rec := app.do(t, http.MethodPost, "/add/", url.Values{"amount": {"0"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Amount must be greater than zero.", "This selection is required"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected body to contain %q", want)
		}
	}
	if n := testutil.CountRows(t, app.DB, &models.Record{}); n != 0 {
		t.Errorf("expected no record, got %d", n)
	}

	rec = app.do(t, http.MethodPost, "/add/", url.Values{
		"status":      {"999"},
		"type":        {"999"},
		"category":    {"999"},
		"subcategory": {"999"},
		"amount":      {"10"},
	})
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Select a valid choice.") {
		t.Errorf("expected invalid choice errors, got %d", rec.Code)
	}
}

func TestQuickAddSemantics(t *testing.T) {
	app := setupApp(t)

	t.Run("status is idempotent", func(t *testing.T) {
		first := app.quickAdd(t, "/status/quick-add/", name("Business"))
		second := app.quickAdd(t, "/status/quick-add/", name("Business"))
		if first != second {
			t.Errorf("expected the same status, got %d and %d", first, second)
		}
	})

	t.Run("duplicate category fails", func(t *testing.T) {
		app.quickAdd(t, "/category/quick-add/", name("Travel"))

		rec := app.do(t, http.MethodPost, "/category/quick-add/", name("Travel"))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if !strings.Contains(strings.ToLower(body["error"]), "unique") {
			t.Errorf("expected storage message, got %q", body["error"])
		}
	})

	t.Run("dangling subcategory parent", func(t *testing.T) {
		rec := app.do(t, http.MethodPost, "/subcategory/quick-add/", url.Values{
			"category_id": {"99999"},
			"name":        {"Orphan"},
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("wrong methods", func(t *testing.T) {
		for path, want := range map[string]string{
			"/status/quick-add/":      `{"error":"Invalid request"}`,
			"/type/quick-add/":        `{"error":"Invalid request"}`,
			"/category/quick-add/":    `{"error":"Invalid request method"}`,
			"/subcategory/quick-add/": `{"error":"Invalid request method"}`,
		} {
			rec := app.do(t, http.MethodGet, path, nil)
			if rec.Code != http.StatusBadRequest || rec.Body.String() != want {
				t.Errorf("GET %s: expected 400 %s, got %d %s", path, want, rec.Code, rec.Body.String())
			}
		}
		rec := app.do(t, http.MethodPost, "/get_subcategories/?category_id=1", url.Values{})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST lookup: expected 400, got %d", rec.Code)
		}
	})
}

func TestInfrastructureRoutes(t *testing.T) {
	app := setupApp(t)

	t.Run("health", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/api/health", nil)
		if rec.Code != http.StatusOK || rec.Body.String() != `{"status":"ok"}` {
			t.Errorf("unexpected health response: %d %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("static assets with security headers", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/static/js/form.js", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Error("expected security headers")
		}
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("expected a request id")
		}
	})

	t.Run("swagger doc", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/swagger/doc.json", nil)
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/category/quick-add/") {
			t.Errorf("unexpected doc response: %d", rec.Code)
		}
	})

	t.Run("unknown page", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/nope", nil)
		if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "Back to records") {
			t.Errorf("expected HTML 404 page, got %d", rec.Code)
		}
	})

	t.Run("unknown record", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/edit-record/12345/", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("delete requires POST", func(t *testing.T) {
		rec := app.do(t, http.MethodGet, "/delete/1/", nil)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}
