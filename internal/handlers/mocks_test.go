package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"cashflow/internal/filters"
	"cashflow/internal/forms"
	"cashflow/internal/logger"
	"cashflow/internal/middleware"
	"cashflow/internal/models"
	"cashflow/internal/services"
	"cashflow/web"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// --- mock status service ---

type mockStatusService struct {
	listStatusesFn      func() ([]models.Status, error)
	getStatusByIDFn     func(id uint) (*models.Status, error)
	getOrCreateStatusFn func(name string) (*models.Status, bool, error)
	createStatusFn      func(name string) (*models.Status, error)
	deleteStatusFn      func(id uint) error
}

func (m *mockStatusService) ListStatuses() ([]models.Status, error) {
	if m.listStatusesFn != nil {
		return m.listStatusesFn()
	}
	return []models.Status{}, nil
}

func (m *mockStatusService) GetStatusByID(id uint) (*models.Status, error) {
	if m.getStatusByIDFn != nil {
		return m.getStatusByIDFn(id)
	}
	return &models.Status{}, nil
}

func (m *mockStatusService) GetOrCreateStatus(name string) (*models.Status, bool, error) {
	if m.getOrCreateStatusFn != nil {
		return m.getOrCreateStatusFn(name)
	}
	return &models.Status{Name: name}, true, nil
}

func (m *mockStatusService) CreateStatus(name string) (*models.Status, error) {
	if m.createStatusFn != nil {
		return m.createStatusFn(name)
	}
	return &models.Status{Name: name}, nil
}

func (m *mockStatusService) DeleteStatus(id uint) error {
	if m.deleteStatusFn != nil {
		return m.deleteStatusFn(id)
	}
	return nil
}

var _ services.StatusServicer = (*mockStatusService)(nil)

// --- mock type service ---

type mockTypeService struct {
	listTypesFn       func() ([]models.Type, error)
	getOrCreateTypeFn func(name string) (*models.Type, bool, error)
}

func (m *mockTypeService) ListTypes() ([]models.Type, error) {
	if m.listTypesFn != nil {
		return m.listTypesFn()
	}
	return []models.Type{}, nil
}

func (m *mockTypeService) GetTypeByID(_ uint) (*models.Type, error) {
	return &models.Type{}, nil
}

func (m *mockTypeService) GetOrCreateType(name string) (*models.Type, bool, error) {
	if m.getOrCreateTypeFn != nil {
		return m.getOrCreateTypeFn(name)
	}
	return &models.Type{Name: name}, true, nil
}

func (m *mockTypeService) CreateType(name string) (*models.Type, error) {
	return &models.Type{Name: name}, nil
}

func (m *mockTypeService) DeleteType(_ uint) error {
	return nil
}

var _ services.TypeServicer = (*mockTypeService)(nil)

// --- mock category service ---

type mockCategoryService struct {
	listCategoriesFn      func() ([]models.Category, error)
	getCategoriesByTypeFn func(typeID uint) ([]models.LookupItem, error)
	createCategoryFn      func(name string) (*models.Category, error)
}

func (m *mockCategoryService) ListCategories() ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn()
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(_ uint) (*models.Category, error) {
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetCategoriesByType(typeID uint) ([]models.LookupItem, error) {
	if m.getCategoriesByTypeFn != nil {
		return m.getCategoriesByTypeFn(typeID)
	}
	return nil, nil
}

func (m *mockCategoryService) CreateCategory(name string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(name)
	}
	return &models.Category{Name: name}, nil
}

func (m *mockCategoryService) DeleteCategory(_ uint) error {
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

// --- mock subcategory service ---

type mockSubcategoryService struct {
	listSubcategoriesFn          func() ([]models.Subcategory, error)
	getSubcategoriesByCategoryFn func(categoryID uint) ([]models.LookupItem, error)
	createSubcategoryFn          func(categoryID uint, name string) (*models.Subcategory, error)
}

func (m *mockSubcategoryService) ListSubcategories() ([]models.Subcategory, error) {
	if m.listSubcategoriesFn != nil {
		return m.listSubcategoriesFn()
	}
	return []models.Subcategory{}, nil
}

func (m *mockSubcategoryService) GetSubcategoryByID(_ uint) (*models.Subcategory, error) {
	return &models.Subcategory{}, nil
}

func (m *mockSubcategoryService) GetSubcategoriesByCategory(categoryID uint) ([]models.LookupItem, error) {
	if m.getSubcategoriesByCategoryFn != nil {
		return m.getSubcategoriesByCategoryFn(categoryID)
	}
	return []models.LookupItem{}, nil
}

func (m *mockSubcategoryService) CreateSubcategory(categoryID uint, name string) (*models.Subcategory, error) {
	if m.createSubcategoryFn != nil {
		return m.createSubcategoryFn(categoryID, name)
	}
	return &models.Subcategory{Name: name, CategoryID: categoryID}, nil
}

func (m *mockSubcategoryService) DeleteSubcategory(_ uint) error {
	return nil
}

var _ services.SubcategoryServicer = (*mockSubcategoryService)(nil)

// --- mock record service ---

type mockRecordService struct {
	listRecordsFn   func(filter filters.RecordFilter) ([]models.Record, error)
	getRecordByIDFn func(id uint) (*models.Record, error)
	createRecordFn  func(input forms.RecordInput) (*models.Record, error)
	updateRecordFn  func(id uint, input forms.RecordInput) (*models.Record, error)
	deleteRecordFn  func(id uint) error
}

func (m *mockRecordService) ListRecords(filter filters.RecordFilter) ([]models.Record, error) {
	if m.listRecordsFn != nil {
		return m.listRecordsFn(filter)
	}
	return []models.Record{}, nil
}

func (m *mockRecordService) GetRecordByID(id uint) (*models.Record, error) {
	if m.getRecordByIDFn != nil {
		return m.getRecordByIDFn(id)
	}
	return &models.Record{Base: models.Base{ID: id}}, nil
}

func (m *mockRecordService) CreateRecord(input forms.RecordInput) (*models.Record, error) {
	if m.createRecordFn != nil {
		return m.createRecordFn(input)
	}
	return &models.Record{}, nil
}

func (m *mockRecordService) UpdateRecord(id uint, input forms.RecordInput) (*models.Record, error) {
	if m.updateRecordFn != nil {
		return m.updateRecordFn(id, input)
	}
	return &models.Record{Base: models.Base{ID: id}}, nil
}

func (m *mockRecordService) DeleteRecord(id uint) error {
	if m.deleteRecordFn != nil {
		return m.deleteRecordFn(id)
	}
	return nil
}

var _ services.RecordServicer = (*mockRecordService)(nil)

// --- helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func parseJSONArray(t *testing.T, rec *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON array: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorMessage(t *testing.T, result map[string]interface{}, message string) {
	t.Helper()
	if result["error"] != message {
		t.Errorf("expected error %q, got %v", message, result["error"])
	}
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	tmpl, err := web.Templates()
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(middleware.ErrorHandler())
	return r
}
