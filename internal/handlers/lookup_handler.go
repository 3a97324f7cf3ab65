package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"cashflow/internal/models"
	"cashflow/internal/services"
)

const (
	msgInvalidRequest       = "Invalid request"
	msgInvalidRequestMethod = "Invalid request method"
	msgNameRequired         = "Name is required"
	msgCategoryIDRequired   = "Category ID is required"
)

// LookupHandler serves the quick-add and dependent-dropdown endpoints.
type LookupHandler struct {
	statusService      services.StatusServicer
	typeService        services.TypeServicer
	categoryService    services.CategoryServicer
	subcategoryService services.SubcategoryServicer
}

// NewLookupHandler creates a new LookupHandler
func NewLookupHandler(
	statusService services.StatusServicer,
	typeService services.TypeServicer,
	categoryService services.CategoryServicer,
	subcategoryService services.SubcategoryServicer,
) *LookupHandler {
	return &LookupHandler{
		statusService:      statusService,
		typeService:        typeService,
		categoryService:    categoryService,
		subcategoryService: subcategoryService,
	}
}

// QuickAddStatus returns the status with the posted name, creating it if needed
// @Summary     Quick-add a status
// @Description Get-or-create a status by name. Repeating the call returns the same status.
// @Tags        lookups
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       name formData string true "Status name"
// @Success     200 {object} models.LookupItem
// @Failure     400 {object} ErrorResponse "Invalid request"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /status/quick-add/ [post]
func (h *LookupHandler) QuickAddStatus(c *gin.Context) {
	if !requireMethod(c, http.MethodPost, msgInvalidRequest) {
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidRequest})
		return
	}

	status, _, err := h.statusService.GetOrCreateStatus(name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LookupItem{ID: status.ID, Name: status.Name})
}

// QuickAddType returns the type with the posted name, creating it if needed
// @Summary     Quick-add a type
// @Description Get-or-create a type by name. Repeating the call returns the same type.
// @Tags        lookups
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       name formData string true "Type name"
// @Success     200 {object} models.LookupItem
// @Failure     400 {object} ErrorResponse "Invalid request"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /type/quick-add/ [post]
func (h *LookupHandler) QuickAddType(c *gin.Context) {
	if !requireMethod(c, http.MethodPost, msgInvalidRequest) {
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidRequest})
		return
	}

	typ, _, err := h.typeService.GetOrCreateType(name)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LookupItem{ID: typ.ID, Name: typ.Name})
}

// QuickAddCategory creates a category
// @Summary     Quick-add a category
// @Description Create a category. Fails when the name is already taken.
// @Tags        lookups
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       name formData string true "Category name"
// @Success     200 {object} models.LookupItem
// @Failure     400 {object} ErrorResponse "Missing name or duplicate"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /category/quick-add/ [post]
func (h *LookupHandler) QuickAddCategory(c *gin.Context) {
	if !requireMethod(c, http.MethodPost, msgInvalidRequestMethod) {
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgNameRequired})
		return
	}

	category, err := h.categoryService.CreateCategory(name)
	if err != nil {
		respondWithStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LookupItem{ID: category.ID, Name: category.Name})
}

// QuickAddSubcategory creates a subcategory under the posted category
// @Summary     Quick-add a subcategory
// @Description Create a subcategory. The parent category is not checked beforehand.
// @Tags        lookups
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       category_id formData int    true "Parent category ID"
// @Param       name        formData string true "Subcategory name"
// @Success     200 {object} models.LookupItem
// @Failure     400 {object} ErrorResponse "Missing parameter, duplicate or unknown category"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /subcategory/quick-add/ [post]
func (h *LookupHandler) QuickAddSubcategory(c *gin.Context) {
	if !requireMethod(c, http.MethodPost, msgInvalidRequestMethod) {
		return
	}
	rawCategoryID := strings.TrimSpace(c.PostForm("category_id"))
	if rawCategoryID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgCategoryIDRequired})
		return
	}
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgNameRequired})
		return
	}

	categoryID, err := strconv.ParseUint(rawCategoryID, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: fmt.Sprintf("Field 'category_id' expected a number but got '%s'.", rawCategoryID),
		})
		return
	}

	sub, err := h.subcategoryService.CreateSubcategory(uint(categoryID), name)
	if err != nil {
		respondWithStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LookupItem{ID: sub.ID, Name: sub.Name})
}

// GetCategories lists the categories used by records of a type
// @Summary     Categories by type
// @Tags        lookups
// @Produce     json
// @Param       type_id query int false "Type ID"
// @Success     200 {array} models.LookupItem
// @Failure     400 {object} ErrorResponse "Invalid request method"
// @Router      /get_categories/ [get]
func (h *LookupHandler) GetCategories(c *gin.Context) {
	if !requireMethod(c, http.MethodGet, msgInvalidRequestMethod) {
		return
	}
	typeID, ok := queryID(c, "type_id")
	if !ok {
		c.JSON(http.StatusOK, []models.LookupItem{})
		return
	}

	items, err := h.categoryService.GetCategoriesByType(typeID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

// GetSubcategories lists the subcategories of a category
// @Summary     Subcategories by category
// @Tags        lookups
// @Produce     json
// @Param       category_id query int false "Category ID"
// @Success     200 {array} models.LookupItem
// @Failure     400 {object} ErrorResponse "Invalid request method"
// @Router      /get_subcategories/ [get]
func (h *LookupHandler) GetSubcategories(c *gin.Context) {
	if !requireMethod(c, http.MethodGet, msgInvalidRequestMethod) {
		return
	}
	categoryID, ok := queryID(c, "category_id")
	if !ok {
		c.JSON(http.StatusOK, []models.LookupItem{})
		return
	}

	items, err := h.subcategoryService.GetSubcategoriesByCategory(categoryID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

// queryID parses a positive id query parameter. ok is false when it is
// absent or malformed.
func queryID(c *gin.Context, key string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Query(key)), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func nonNil(items []models.LookupItem) []models.LookupItem {
	if items == nil {
		return []models.LookupItem{}
	}
	return items
}
