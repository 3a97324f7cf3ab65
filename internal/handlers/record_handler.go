package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	apperrors "cashflow/internal/errors"
	"cashflow/internal/filters"
	"cashflow/internal/forms"
	"cashflow/internal/logger"
	"cashflow/internal/models"
	"cashflow/internal/services"
)

// Template names rendered by RecordHandler.
const (
	templateRecordList = "record_list.html"
	templateRecordForm = "record_form.html"
)

// RecordHandler serves the record list and the add/edit/delete flows.
type RecordHandler struct {
	recordService      services.RecordServicer
	statusService      services.StatusServicer
	typeService        services.TypeServicer
	categoryService    services.CategoryServicer
	subcategoryService services.SubcategoryServicer
	now                func() time.Time
}

// NewRecordHandler creates a new RecordHandler
func NewRecordHandler(
	recordService services.RecordServicer,
	statusService services.StatusServicer,
	typeService services.TypeServicer,
	categoryService services.CategoryServicer,
	subcategoryService services.SubcategoryServicer,
) *RecordHandler {
	return &RecordHandler{
		recordService:      recordService,
		statusService:      statusService,
		typeService:        typeService,
		categoryService:    categoryService,
		subcategoryService: subcategoryService,
		now:                time.Now,
	}
}

// Choices holds every lookup value offered by the filter and form selects.
type Choices struct {
	Statuses      []models.Status
	Types         []models.Type
	Categories    []models.Category
	Subcategories []models.Subcategory
}

// RecordListPage is the view model of the record list.
type RecordListPage struct {
	Choices
	Records []models.Record
	Filter  url.Values
}

// RecordFormPage is the view model of the add and edit forms.
type RecordFormPage struct {
	Choices
	Title    string
	Action   string
	IsEdit   bool
	RecordID uint
	Form     forms.RecordForm
	Errors   apperrors.FieldErrors
}

func (h *RecordHandler) loadChoices() (Choices, error) {
	var (
		ch  Choices
		err error
	)
	if ch.Statuses, err = h.statusService.ListStatuses(); err != nil {
		return ch, err
	}
	if ch.Types, err = h.typeService.ListTypes(); err != nil {
		return ch, err
	}
	if ch.Categories, err = h.categoryService.ListCategories(); err != nil {
		return ch, err
	}
	if ch.Subcategories, err = h.subcategoryService.ListSubcategories(); err != nil {
		return ch, err
	}
	return ch, nil
}

// ListRecords renders the filtered record list.
func (h *RecordHandler) ListRecords(c *gin.Context) {
	filter := filters.FromQuery(c.Request.URL.Query())

	records, err := h.recordService.ListRecords(filter)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ch, err := h.loadChoices()
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.HTML(http.StatusOK, templateRecordList, RecordListPage{
		Choices: ch,
		Records: records,
		Filter:  filter.Values(),
	})
}

// AddRecord renders the empty form on GET and creates a record on POST.
func (h *RecordHandler) AddRecord(c *gin.Context) {
	page := RecordFormPage{Title: "Add Cash Flow Record", Action: "/add/"}

	if c.Request.Method != http.MethodPost {
		h.renderForm(c, page)
		return
	}

	form, input, ok := h.bindForm(c, &page)
	if !ok {
		return
	}
	if _, err := h.recordService.CreateRecord(*input); err != nil {
		h.handleSaveError(c, page, form, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// EditRecord renders the pre-populated form on GET and saves it on POST.
func (h *RecordHandler) EditRecord(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.ErrRecordNotFound, err))
		return
	}
	record, err := h.recordService.GetRecordByID(id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	page := RecordFormPage{
		Title:    "Edit Cash Flow Record",
		Action:   fmt.Sprintf("/edit-record/%d/", record.ID),
		IsEdit:   true,
		RecordID: record.ID,
	}

	if c.Request.Method != http.MethodPost {
		page.Form = forms.FormFromRecord(record)
		h.renderForm(c, page)
		return
	}

	form, input, ok := h.bindForm(c, &page)
	if !ok {
		return
	}
	if _, err := h.recordService.UpdateRecord(record.ID, *input); err != nil {
		h.handleSaveError(c, page, form, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// DeleteResponse is the body returned by DeleteRecord.
type DeleteResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"Record 1 deleted successfully"`
}

// DeleteRecord removes a record
// @Summary     Delete a record
// @Tags        records
// @Produce     json
// @Param       id path int true "Record ID"
// @Success     200 {object} DeleteResponse "Record deleted"
// @Failure     404 {object} DeleteResponse "Record not found"
// @Failure     500 {object} DeleteResponse "Server error"
// @Router      /delete/{id}/ [post]
func (h *RecordHandler) DeleteRecord(c *gin.Context) {
	raw := c.Param("id")
	notFound := DeleteResponse{Status: "error", Message: fmt.Sprintf("Record %s not found", raw)}

	id, err := parsePathID(c, "id")
	if err != nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}

	if err := h.recordService.DeleteRecord(id); err != nil {
		if errors.Is(err, apperrors.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
		logger.Get().Errorw("failed to delete record",
			"record_id", id,
			"error", err.Error(),
		)
		c.JSON(http.StatusInternalServerError, DeleteResponse{Status: "error", Message: "Server error"})
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{
		Status:  "success",
		Message: fmt.Sprintf("Record %d deleted successfully", id),
	})
}

// bindForm reads and validates the submitted form. On failure it renders
// the form with field errors and returns ok=false.
func (h *RecordHandler) bindForm(c *gin.Context, page *RecordFormPage) (forms.RecordForm, *forms.RecordInput, bool) {
	var form forms.RecordForm
	// Decode only; ValidateRecord trims the values before checking them.
	if err := c.Request.ParseForm(); err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return form, nil, false
	}
	if err := binding.MapFormWithTag(&form, c.Request.PostForm, "form"); err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.ErrInvalidInput, err))
		return form, nil, false
	}
	page.Form = form

	input, fieldErrs := forms.ValidateRecord(form, h.now())
	if fieldErrs != nil {
		logger.Get().Debugw("record form rejected", "path", c.Request.URL.Path, "fields", fieldErrs.Fields())
		page.Errors = fieldErrs
		h.renderForm(c, *page)
		return form, nil, false
	}
	return form, input, true
}

// handleSaveError re-renders the form for field-level failures and defers
// everything else to the error middleware.
func (h *RecordHandler) handleSaveError(c *gin.Context, page RecordFormPage, form forms.RecordForm, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		page.Form = form
		page.Errors = appErr.Fields
		h.renderForm(c, page)
		return
	}
	_ = c.Error(err)
}

func (h *RecordHandler) renderForm(c *gin.Context, page RecordFormPage) {
	ch, err := h.loadChoices()
	if err != nil {
		_ = c.Error(err)
		return
	}
	page.Choices = ch
	c.HTML(http.StatusOK, templateRecordForm, page)
}
