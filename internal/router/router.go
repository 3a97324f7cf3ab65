// Package router assembles the HTTP engine: middleware, templates, static
// assets, API docs and the application routes.
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "cashflow/internal/docs" // Import swagger docs
	apperrors "cashflow/internal/errors"
	"cashflow/internal/handlers"
	"cashflow/internal/middleware"
	"cashflow/internal/services"
	"cashflow/web"
)

// Services bundles the servicers the handlers depend on.
type Services struct {
	Records       services.RecordServicer
	Statuses      services.StatusServicer
	Types         services.TypeServicer
	Categories    services.CategoryServicer
	Subcategories services.SubcategoryServicer
}

// NewServices builds the database-backed servicers.
func NewServices(db *gorm.DB) Services {
	return Services{
		Records:       services.NewRecordService(db),
		Statuses:      services.NewStatusService(db),
		Types:         services.NewTypeService(db),
		Categories:    services.NewCategoryService(db),
		Subcategories: services.NewSubcategoryService(db),
	}
}

// New configures the Gin engine with templates, static assets and routes.
func New(svc Services) (*gin.Engine, error) {
	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	static, err := web.Static()
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.SetHTMLTemplate(tmpl)

	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.SecurityHeaders(middleware.DefaultHeadersConfig()))
	router.Use(middleware.ErrorHandler())

	router.StaticFS("/static", http.FS(static))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	recordHandler := handlers.NewRecordHandler(svc.Records, svc.Statuses, svc.Types, svc.Categories, svc.Subcategories)
	lookupHandler := handlers.NewLookupHandler(svc.Statuses, svc.Types, svc.Categories, svc.Subcategories)

	// Record pages
	router.GET("/", recordHandler.ListRecords)
	router.GET("/add/", recordHandler.AddRecord)
	router.POST("/add/", recordHandler.AddRecord)
	router.GET("/edit-record/:id/", recordHandler.EditRecord)
	router.POST("/edit-record/:id/", recordHandler.EditRecord)
	router.POST("/delete/:id/", recordHandler.DeleteRecord)

	// AJAX endpoints answer every method so wrong ones get a JSON 400.
	router.Any("/status/quick-add/", lookupHandler.QuickAddStatus)
	router.Any("/type/quick-add/", lookupHandler.QuickAddType)
	router.Any("/category/quick-add/", lookupHandler.QuickAddCategory)
	router.Any("/subcategory/quick-add/", lookupHandler.QuickAddSubcategory)
	router.Any("/get_categories/", lookupHandler.GetCategories)
	router.Any("/get_subcategories/", lookupHandler.GetSubcategories)

	router.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperrors.ErrNotFound)
	})

	return router, nil
}
