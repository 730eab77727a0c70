// Package api exposes the catalog actions over HTTP, following the
// action-API convention: one route per action under /api/3/action/.
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"github.com/dalrrd-emc/emc"
	"github.com/dalrrd-emc/emc/action"
)

// APIKeyHeader carries the caller's api key. Unknown or missing keys
// make the call anonymous; the per-action auth checks decide whether
// that is acceptable.
const APIKeyHeader = "X-EMC-API-Key"

// New wires the actions into an echo server.
func New(db *gorm.DB, svc *action.Service) *echo.Echo {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	h := handlers{db: db, svc: svc}

	e.GET("/api/3/action/show_version", h.showVersion)
	e.GET("/api/3/action/list_featured_datasets", h.listFeaturedDatasets)
	e.POST("/api/3/action/list_featured_datasets", h.listFeaturedDatasets)
	e.POST("/api/3/action/request_dataset_maintenance", h.requestDatasetMaintenance)
	e.POST("/api/3/action/request_dataset_publication", h.requestDatasetPublication)

	return e
}

type handlers struct {
	db  *gorm.DB
	svc *action.Service
}

// actionContext resolves the caller from the api key header.
func (h handlers) actionContext(c echo.Context) *action.Context {
	key := c.Request().Header.Get(APIKeyHeader)
	if key == "" {
		return &action.Context{}
	}
	var user emc.User
	err := h.db.Where("apikey = ?", key).First(&user).Error
	if err != nil {
		return &action.Context{}
	}
	return &action.Context{User: &user}
}

func (h handlers) showVersion(c echo.Context) error {
	return success(c, h.svc.ShowVersion())
}

func (h handlers) listFeaturedDatasets(c echo.Context) error {
	var opts action.ListFeaturedOptions
	if err := c.Bind(&opts); err != nil {
		return failure(c, http.StatusBadRequest, "invalid request body")
	}
	names, err := h.svc.ListFeaturedDatasets(h.actionContext(c), opts)
	if err != nil {
		return actionError(c, err)
	}
	if names == nil {
		names = []action.DatasetName{}
	}
	return success(c, names)
}

type requestBody struct {
	PkgID string `json:"pkg_id"`
}

func (h handlers) requestDatasetMaintenance(c echo.Context) error {
	return h.requestDatasetManagement(c, h.svc.RequestDatasetMaintenance)
}

func (h handlers) requestDatasetPublication(c echo.Context) error {
	return h.requestDatasetManagement(c, h.svc.RequestDatasetPublication)
}

func (h handlers) requestDatasetManagement(c echo.Context, request func(*action.Context, string) error) error {
	var body requestBody
	if err := c.Bind(&body); err != nil || body.PkgID == "" {
		return failure(c, http.StatusBadRequest, "pkg_id is required")
	}
	if err := request(h.actionContext(c), body.PkgID); err != nil {
		return actionError(c, err)
	}
	return success(c, nil)
}

func success(c echo.Context, result any) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}

func failure(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]any{
		"success": false,
		"error":   map[string]any{"message": message},
	})
}

func actionError(c echo.Context, err error) error {
	var notAuthorized *emc.NotAuthorizedError
	if errors.As(err, &notAuthorized) {
		return failure(c, http.StatusForbidden, notAuthorized.Error())
	}
	var validationErr *emc.ValidationError
	if errors.As(err, &validationErr) {
		return c.JSON(http.StatusConflict, map[string]any{
			"success": false,
			"error":   validationErr.Errors,
		})
	}
	return failure(c, http.StatusInternalServerError, err.Error())
}
