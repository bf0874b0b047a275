package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/richxcame/trip-dashboard/pkg/common"
	"github.com/richxcame/trip-dashboard/pkg/logger"
	"github.com/richxcame/trip-dashboard/pkg/middleware"
	"github.com/richxcame/trip-dashboard/pkg/pagination"
	"github.com/richxcame/trip-dashboard/pkg/validation"
	ws "github.com/richxcame/trip-dashboard/pkg/websocket"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for dashboard sessions
type Handler struct {
	registry *Registry
	upgrader *websocket.Upgrader
}

// NewHandler creates a new dashboard handler. allowedOrigins guards the
// status stream upgrade.
func NewHandler(registry *Registry, allowedOrigins []string) *Handler {
	return &Handler{
		registry: registry,
		upgrader: ws.NewUpgrader(allowedOrigins),
	}
}

type sessionResponse struct {
	ID     string `json:"id"`
	Status Status `json:"status"`
}

type filtersResponse struct {
	Criteria    Criteria `json:"criteria"`
	FareCeiling float64  `json:"fare_ceiling"`
}

// CreateSession starts a new idle dashboard session
func (h *Handler) CreateSession(c *gin.Context) {
	id, controller := h.registry.Create()
	logger.WithContext(c.Request.Context()).Info("dashboard session created", zap.String("session_id", id))

	common.CreatedResponse(c, sessionResponse{ID: id, Status: controller.Status()})
}

// DeleteSession ends a session and discards its state
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.registry.Delete(c.Param("id")); err != nil {
		common.AppErrorResponse(c, common.NewNotFoundError("dashboard session not found", err))
		return
	}
	common.SuccessResponse(c, gin.H{"message": "session ended"})
}

// GetStatus returns the loader status
func (h *Handler) GetStatus(c *gin.Context) {
	controller, ok := h.session(c)
	if !ok {
		return
	}
	common.SuccessResponse(c, controller.Status())
}

// Load starts loading trips. The load outlives the request.
func (h *Handler) Load(c *gin.Context) {
	controller, ok := h.session(c)
	if !ok {
		return
	}

	status, err := controller.LoadAsync(context.WithoutCancel(c.Request.Context()))
	if err != nil {
		switch {
		case errors.Is(err, ErrLoadInProgress):
			common.AppErrorResponse(c, common.NewConflictError("a load is already in progress"))
		case errors.Is(err, ErrAlreadyLoaded):
			common.AppErrorResponse(c, common.NewConflictError("trips are already loaded"))
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to start load")
		}
		return
	}

	common.AcceptedResponse(c, status)
}

// GetFilters returns the active criteria and the fare ceiling
func (h *Handler) GetFilters(c *gin.Context) {
	controller, ok := h.session(c)
	if !ok {
		return
	}
	common.SuccessResponse(c, filtersResponse{
		Criteria:    controller.Criteria(),
		FareCeiling: controller.Ceiling(),
	})
}

// UpdateFilters applies the posted criteria on top of the active ones.
// Fields missing from the body keep their current value.
func (h *Handler) UpdateFilters(c *gin.Context) {
	controller, ok := h.session(c)
	if !ok {
		return
	}

	criteria := controller.Criteria()
	if err := middleware.ValidateJSON(c, &criteria); err != nil {
		var verr *validation.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, common.Response{
				Success: false,
				Error:   &common.ErrorInfo{Code: "VALIDATION_ERROR", Message: verr.Error()},
				Data:    verr.Errors,
			})
			return
		}
		common.AppErrorResponse(c, common.NewBadRequestError("invalid filter payload", err))
		return
	}

	page := controller.SetCriteria(criteria)
	common.SuccessResponseWithMeta(c, filtersResponse{
		Criteria:    criteria,
		FareCeiling: controller.Ceiling(),
	}, pageMeta(page))
}

// ResetFilters restores the default criteria
func (h *Handler) ResetFilters(c *gin.Context) {
	controller, ok := h.session(c)
	if !ok {
		return
	}

	page := controller.Reset()
	common.SuccessResponseWithMeta(c, filtersResponse{
		Criteria:    controller.Criteria(),
		FareCeiling: controller.Ceiling(),
	}, pageMeta(page))
}

// ListTrips returns the rows of the requested page, or the current page
// when none is given. Out-of-range pages select page 1.
func (h *Handler) ListTrips(c *gin.Context) {
	controller, ok := h.session(c)
	if !ok {
		return
	}

	var page PageView
	if params := pagination.ParseParams(c); params.Provided {
		page = controller.SetPage(params.Page)
	} else {
		page = controller.Page()
	}

	common.SuccessResponseWithMeta(c, page.Trips, pageMeta(page))
}

// GetChart returns the fare series for the current page
func (h *Handler) GetChart(c *gin.Context) {
	controller, ok := h.session(c)
	if !ok {
		return
	}
	common.SuccessResponse(c, controller.Chart())
}

// GetView returns status, criteria, rows and chart together
func (h *Handler) GetView(c *gin.Context) {
	controller, ok := h.session(c)
	if !ok {
		return
	}

	view := controller.View()
	common.SuccessResponseWithMeta(c, view, pageMeta(view.Page))
}

// RegisterRoutes registers dashboard routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboards := rg.Group("/dashboards")
	{
		dashboards.POST("", h.CreateSession)
		dashboards.GET("/:id", h.GetView)
		dashboards.DELETE("/:id", h.DeleteSession)
		dashboards.GET("/:id/status", h.GetStatus)
		dashboards.GET("/:id/status/ws", h.StreamStatus)
		dashboards.POST("/:id/load", h.Load)
		dashboards.GET("/:id/filters", h.GetFilters)
		dashboards.PUT("/:id/filters", h.UpdateFilters)
		dashboards.POST("/:id/filters/reset", h.ResetFilters)
		dashboards.GET("/:id/trips", h.ListTrips)
		dashboards.GET("/:id/chart", h.GetChart)
	}
}

func (h *Handler) session(c *gin.Context) (*Controller, bool) {
	controller, err := h.registry.Get(c.Param("id"))
	if err != nil {
		common.AppErrorResponse(c, common.NewNotFoundError("dashboard session not found", err))
		return nil, false
	}
	return controller, true
}

func pageMeta(page PageView) *common.Meta {
	return pagination.BuildMeta(page.Page, page.PageSize, int64(page.Total))
}
