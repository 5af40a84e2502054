package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/daiya0277-lgtm/gyoza-app/internal/handler/api"
	"github.com/daiya0277-lgtm/gyoza-app/internal/handler/middleware"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(engine *gin.Engine, cfg config.Config, catalogHandler *api.CatalogHandler, reservationHandler *api.ReservationHandler, adminHandler *api.AdminHandler, adminMiddleware *middleware.AdminMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, catalogHandler, reservationHandler, adminHandler, adminMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, catalogHandler *api.CatalogHandler, reservationHandler *api.ReservationHandler, adminHandler *api.AdminHandler, adminMiddleware *middleware.AdminMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		addRoutes(apiGroup, []route{
			{Method: http.MethodGet, Path: "/products", Handler: catalogHandler.ListProducts},
			{Method: http.MethodGet, Path: "/pickup-slots", Handler: catalogHandler.ListPickupSlots},
			{Method: http.MethodPost, Path: "/reservations", Handler: reservationHandler.PlaceReservation},
			{Method: http.MethodGet, Path: "/reservations/:id", Handler: reservationHandler.GetReservation},
		})

		admin := apiGroup.Group("/admin")
		{
			addRoutes(admin, []route{
				{Method: http.MethodPost, Path: "/login", Handler: adminHandler.Login},
			})

			adminRequired := admin.Group("")
			adminRequired.Use(adminMiddleware.RequireAdmin())
			addRoutes(adminRequired, []route{
				{Method: http.MethodGet, Path: "/reservations", Handler: adminHandler.ListReservations},
				{Method: http.MethodDelete, Path: "/reservations/:id", Handler: adminHandler.CancelReservation},
				{Method: http.MethodGet, Path: "/summary", Handler: adminHandler.GetSummary},
				{Method: http.MethodPut, Path: "/products/:id/stock", Handler: adminHandler.SetRemainingStock},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
