package api

import (
	"net/http"

	resdto "github.com/daiya0277-lgtm/gyoza-app/internal/handler/dto/response"
	"github.com/daiya0277-lgtm/gyoza-app/internal/handler/httperr"
	"github.com/daiya0277-lgtm/gyoza-app/internal/pkg/config"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/queries"

	"github.com/gin-gonic/gin"

	domainres "github.com/daiya0277-lgtm/gyoza-app/internal/domain/reservation"
)

type CatalogHandler struct {
	catalogQueries queries.CatalogQueries
	saleCfg        config.SaleConfig
}

func NewCatalogHandler(catalogQueries queries.CatalogQueries, saleCfg config.SaleConfig) *CatalogHandler {
	return &CatalogHandler{
		catalogQueries: catalogQueries,
		saleCfg:        saleCfg,
	}
}

// @Summary List products
// @Description List all products with current remaining stock
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.ProductResponse
// @Failure 500 {object} httperr.Response
// @Router /products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	views, err := h.catalogQueries.ListProducts(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list products", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromProductViews(views))
}

// @Summary List pickup slots
// @Description List the pickup date and the offered half-hour slots
// @Tags catalog
// @Produce json
// @Success 200 {object} resdto.PickupSlotsResponse
// @Router /pickup-slots [get]
func (h *CatalogHandler) ListPickupSlots(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.PickupSlotsResponse{
		PickupDate: h.saleCfg.PickupDate,
		Slots:      domainres.Slots(),
	})
}
