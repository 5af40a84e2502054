package api

import (
	"errors"
	"net/http"

	reqdto "github.com/daiya0277-lgtm/gyoza-app/internal/handler/dto/request"
	resdto "github.com/daiya0277-lgtm/gyoza-app/internal/handler/dto/response"
	"github.com/daiya0277-lgtm/gyoza-app/internal/handler/httperr"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/commands"
	"github.com/daiya0277-lgtm/gyoza-app/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	adminCommands       commands.AdminCommands
	stockCommands       commands.StockCommands
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewAdminHandler(
	adminCommands commands.AdminCommands,
	stockCommands commands.StockCommands,
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
) *AdminHandler {
	return &AdminHandler{
		adminCommands:       adminCommands,
		stockCommands:       stockCommands,
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Admin login
// @Description Exchange the shared admin password for a session token
// @Tags admin
// @Accept json
// @Produce json
// @Param request body reqdto.AdminLoginRequest true "Login request"
// @Success 200 {object} resdto.AdminLoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/login [post]
func (h *AdminHandler) Login(c *gin.Context) {
	var req reqdto.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	session, err := h.adminCommands.Login(c.Request.Context(), req.Password)
	if err != nil {
		if errors.Is(err, commands.ErrAdminUnauthorized) {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Wrong password", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Login failed", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.AdminLoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// @Summary List reservations
// @Description List all reservations ordered by pickup time
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationResponse
// @Failure 401 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /admin/reservations [get]
func (h *AdminHandler) ListReservations(c *gin.Context) {
	views, err := h.reservationQueries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list reservations", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Sales summary
// @Description Reserved quantity per product and total sales
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SalesSummaryResponse
// @Failure 401 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /admin/summary [get]
func (h *AdminHandler) GetSummary(c *gin.Context) {
	summary, err := h.reservationQueries.Summary(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build summary", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSalesSummary(summary))
}

// @Summary Cancel reservation
// @Description Delete a reservation and restore its stock. Deleting a missing
// @Description reservation succeeds.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /admin/reservations/{id} [delete]
func (h *AdminHandler) CancelReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	if err := h.reservationCommands.CancelReservation(c.Request.Context(), id); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to cancel reservation", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Set remaining stock
// @Description Overwrite a product's remaining stock within its capacity
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Product ID"
// @Param request body reqdto.SetStockRequest true "New stock level"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /admin/products/{id}/stock [put]
func (h *AdminHandler) SetRemainingStock(c *gin.Context) {
	productID := c.Param("id")

	var req reqdto.SetStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err := h.stockCommands.SetRemainingStock(c.Request.Context(), productID, *req.RemainingStock)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrValidationFailed):
			var rangeErr *commands.StockRangeError
			var detail any
			if errors.As(err, &rangeErr) {
				detail = gin.H{"min": rangeErr.Min, "max": rangeErr.Max}
			}
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Stock out of range", detail)
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update stock", nil)
		}
		return
	}

	c.Status(http.StatusNoContent)
}
