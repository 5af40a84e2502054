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

type ReservationHandler struct {
	reservationCommands commands.ReservationCommands
	reservationQueries  queries.ReservationQueries
}

func NewReservationHandler(reservationCommands commands.ReservationCommands, reservationQueries queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{
		reservationCommands: reservationCommands,
		reservationQueries:  reservationQueries,
	}
}

// @Summary Place reservation
// @Description Reserve products for the sale day pickup
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.PlaceReservationRequest true "Reservation request"
// @Success 201 {object} resdto.PlaceReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) PlaceReservation(c *gin.Context) {
	var req reqdto.PlaceReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.reservationCommands.PlaceReservation(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrValidationFailed):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation", nil)
		case errors.Is(err, commands.ErrProductNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Product not found", nil)
		case errors.Is(err, commands.ErrStockInsufficient):
			httperr.AbortWithError(c, http.StatusConflict, err, "Insufficient stock", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to place reservation", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.PlaceReservationResponse{ID: id})
}

// @Summary Get reservation
// @Description Fetch one reservation by id
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetReservation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID", nil)
		return
	}

	view, err := h.reservationQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to get reservation", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}
