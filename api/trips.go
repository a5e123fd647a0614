package api

import (
	"net/http"

	"github.com/Domenick1991/tripmates/internal/service/trips"
	"github.com/gin-gonic/gin"
)

type TripHandler struct {
	service trips.TripUseCase
}

func NewTripHandler(service trips.TripUseCase) *TripHandler {
	return &TripHandler{service: service}
}

func (h *TripHandler) Register(router *gin.RouterGroup) {
	router.GET("/:id", h.get)
}

// get never exposes contact fields; those are only revealed through an
// accepted match.
func (h *TripHandler) get(c *gin.Context) {
	trip, err := h.service.GetTripPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip.WithoutContacts())
}
