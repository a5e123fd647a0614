package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/tripmates/internal/domain"
	"github.com/Domenick1991/tripmates/internal/middleware"
	"github.com/Domenick1991/tripmates/internal/reconcile"
	"github.com/Domenick1991/tripmates/internal/service/matching"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	service matching.MatchUseCase
}

type createMatchRequest struct {
	RequesterTripID string `json:"requester_trip_id"`
	TargetTripID    string `json:"target_trip_id"`
	ConsentGiven    bool   `json:"consent_given"`
}

type matchPayload struct {
	ID              string    `json:"id"`
	RequesterTripID string    `json:"requester_trip_id"`
	TargetTripID    string    `json:"target_trip_id"`
	Status          string    `json:"status"`
	ConsentGiven    bool      `json:"consent_given"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type reconcileRequest struct {
	Requests     []matchPayload `json:"requests"`
	OwnedTripIDs []string       `json:"owned_trip_ids"`
}

func NewMatchHandler(service matching.MatchUseCase) *MatchHandler {
	return &MatchHandler{service: service}
}

// Register mounts the match routes. Handlers in mutating are applied to the
// routes that change the ledger.
func (h *MatchHandler) Register(router *gin.RouterGroup, mutating ...gin.HandlerFunc) {
	router.POST("", chain(mutating, h.create)...)
	router.POST("/reconcile", h.reconcile)
	router.GET("/:id", h.get)
	router.PUT("/:id/accept", chain(mutating, middleware.RequireUser(), h.accept)...)
	router.PUT("/:id/reject", chain(mutating, middleware.RequireUser(), h.reject)...)
}

func chain(base []gin.HandlerFunc, handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(base)+len(handlers))
	out = append(out, base...)
	return append(out, handlers...)
}

func (h *MatchHandler) RegisterUserRoutes(router *gin.RouterGroup) {
	router.GET("/:user_id/matches", middleware.RequireUser(), h.userView)
}

func (h *MatchHandler) create(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, created, err := h.service.CreateMatchRequest(c.Request.Context(), matching.CreateMatchInput{
		RequesterTripID: req.RequesterTripID,
		TargetTripID:    req.TargetTripID,
		ConsentGiven:    req.ConsentGiven,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, toMatchResponse(match))
}

func (h *MatchHandler) get(c *gin.Context) {
	match, err := h.service.GetMatchRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMatchResponse(match))
}

func (h *MatchHandler) accept(c *gin.Context) {
	match, err := h.service.AcceptMatchRequest(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMatchResponse(match))
}

func (h *MatchHandler) reject(c *gin.Context) {
	match, err := h.service.RejectMatchRequest(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMatchResponse(match))
}

func (h *MatchHandler) reconcile(c *gin.Context) {
	var req reconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requests := make([]domain.MatchRequest, 0, len(req.Requests))
	for i, p := range req.Requests {
		status := domain.MatchStatus(p.Status)
		if p.ID == "" || p.RequesterTripID == "" || p.TargetTripID == "" || !status.Valid() {
			writeError(c, fmt.Errorf("%w: requests[%d] is malformed", domain.ErrValidation, i))
			return
		}
		requests = append(requests, domain.MatchRequest{
			ID:              p.ID,
			RequesterTripID: p.RequesterTripID,
			TargetTripID:    p.TargetTripID,
			Status:          status,
			ConsentGiven:    p.ConsentGiven,
			CreatedAt:       p.CreatedAt,
			UpdatedAt:       p.UpdatedAt,
		})
	}

	view, err := h.service.GetReconciledView(c.Request.Context(), requests, req.OwnedTripIDs)
	if err != nil {
		writeError(c, err)
		return
	}
	reconcile.SortByCreatedAtDesc(view.Incoming)
	reconcile.SortByCreatedAtDesc(view.Outgoing)
	c.JSON(http.StatusOK, toViewResponse(view, false))
}

func (h *MatchHandler) userView(c *gin.Context) {
	userID := c.Param("user_id")
	if actor := middleware.UserID(c); actor != userID {
		writeError(c, fmt.Errorf("%w: user %s cannot read matches of %s", domain.ErrUnauthorized, actor, userID))
		return
	}

	view, err := h.service.GetUserView(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toViewResponse(view, true))
}
