package handlers

import (
	"net/http"
	"strconv"

	"fleet-docs-backend/internal/services"
	"fleet-docs-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type HistoryHandler struct {
	fleetService *services.FleetService
}

func NewHistoryHandler(fleetService *services.FleetService) *HistoryHandler {
	return &HistoryHandler{fleetService: fleetService}
}

// GetHistory lists audit entries newest first. The optional limit query
// parameter bounds the result; out-of-range values fall back to the
// service's default and cap.
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.ErrorResponse(c, http.StatusBadRequest, "limit must be a positive integer", err)
			return
		}
		limit = parsed
	}

	history, err := h.fleetService.ListHistory(c.Request.Context(), limit)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to retrieve history", err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "History retrieved successfully", history)
}
