// internal/handlers/stats.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kilnworks/ceramics-backend/internal/services"
	"github.com/kilnworks/ceramics-backend/internal/utils"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GET /history
func (h *StatsHandler) History(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthenticatedResponse(c, "")
		return
	}

	records, err := h.statsService.ListByUser(userID)
	if err != nil {
		utils.PersistenceFailureResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(records),
		"items": records,
	})
}

// GET /stats
func (h *StatsHandler) Statistics(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthenticatedResponse(c, "")
		return
	}

	stats, err := h.statsService.Statistics(userID)
	if err != nil {
		utils.PersistenceFailureResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
