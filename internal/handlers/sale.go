// internal/handlers/sale.go
package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kilnworks/ceramics-backend/internal/services"
	"github.com/kilnworks/ceramics-backend/internal/utils"
)

type SaleHandler struct {
	saleService *services.SaleService
}

func NewSaleHandler(saleService *services.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// POST /historical
func (h *SaleHandler) Create(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthenticatedResponse(c, "")
		return
	}

	var req services.HistoricalSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	record, metrics, err := h.saleService.Record(userID, &req)
	if err != nil {
		utils.PersistenceFailureResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Historical sale added successfully",
		"data": gin.H{
			"id":            record.ID,
			"name":          record.Name,
			"actual_price":  req.ActualPrice,
			"profit":        math.Round(metrics.Profit*100) / 100,
			"profit_margin": math.Round(metrics.ProfitMargin*10) / 10,
			"days_to_sell":  metrics.DaysToSell,
		},
	})
}
