// internal/handlers/pricing.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kilnworks/ceramics-backend/internal/services"
	"github.com/kilnworks/ceramics-backend/internal/utils"
)

type PricingHandler struct {
	pricingService *services.PricingService
}

func NewPricingHandler(pricingService *services.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// POST /predict
func (h *PricingHandler) Predict(c *gin.Context) {
	userID, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthenticatedResponse(c, "")
		return
	}

	var req services.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	quote, err := h.pricingService.Predict(userID, &req)
	if err != nil {
		utils.PersistenceFailureResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
