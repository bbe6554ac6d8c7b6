// internal/services/sale_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/kilnworks/ceramics-backend/internal/models"
)

type SaleService struct {
	db *gorm.DB
}

type HistoricalSaleRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=255"`
	DateCreated models.Date `json:"date_created" validate:"required"`
	DateListed  models.Date `json:"date_listed" validate:"required"`
	DateSold    models.Date `json:"date_sold" validate:"required"`

	// Costs
	MaterialCost float64 `json:"material_cost" validate:"gte=0"`
	LaborCost    float64 `json:"labor_cost" validate:"gte=0"`
	OverheadCost float64 `json:"overhead_cost" validate:"gte=0"`

	// Quality attributes (1-10)
	GlazingQuality int `json:"glazing_quality" validate:"quality_score"`
	Originality    int `json:"originality" validate:"quality_score"`
	Beauty         int `json:"beauty" validate:"quality_score"`
	Demand         int `json:"demand" validate:"quality_score"`

	HoursWorked float64 `json:"hours_worked" validate:"gte=0"`
	ActualPrice float64 `json:"actual_price" validate:"gte=0"`
	Notes       string  `json:"notes"`
}

type SaleMetrics struct {
	DaysToSell   int
	TotalCost    float64
	Profit       float64
	ProfitMargin float64
}

func NewSaleService(db *gorm.DB) *SaleService {
	return &SaleService{db: db}
}

// ComputeSaleMetrics derives the financial metrics of a completed sale.
// Inconsistent dates yield a negative days-to-sell rather than an error;
// zero-cost items report a 0% margin to avoid dividing by zero.
func ComputeSaleMetrics(dateListed, dateSold models.Date, materialCost, laborCost, overheadCost, actualPrice float64) SaleMetrics {
	totalCost := materialCost + laborCost + overheadCost
	profit := actualPrice - totalCost

	profitMargin := 0.0
	if totalCost > 0 {
		profitMargin = profit / totalCost * 100
	}

	return SaleMetrics{
		DaysToSell:   dateListed.DaysUntil(dateSold),
		TotalCost:    totalCost,
		Profit:       profit,
		ProfitMargin: profitMargin,
	}
}

// Record persists a historical sale as a sold record carrying the derived
// metrics. Sold records never carry a prediction. Empty notes are dropped
// rather than stored as empty strings.
func (s *SaleService) Record(userID string, req *HistoricalSaleRequest) (*models.CeramicRecord, SaleMetrics, error) {
	metrics := ComputeSaleMetrics(req.DateListed, req.DateSold,
		req.MaterialCost, req.LaborCost, req.OverheadCost, req.ActualPrice)

	dateSold := req.DateSold
	actualPrice := req.ActualPrice
	daysToSell := metrics.DaysToSell
	profit := metrics.Profit
	profitMargin := metrics.ProfitMargin

	record := &models.CeramicRecord{
		Name:           req.Name,
		DateCreated:    req.DateCreated,
		DateListed:     req.DateListed,
		DateSold:       &dateSold,
		MaterialCost:   req.MaterialCost,
		LaborCost:      req.LaborCost,
		OverheadCost:   req.OverheadCost,
		GlazingQuality: req.GlazingQuality,
		Originality:    req.Originality,
		Beauty:         req.Beauty,
		Demand:         req.Demand,
		HoursWorked:    req.HoursWorked,
		Status:         models.CeramicStatusSold,
		ActualPrice:    &actualPrice,
		DaysToSell:     &daysToSell,
		Profit:         &profit,
		ProfitMargin:   &profitMargin,
		UserID:         userID,
	}

	if req.Notes != "" {
		notes := req.Notes
		record.Notes = &notes
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, metrics, fmt.Errorf("failed to add historical sale: %w", err)
	}

	return record, metrics, nil
}
