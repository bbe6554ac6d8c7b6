// internal/services/pricing_service.go
package services

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"github.com/kilnworks/ceramics-backend/internal/models"
)

// ModelVersion tags predictions with the formula revision that produced
// them. Bump when the pricing formula changes.
const ModelVersion = "v0.1.0-simple"

const (
	defaultAlpha  = 0.5
	defaultBeta   = 0.5
	defaultMarkup = 0.3
)

type PricingService struct {
	db *gorm.DB
}

type PredictRequest struct {
	Name        string      `json:"name" validate:"required,min=1,max=255"`
	DateCreated models.Date `json:"date_created" validate:"required"`
	DateListed  models.Date `json:"date_listed" validate:"required"`

	// Costs
	MaterialCost float64 `json:"material_cost" validate:"gte=0"`
	LaborCost    float64 `json:"labor_cost" validate:"gte=0"`
	OverheadCost float64 `json:"overhead_cost" validate:"gte=0"`

	// Quality attributes (1-10)
	GlazingQuality int `json:"glazing_quality" validate:"quality_score"`
	Originality    int `json:"originality" validate:"quality_score"`
	Beauty         int `json:"beauty" validate:"quality_score"`
	Demand         int `json:"demand" validate:"quality_score"`

	// User weights; defaults match the original client expectations
	Alpha       *float64 `json:"alpha" validate:"omitempty,gte=0,lte=1"`
	Beta        *float64 `json:"beta" validate:"omitempty,gte=0,lte=1"`
	HoursWorked float64  `json:"hours_worked" validate:"gte=0"`
	Markup      *float64 `json:"markup" validate:"omitempty,gte=0,lte=2"`

	// Optional image, accepted but never persisted
	ImageBase64 *string `json:"image_base64,omitempty"`
}

// ApplyDefaults fills the optional weights after binding, since an absent
// field and an explicit zero must not be conflated.
func (r *PredictRequest) ApplyDefaults() {
	if r.Alpha == nil {
		alpha := defaultAlpha
		r.Alpha = &alpha
	}
	if r.Beta == nil {
		beta := defaultBeta
		r.Beta = &beta
	}
	if r.Markup == nil {
		markup := defaultMarkup
		r.Markup = &markup
	}
}

type Breakdown struct {
	TotalCost         float64 `json:"total_cost"`
	BasePrice         float64 `json:"base_price"`
	QualityAdjustment float64 `json:"quality_adjustment"`
}

type Quote struct {
	PredictedPrice     float64    `json:"predicted_price"`
	Breakdown          Breakdown  `json:"breakdown"`
	ConfidenceInterval [2]float64 `json:"confidence_interval"`
	ModelVersion       string     `json:"model_version"`

	// raw is the unrounded price, kept for persistence
	raw float64
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

// ComputeQuote maps item attributes deterministically to a predicted price.
// Cost sets the base, markup scales it, and the averaged quality scores add
// up to 50% on top. The confidence interval is a fixed ±10% band, not a
// statistically derived one.
func ComputeQuote(req *PredictRequest) *Quote {
	markup := defaultMarkup
	if req.Markup != nil {
		markup = *req.Markup
	}

	totalCost := req.MaterialCost + req.LaborCost + req.OverheadCost
	basePrice := totalCost * (1 + markup)

	qualityAvg := float64(req.GlazingQuality+req.Originality+req.Beauty+req.Demand) / 4
	qualityMultiplier := qualityAvg / 10 // 0.1 to 1.0

	predictedPrice := basePrice * (1 + qualityMultiplier*0.5)

	return &Quote{
		PredictedPrice: round2(predictedPrice),
		Breakdown: Breakdown{
			TotalCost:         totalCost,
			BasePrice:         basePrice,
			QualityAdjustment: predictedPrice - basePrice,
		},
		ConfidenceInterval: [2]float64{
			round2(predictedPrice * 0.9),
			round2(predictedPrice * 1.1),
		},
		ModelVersion: ModelVersion,
		raw:          predictedPrice,
	}
}

// Predict computes a quote and persists the submission as a listed record
// owned by the requesting user. The stored predicted price is the unrounded
// value; rounding is display-only.
func (s *PricingService) Predict(userID string, req *PredictRequest) (*Quote, error) {
	req.ApplyDefaults()
	quote := ComputeQuote(req)

	modelVersion := ModelVersion
	record := &models.CeramicRecord{
		Name:           req.Name,
		DateCreated:    req.DateCreated,
		DateListed:     req.DateListed,
		MaterialCost:   req.MaterialCost,
		LaborCost:      req.LaborCost,
		OverheadCost:   req.OverheadCost,
		GlazingQuality: req.GlazingQuality,
		Originality:    req.Originality,
		Beauty:         req.Beauty,
		Demand:         req.Demand,
		Alpha:          *req.Alpha,
		Beta:           *req.Beta,
		HoursWorked:    req.HoursWorked,
		Markup:         *req.Markup,
		Status:         models.CeramicStatusListed,
		PredictedPrice: &quote.raw,
		ModelVersion:   &modelVersion,
		UserID:         userID,
	}

	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}

	return quote, nil
}

// round2 rounds half away from zero to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
