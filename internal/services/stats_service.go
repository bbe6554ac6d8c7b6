// internal/services/stats_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/kilnworks/ceramics-backend/internal/models"
)

// Sold records needed before training a predictive model is worthwhile.
const trainingThreshold = 20

type StatsService struct {
	db *gorm.DB
}

type PriceStats struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Average      float64 `json:"average"`
	TotalRevenue float64 `json:"total_revenue"`
}

type Statistics struct {
	TotalItems       int         `json:"total_items"`
	SoldItems        int         `json:"sold_items"`
	ListedItems      int         `json:"listed_items"`
	Message          string      `json:"message,omitempty"`
	PriceStats       *PriceStats `json:"price_stats,omitempty"`
	ReadyForTraining *bool       `json:"ready_for_training,omitempty"`
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// ListByUser returns all records owned by one user, newest first. The user
// filter runs in the database, not over a full-table fetch.
func (s *StatsService) ListByUser(userID string) ([]models.CeramicRecord, error) {
	records := []models.CeramicRecord{}
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch records: %w", err)
	}
	return records, nil
}

// Statistics reduces a user's records into summary counts and price
// statistics over realized sales.
func (s *StatsService) Statistics(userID string) (*Statistics, error) {
	records, err := s.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(records), nil
}

// Aggregate computes the summary over one immutable snapshot of records.
// Without sold records only the counts and a message are reported; sold
// records missing an actual price are skipped from the price statistics.
func Aggregate(records []models.CeramicRecord) *Statistics {
	var prices []float64
	soldCount := 0
	for _, record := range records {
		if record.Status != models.CeramicStatusSold {
			continue
		}
		soldCount++
		if record.ActualPrice != nil {
			prices = append(prices, *record.ActualPrice)
		}
	}

	if soldCount == 0 {
		return &Statistics{
			TotalItems:  len(records),
			SoldItems:   0,
			ListedItems: len(records),
			Message:     "No historical sales data yet",
		}
	}

	stats := &PriceStats{}
	if len(prices) > 0 {
		stats.Min = prices[0]
		stats.Max = prices[0]
		sum := 0.0
		for _, price := range prices {
			if price < stats.Min {
				stats.Min = price
			}
			if price > stats.Max {
				stats.Max = price
			}
			sum += price
		}
		stats.Average = sum / float64(len(prices))
		stats.TotalRevenue = sum
	}

	ready := soldCount >= trainingThreshold
	return &Statistics{
		TotalItems:       len(records),
		SoldItems:        soldCount,
		ListedItems:      len(records) - soldCount,
		PriceStats:       stats,
		ReadyForTraining: &ready,
	}
}
