// internal/services/helpers_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kilnworks/ceramics-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.CeramicRecord{}))
	return db
}

func floatPtr(v float64) *float64 {
	return &v
}

func testPredictRequest() *PredictRequest {
	return &PredictRequest{
		Name:           "Glazed vase",
		DateCreated:    models.NewDate(2024, time.January, 5),
		DateListed:     models.NewDate(2024, time.January, 10),
		MaterialCost:   100,
		LaborCost:      50,
		OverheadCost:   20,
		GlazingQuality: 8,
		Originality:    7,
		Beauty:         9,
		Demand:         6,
		HoursWorked:    12,
		Markup:         floatPtr(0.3),
	}
}

func testSaleRequest() *HistoricalSaleRequest {
	return &HistoricalSaleRequest{
		Name:           "Raku bowl",
		DateCreated:    models.NewDate(2024, time.January, 5),
		DateListed:     models.NewDate(2024, time.January, 10),
		DateSold:       models.NewDate(2024, time.January, 25),
		MaterialCost:   100,
		LaborCost:      50,
		OverheadCost:   20,
		GlazingQuality: 8,
		Originality:    7,
		Beauty:         9,
		Demand:         6,
		HoursWorked:    10,
		ActualPrice:    250,
	}
}
