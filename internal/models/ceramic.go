// internal/models/ceramic.go
package models

// CeramicRecord is one persisted submission: either a listed piece with a
// predicted price, or a historical sale with realized figures. Listed rows
// carry PredictedPrice/ModelVersion and nothing else from the sold block;
// sold rows carry ActualPrice plus the derived metrics and no prediction.
type CeramicRecord struct {
	BaseModel
	Name        string `json:"name" gorm:"size:255;not null"`
	DateCreated Date   `json:"date_created" gorm:"type:date;not null"`
	DateListed  Date   `json:"date_listed" gorm:"type:date;not null"`
	DateSold    *Date  `json:"date_sold,omitempty" gorm:"type:date"`

	// Costs
	MaterialCost float64 `json:"material_cost" gorm:"type:decimal(10,2);not null"`
	LaborCost    float64 `json:"labor_cost" gorm:"type:decimal(10,2);not null"`
	OverheadCost float64 `json:"overhead_cost" gorm:"type:decimal(10,2);not null"`

	// Quality attributes (1-10)
	GlazingQuality int `json:"glazing_quality" gorm:"not null"`
	Originality    int `json:"originality" gorm:"not null"`
	Beauty         int `json:"beauty" gorm:"not null"`
	Demand         int `json:"demand" gorm:"not null"`

	// User weights
	Alpha       float64 `json:"alpha"`
	Beta        float64 `json:"beta"`
	HoursWorked float64 `json:"hours_worked"`
	Markup      float64 `json:"markup"`

	Status CeramicStatus `json:"status" gorm:"type:varchar(10);not null;index"`

	// Prediction block, present only on listed records
	PredictedPrice *float64 `json:"predicted_price,omitempty" gorm:"type:decimal(10,2)"`
	ModelVersion   *string  `json:"model_version,omitempty" gorm:"size:32"`

	// Sale block, present only on sold records
	ActualPrice  *float64 `json:"actual_price,omitempty" gorm:"type:decimal(10,2)"`
	DaysToSell   *int     `json:"days_to_sell,omitempty"`
	Profit       *float64 `json:"profit,omitempty" gorm:"type:decimal(10,2)"`
	ProfitMargin *float64 `json:"profit_margin,omitempty" gorm:"type:decimal(10,2)"`

	Notes *string `json:"notes,omitempty" gorm:"type:text"`

	UserID string `json:"user_id" gorm:"size:64;not null;index"`
}

func (CeramicRecord) TableName() string {
	return "ceramics"
}

// TotalCost is the summed material, labor and overhead cost of the piece.
func (r *CeramicRecord) TotalCost() float64 {
	return r.MaterialCost + r.LaborCost + r.OverheadCost
}
