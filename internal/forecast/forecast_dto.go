package forecast

type ForecastQuery struct {
	LocationID string `form:"location_id" json:"location_id" binding:"required,uuid"`
	Date       string `form:"date" json:"date" binding:"required"`
}

type PositionStaffing struct {
	Position  string  `json:"position"`
	Hours     float64 `json:"hours"`
	Headcount int     `json:"headcount"`
}

type ForecastResponse struct {
	LocationID            string             `json:"location_id"`
	TargetDate            string             `json:"target_date"`
	DayOfWeek             int                `json:"day_of_week"`
	HistoricalSampleSize  int                `json:"historical_sample_size"`
	AverageScheduledHours float64            `json:"average_scheduled_hours"`
	AverageActualHours    float64            `json:"average_actual_hours"`
	RecommendedLaborHours float64            `json:"recommended_labor_hours"`
	ForecastedSales       float64            `json:"forecasted_sales"`
	SuggestedStaffing     []PositionStaffing `json:"suggested_staffing"`
	Confidence            string             `json:"confidence"`
}

// RecordActualsRequest back-fills worked hours and sales onto a history
// day after the fact.
type RecordActualsRequest struct {
	LocationID  string   `json:"location_id" binding:"required,uuid"`
	Date        string   `json:"date" binding:"required"`
	ActualHours *float64 `json:"actual_hours" binding:"omitempty,gte=0"`
	ActualSales *float64 `json:"actual_sales" binding:"omitempty,gte=0"`
}
