package labor

// SummaryQuery bounds a labor summary to one location and date range. The
// optional sales figure feeds the labor percent.
type SummaryQuery struct {
	LocationID string   `form:"location_id" json:"location_id" binding:"required,uuid"`
	From       string   `form:"from" json:"from" binding:"required"`
	To         string   `form:"to" json:"to" binding:"required"`
	Sales      *float64 `form:"sales" json:"sales" binding:"omitempty,gt=0"`
}

type SummaryResponse struct {
	LocationID string  `json:"location_id"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	Summary    Summary `json:"summary"`
}
