package trade

type CreateTradeRequest struct {
	TradeType           string  `json:"trade_type" binding:"required,oneof=GIVE_AWAY SWAP"`
	ShiftID             string  `json:"shift_id" binding:"required,uuid"`
	CounterpartyShiftID *string `json:"counterparty_shift_id" binding:"omitempty,uuid"`
	RecipientID         string  `json:"recipient_id" binding:"required,uuid"`
	Notes               string  `json:"notes" binding:"omitempty,max=2000"`
}

type TradeResponse struct {
	ID                  string  `json:"id"`
	CompanyID           string  `json:"company_id"`
	TradeType           string  `json:"trade_type"`
	ShiftID             string  `json:"shift_id"`
	CounterpartyShiftID *string `json:"counterparty_shift_id,omitempty"`
	RequesterID         string  `json:"requester_id"`
	RecipientID         string  `json:"recipient_id"`
	Status              string  `json:"status"`
	Notes               string  `json:"notes,omitempty"`
	ReviewedBy          *string `json:"reviewed_by,omitempty"`
	ReviewedAt          *string `json:"reviewed_at,omitempty"`
}
