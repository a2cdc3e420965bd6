package trade

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeGiveAway = "GIVE_AWAY"
	TypeSwap     = "SWAP"

	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusDeclined  = "DECLINED"
	StatusApproved  = "APPROVED"
	StatusCancelled = "CANCELLED"
)

// ShiftTrade is an offer to hand a shift to a coworker, either one-way or
// as a swap. Ownership only moves when a manager approves an accepted
// trade; acceptance alone changes nothing on the roster.
type ShiftTrade struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_shift_trades_company"`

	TradeType string `gorm:"type:varchar(20);not null"`

	ShiftID             uuid.UUID  `gorm:"type:uuid;not null;index:idx_shift_trades_shift"`
	CounterpartyShiftID *uuid.UUID `gorm:"type:uuid"`

	RequesterID uuid.UUID `gorm:"type:uuid;not null;index:idx_shift_trades_requester"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_shift_trades_recipient"`

	Status     string `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_shift_trades_status"`
	Notes      string `gorm:"type:text"`
	ReviewedBy *uuid.UUID `gorm:"type:uuid"`
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_shift_trades_deleted_at"`
}

func (ShiftTrade) TableName() string {
	return "shift_trades"
}
