package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventStatusActive   = "active"
	EventStatusInactive = "inactive"
)

const (
	ProvideBySystem   = "system"
	ProvideByOperator = "operator"
)

// ConditionAttendanceDays is the one condition type the platform verifies
// automatically: the user must have at least N recorded check-ins.
const ConditionAttendanceDays = "attendance_days"

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"  json:"id"`
	Name        string    `gorm:"not null"              json:"name"`
	Description string    `gorm:"not null"              json:"description"`
	StartDate   time.Time `gorm:"not null"              json:"startDate"`
	EndDate     time.Time `gorm:"not null"              json:"endDate"`
	Status      string    `gorm:"not null;default:inactive" json:"status"`
	ProvideBy   string    `gorm:"not null;default:operator" json:"provideBy"`

	// Condition is optional; a zero ConditionType means unconditional.
	ConditionType  string `json:"conditionType,omitempty"`
	ConditionCount int    `json:"conditionCount,omitempty"`

	CreatedAt time.Time `gorm:"index:,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

const (
	RewardTypePoint  = "point"
	RewardTypeItem   = "item"
	RewardTypeCoupon = "coupon"
)

type Reward struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string    `gorm:"not null"             json:"type"`
	TargetID    string    `json:"targetId"`
	Quantity    int       `gorm:"not null"             json:"quantity"`
	Description string    `json:"description"`
	EventID     uuid.UUID `gorm:"type:uuid;index;not null" json:"eventId"`

	CreatedAt time.Time `gorm:"index:,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Reward) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

const (
	RequestResultSuccess = "success"
	RequestResultFail    = "fail"
)

// RequestReward records the verdict of a reward claim, successful or not.
type RequestReward struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID  string    `gorm:"index;not null"           json:"userId"`
	EventID uuid.UUID `gorm:"type:uuid;index;not null" json:"eventId"`
	Result  string    `gorm:"not null"                 json:"result"`
	Message string    `json:"message"`

	// Snapshot of the event condition at claim time.
	ConditionType  string `json:"conditionType,omitempty"`
	ConditionCount int    `json:"conditionCount,omitempty"`

	IsProcessed bool       `gorm:"not null;default:false" json:"isProcessed"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	RequestedAt time.Time  `gorm:"not null"               json:"requestedAt"`

	CreatedAt time.Time `gorm:"index:,sort:desc" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *RequestReward) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Attendance is one check-in per user per calendar day.
type Attendance struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"uniqueIndex:idx_attendance_user_day;not null" json:"userId"`
	AttendanceDate time.Time `gorm:"uniqueIndex:idx_attendance_user_day;not null" json:"attendanceDate"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
