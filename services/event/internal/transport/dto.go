package transport

import "time"

type CreateEventRequest struct {
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	Status         string    `json:"status"`
	ProvideBy      string    `json:"provideBy"`
	ConditionType  string    `json:"conditionType"`
	ConditionCount int       `json:"conditionCount"`
}

type PatchEventRequest struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	StartDate      *time.Time `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	Status         *string    `json:"status"`
	ProvideBy      *string    `json:"provideBy"`
	ConditionType  *string    `json:"conditionType"`
	ConditionCount *int       `json:"conditionCount"`
}

type CreateRewardRequest struct {
	Type        string `json:"type"`
	TargetID    string `json:"targetId"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description"`
	EventID     string `json:"eventId"`
}

type PatchRewardRequest struct {
	Type        *string `json:"type"`
	TargetID    *string `json:"targetId"`
	Quantity    *int    `json:"quantity"`
	Description *string `json:"description"`
}

type CreateRequestRewardRequest struct {
	EventID string `json:"eventId"`
}

type ProcessRequestRewardRequest struct {
	RequestID string `json:"requestId"`
	Result    string `json:"result"`
	Message   string `json:"message"`
}

type CreateAttendanceRequest struct {
	// Date is optional; empty means today. Format 2006-01-02.
	Date string `json:"date"`
}
