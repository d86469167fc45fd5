package dto

// CreateDisruptionRequest captures POST /disruptions payload. Times use the
// layouts "2006-01-02" for Date and RFC 3339 for StartTime/EndTime.
type CreateDisruptionRequest struct {
	Kind             string  `json:"kind" validate:"required,oneof=SUSPENSION EFFICIENCY"`
	Date             string  `json:"date" validate:"required"`
	StartTime        string  `json:"startTime" validate:"required"`
	EndTime          string  `json:"endTime" validate:"required"`
	EfficiencyFactor float64 `json:"efficiencyFactor,omitempty"`
	Policy           string  `json:"policy,omitempty" validate:"omitempty,oneof=ALL SEQUENTIAL PRIORITY_BY_SIZE"`
}
