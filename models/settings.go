package models

// Settings holds library-wide lending policy.
type Settings struct {
	ID             int `json:"id" db:"id"`
	LoanPeriodDays int `json:"loan_period_days" db:"loan_period_days"`
	FinePerDay     int `json:"fine_per_day" db:"fine_per_day"`
}
