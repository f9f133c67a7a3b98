package models

import "time"

// AttendanceRecord is a saved snapshot of one day's attendance sheet
type AttendanceRecord struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	ClassDate   string    `json:"classDate"`
	Total       int       `json:"total"`
	Present     int       `json:"present"`
	Rate        string    `json:"rate"`
	AbsentNames []string  `json:"absentNames"`
	CreatedAt   time.Time `json:"createdAt"`
}
