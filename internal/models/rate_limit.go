package models

import "time"

// RateLimit counts attempts of an action per identifier inside a window.
type RateLimit struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Identifier  string    `json:"identifier" gorm:"size:255;not null;uniqueIndex:rate_limits_identifier_action_window_start_key"`
	Action      string    `json:"action" gorm:"size:50;not null;uniqueIndex:rate_limits_identifier_action_window_start_key"`
	Count       int       `json:"count" gorm:"default:1"`
	WindowStart time.Time `json:"window_start" gorm:"uniqueIndex:rate_limits_identifier_action_window_start_key"`
	CreatedAt   time.Time `json:"created_at"`
}

func (RateLimit) TableName() string { return "rate_limits" }
