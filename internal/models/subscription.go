package models

import "time"

// Subscription - подписка чата на еженедельный план питания
type Subscription struct {
	ChatID    int64     `json:"chat_id"`
	DaysCount int       `json:"days_count"`
	Target    Nutrients `json:"target"`
	UpdatedAt time.Time `json:"updated_at"`
}
