package entity

import "time"

// Review is unique per (bootcamp, user).
type Review struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Rating     int       `json:"rating"`
	CreatedAt  time.Time `json:"createdAt"`
	BootcampID string    `json:"bootcamp"`
	UserID     string    `json:"user"`
}
