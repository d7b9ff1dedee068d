package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	RequestID   int64     `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemShort is the minimal item view embedded in booking responses.
type ItemShort struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemDetails is the single-item view: comments always, last/next booking
// dates only when the caller owns the item.
type ItemDetails struct {
	Item
	Comments    []Comment  `json:"comments"`
	LastBooking *time.Time `json:"last_booking,omitempty"`
	NextBooking *time.Time `json:"next_booking,omitempty"`
}

type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   int64  `json:"request_id,omitempty"`
}

// UpdateItemRequest carries a partial update; nil fields keep old values.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}
