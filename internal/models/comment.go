package models

import "time"

// Comment is feedback left on an item by a user who finished an approved
// booking of it.
type Comment struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	ItemID     int64     `json:"item_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created"`
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}
