package models

import "time"

// ItemRequest is a wish for an item that does not exist yet. Items created
// in answer to a request carry its id.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequestorID int64     `json:"requestor_id"`
	CreatedAt   time.Time `json:"created"`
}

// ItemAnswer is an item offered in response to a request.
type ItemAnswer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

// RequestView is an item request together with its answers.
type RequestView struct {
	ItemRequest
	Items []ItemAnswer `json:"items"`
}

type CreateRequestRequest struct {
	Description string `json:"description"`
}
