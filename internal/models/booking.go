package models

import "time"

// Booking is a reservation of an item by a user for a time interval.
// ItemName and ItemOwnerID are populated from the items table on reads and
// from the resolved item on create; they are not part of the booking row.
type Booking struct {
	ID          int64     `json:"id"`
	ItemID      int64     `json:"item_id"`
	ItemName    string    `json:"item_name"`
	ItemOwnerID int64     `json:"item_owner_id"`
	BookerID    int64     `json:"booker_id"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookingView is the wire shape returned by the booking endpoints.
type BookingView struct {
	ID     int64     `json:"id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Item   ItemShort `json:"item"`
	Booker UserShort `json:"booker"`
}

// View projects the booking into its response shape.
func (b *Booking) View() BookingView {
	return BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   ItemShort{ID: b.ItemID, Name: b.ItemName},
		Booker: UserShort{ID: b.BookerID},
	}
}

type CreateBookingRequest struct {
	ItemID int64     `json:"item_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}
