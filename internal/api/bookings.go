package api

import (
	"context"
	"net/http"
	"strconv"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req models.CreateBookingRequest
	if err := decodeBody(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	booking, err := s.bookings.CreateBooking(r.Context(), req, bookerID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking.View())
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		s.writeError(w, r, apperr.Validation("approved must be true or false"))
		return
	}

	booking, err := s.bookings.ApproveBooking(r.Context(), bookingID, userID, approved)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking.View())
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	booking, err := s.bookings.GetBookingByID(r.Context(), bookingID, userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking.View())
}

func (s *HTTPServer) handleListBookingsByBooker(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListByBookerAndState)
}

func (s *HTTPServer) handleListBookingsByOwner(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListByOwnerAndState)
}

func (s *HTTPServer) listBookings(
	w http.ResponseWriter,
	r *http.Request,
	list func(ctx context.Context, userID int64, state models.BookingState) ([]models.Booking, error),
) {
	userID, err := callerID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	state, err := models.ParseBookingState(r.URL.Query().Get("state"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	bookings, err := list(r.Context(), userID, state)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	views := make([]models.BookingView, 0, len(bookings))
	for i := range bookings {
		views = append(views, bookings[i].View())
	}
	writeJSON(w, http.StatusOK, views)
}
