package service

import (
	"context"

	"shareit/internal/apperr"
	"shareit/internal/domain"
	"shareit/internal/events"
	"shareit/internal/metrics"
	"shareit/internal/models"

	"github.com/rs/zerolog"
)

// BookingService decides whether a booking may be created, who may view or
// approve it, and how bookings are classified into states.
//
// Known gaps carried over from the original API contract, on purpose:
// overlapping bookings for the same item are not prevented, and a decision
// may be re-applied to an already approved or rejected booking.
type BookingService struct {
	bookings domain.BookingStore
	items    domain.ItemDirectory
	users    domain.UserDirectory
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewBookingService(bookings domain.BookingStore, items domain.ItemDirectory, users domain.UserDirectory, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		items:    items,
		users:    users,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest, bookerID int64) (*models.Booking, error) {
	// Precondition order matters: first failure wins.
	if err := s.users.CheckUserID(ctx, bookerID); err != nil {
		return nil, err
	}

	item, err := s.items.GetItemByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if !item.Available {
		return nil, apperr.Validation("item is not available")
	}

	if item.OwnerID == bookerID {
		return nil, apperr.Validation("owner must not be the same as booker")
	}

	if req.Start.After(req.End) {
		return nil, apperr.Validation("start must be before end")
	}
	if req.Start.Equal(req.End) {
		return nil, apperr.Validation("start must not equal end")
	}

	booking := &models.Booking{
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    bookerID,
		Start:       req.Start,
		End:         req.End,
		Status:      models.StatusWaiting,
	}

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	s.publishEvent(events.EventBookingCreated, booking)
	return booking, nil
}

func (s *BookingService) ApproveBooking(ctx context.Context, bookingID, callerID int64, approved bool) (*models.Booking, error) {
	// An unknown caller is reported as a validation failure here, not as
	// not-found. The inconsistency with CreateBooking is inherited from
	// the original API and callers depend on it.
	if err := s.users.CheckUserID(ctx, callerID); err != nil {
		return nil, apperr.Validation("user not found")
	}

	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.ItemOwnerID != callerID {
		return nil, apperr.Validation("item belongs to another user")
	}

	status := models.StatusRejected
	eventType := events.EventBookingRejected
	if approved {
		status = models.StatusApproved
		eventType = events.EventBookingApproved
	}

	if err := s.bookings.UpdateBookingStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	booking.Status = status

	metrics.IncBookingDecision(status)
	s.publishEvent(eventType, booking)
	return booking, nil
}

func (s *BookingService) GetBookingByID(ctx context.Context, bookingID, callerID int64) (*models.Booking, error) {
	booking, err := s.bookings.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if callerID != booking.BookerID && callerID != booking.ItemOwnerID {
		return nil, apperr.Validation("restricted access")
	}
	return booking, nil
}

func (s *BookingService) ListByBookerAndState(ctx context.Context, userID int64, state models.BookingState) ([]models.Booking, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.bookings.ListBookings(ctx, models.RoleBooker, userID, state)
}

func (s *BookingService) ListByOwnerAndState(ctx context.Context, userID int64, state models.BookingState) ([]models.Booking, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.bookings.ListBookings(ctx, models.RoleOwner, userID, state)
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		ItemName:  booking.ItemName,
		BookerID:  booking.BookerID,
		Start:     booking.Start,
		End:       booking.End,
		Status:    booking.Status,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}
