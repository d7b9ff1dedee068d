package domain

import (
	"context"
	"time"

	"shareit/internal/models"
)

// UserDirectory resolves and validates users. CheckUserID distinguishes a
// missing identifier (Validation) from an unknown one (NotFound).
type UserDirectory interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	CheckUserID(ctx context.Context, id int64) error
}

// ItemDirectory resolves items with owner and availability.
type ItemDirectory interface {
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
}

// BookingStore is the persistence contract of the booking policy engine.
type BookingStore interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status string) error
	ListBookings(ctx context.Context, role models.BookingRole, userID int64, state models.BookingState) ([]models.Booking, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id int64) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
}

type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	UpdateItem(ctx context.Context, item *models.Item) error
	DeleteItem(ctx context.Context, id int64) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	SearchItems(ctx context.Context, text string) ([]models.Item, error)
	GetComments(ctx context.Context, itemID int64) ([]models.Comment, error)
	CreateComment(ctx context.Context, comment *models.Comment) error
	CountFinishedApprovedBookings(ctx context.Context, itemID, bookerID int64) (int, error)
	GetLastBookingEnd(ctx context.Context, itemID int64) (*time.Time, error)
	GetNextBookingStart(ctx context.Context, itemID int64) (*time.Time, error)
}

type RequestStore interface {
	CreateRequest(ctx context.Context, request *models.ItemRequest) error
	GetRequestByID(ctx context.Context, id int64) (*models.ItemRequest, error)
	GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error)
	GetRequestsExcludingRequestor(ctx context.Context, requestorID int64) ([]models.ItemRequest, error)
	GetItemAnswers(ctx context.Context, requestID int64) ([]models.ItemAnswer, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// Cache is the gateway response cache contract.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest, bookerID int64) (*models.Booking, error)
	ApproveBooking(ctx context.Context, bookingID, callerID int64, approved bool) (*models.Booking, error)
	GetBookingByID(ctx context.Context, bookingID, callerID int64) (*models.Booking, error)
	ListByBookerAndState(ctx context.Context, userID int64, state models.BookingState) ([]models.Booking, error)
	ListByOwnerAndState(ctx context.Context, userID int64, state models.BookingState) ([]models.Booking, error)
}

type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, req models.UpdateUserRequest, userID int64) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]models.User, error)
	CheckUserID(ctx context.Context, id int64) error
}

type ItemService interface {
	CreateItem(ctx context.Context, req models.CreateItemRequest, userID int64) (*models.Item, error)
	UpdateItem(ctx context.Context, req models.UpdateItemRequest, userID, itemID int64) (*models.Item, error)
	DeleteItem(ctx context.Context, itemID, userID int64) error
	GetItemByID(ctx context.Context, itemID, callerID int64) (*models.ItemDetails, error)
	GetItemsByOwner(ctx context.Context, ownerID int64) ([]models.ItemDetails, error)
	SearchItems(ctx context.Context, text string, userID int64) ([]models.Item, error)
	CreateComment(ctx context.Context, req models.CreateCommentRequest, itemID, userID int64) (*models.Comment, error)
}

type RequestService interface {
	CreateRequest(ctx context.Context, req models.CreateRequestRequest, userID int64) (*models.ItemRequest, error)
	GetRequestsByUser(ctx context.Context, userID int64) ([]models.RequestView, error)
	GetRequestsFromOthers(ctx context.Context, userID int64) ([]models.RequestView, error)
	GetRequestByID(ctx context.Context, requestID int64) (*models.RequestView, error)
}

// ExportQueue accepts report jobs for the background worker.
type ExportQueue interface {
	Enqueue(ctx context.Context, from, to time.Time) (*models.ExportJob, error)
	ListJobs(ctx context.Context) ([]models.ExportJob, error)
}
