package gateway

import (
	"encoding/json"
	"strings"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/models"
)

// Request bodies are rejected here before they cost the server a round trip.
// The server repeats the stateful checks; the gateway only enforces shape.

func validateCreateUser(body []byte) error {
	var req models.CreateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperr.Validation("name must not be blank")
	}
	return validateEmail(req.Email)
}

func validateUpdateUser(body []byte) error {
	var req models.UpdateUserRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.Email != nil {
		return validateEmail(*req.Email)
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.Validation("email must not be blank")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return apperr.Validation("email %s is not valid", email)
	}
	return nil
}

func validateCreateItem(body []byte) error {
	var req models.CreateItemRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperr.Validation("name must not be blank")
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperr.Validation("description must not be blank")
	}
	if req.Available == nil {
		return apperr.Validation("available is required")
	}
	return nil
}

func validateCreateComment(body []byte) error {
	var req models.CreateCommentRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperr.Validation("text must not be blank")
	}
	return nil
}

func validateCreateRequest(body []byte) error {
	var req models.CreateRequestRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperr.Validation("description must not be blank")
	}
	return nil
}

func validateCreateBooking(body []byte) error {
	var req models.CreateBookingRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return apperr.Validation("invalid request body")
	}
	if req.ItemID <= 0 {
		return apperr.Validation("itemId is required")
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return apperr.Validation("start and end are required")
	}
	now := time.Now()
	if req.Start.Before(now) {
		return apperr.Validation("start must not be in the past")
	}
	if req.End.Before(now) {
		return apperr.Validation("end must not be in the past")
	}
	if !req.Start.Before(req.End) {
		return apperr.Validation("start must be before end")
	}
	return nil
}

func validateBookingState(raw string) error {
	_, err := models.ParseBookingState(raw)
	return err
}
