package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/api/middleware"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/dto"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

const (
	msgSuccessful = "successful"
	dateLayout    = "2006-01-02"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondOK writes a 200 envelope, defaulting the message.
func respondOK(w http.ResponseWriter, resp dto.Response) {
	resp.StatusCode = http.StatusOK
	if resp.Message == "" {
		resp.Message = msgSuccessful
	}
	respondWithJSON(w, http.StatusOK, resp)
}

func respondWithStatus(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, dto.Response{StatusCode: statusCode, Message: message})
}

// respondWithError maps err onto the envelope. operation names what failed
// for unexpected errors.
func respondWithError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("operation", operation).Msg("Request failed")
	}
	respondWithStatus(w, status, apperrors.PublicMessage(err, operation))
}

// decodeJSON reads the body into dst and runs struct validation.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("Invalid request payload")
	}
	return validateStruct(dst)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperrors.NewValidationError(describeFieldError(fieldErrs[0]))
	}
	return apperrors.NewValidationError(err.Error())
}

func describeFieldError(fe validator.FieldError) string {
	field := jsonFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("%s must be a date in %s format", field, dateLayout))
	}
	return t, nil
}

// actorFrom returns the caller placed on the request by the auth middleware.
func actorFrom(r *http.Request) (entities.Actor, error) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		return entities.Actor{}, apperrors.NewUnauthorizedError("Authentication is required")
	}
	return actor, nil
}
