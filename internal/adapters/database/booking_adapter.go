package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

var bookingColumns = []interface{}{
	"b.id", "b.room_id", "b.user_id", "b.check_in_date", "b.check_out_date",
	"b.num_of_adults", "b.num_of_children", "b.total_num_of_guest",
	"b.confirmation_code", "b.status", "b.feedback_email_sent", "b.created_at",
}

// joined user and room columns, in scan order
var bookingRelationColumns = []interface{}{
	"u.name", "u.email", "u.phone_number", "u.role",
	"r.room_type", "r.room_price", "r.room_description", "r.room_photo_urls",
}

// BookingAdapter implements the BookingRepository interface
type BookingAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBookingAdapter creates a new booking adapter
func NewBookingAdapter(client *postgres.Client) repositories.BookingRepository {
	return &BookingAdapter{
		client: client,
		db:     newDialect(client),
	}
}

// CreateIfAvailable locks the room row, checks the room's bookings against
// the candidate stay and inserts it when nothing overlaps.
func (a *BookingAdapter) CreateIfAvailable(ctx context.Context, booking *entities.Booking) (bool, error) {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return false, apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	lockQuery, lockArgs, err := a.db.From("rooms").
		Select("id").
		Where(goqu.Ex{"id": booking.RoomID}).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build lock query", err)
	}

	var lockedID string
	if err := tx.QueryRowContext(ctx, lockQuery, lockArgs...).Scan(&lockedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, apperrors.NewNotFoundError("Room Not Found")
		}
		return false, apperrors.NewInternalError("failed to lock room", err)
	}

	existingQuery, existingArgs, err := a.db.From("bookings").
		Select("check_in_date", "check_out_date").
		Where(goqu.Ex{"room_id": booking.RoomID}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := tx.QueryContext(ctx, existingQuery, existingArgs...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to load room bookings", err)
	}
	var existing []*entities.Booking
	for rows.Next() {
		b := &entities.Booking{}
		if err := rows.Scan(&b.CheckInDate, &b.CheckOutDate); err != nil {
			rows.Close()
			return false, apperrors.NewInternalError("failed to scan booking", err)
		}
		existing = append(existing, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return false, apperrors.NewInternalError("failed to iterate bookings", err)
	}

	if !entities.IsRoomAvailable(booking.Period(), existing) {
		return false, nil
	}

	insertQuery, insertArgs, err := a.db.Insert("bookings").Rows(goqu.Record{
		"id":                  booking.ID,
		"room_id":             booking.RoomID,
		"user_id":             booking.UserID,
		"check_in_date":       dateParam(booking.CheckInDate),
		"check_out_date":      dateParam(booking.CheckOutDate),
		"num_of_adults":       booking.NumOfAdults,
		"num_of_children":     booking.NumOfChildren,
		"total_num_of_guest":  booking.TotalNumOfGuest,
		"confirmation_code":   booking.ConfirmationCode,
		"status":              string(booking.Status),
		"feedback_email_sent": booking.FeedbackEmailSent,
		"created_at":          booking.CreatedAt,
	}).ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if isUniqueViolation(err) {
			return false, apperrors.NewConflictError("confirmation code collision, please retry")
		}
		return false, apperrors.NewInternalError("failed to create booking", err)
	}

	if err := tx.Commit(); err != nil {
		return false, apperrors.NewInternalError("failed to commit booking", err)
	}
	return true, nil
}

// GetByID retrieves a booking by ID
func (a *BookingAdapter) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	return a.getOne(ctx, goqu.Ex{"b.id": id})
}

// GetByConfirmationCode retrieves a booking with its user and room
func (a *BookingAdapter) GetByConfirmationCode(ctx context.Context, code string) (*entities.Booking, error) {
	return a.getOne(ctx, goqu.Ex{"b.confirmation_code": code})
}

func (a *BookingAdapter) getOne(ctx context.Context, where goqu.Ex) (*entities.Booking, error) {
	query, args, err := a.joined().Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	booking, err := scanBookingWithRelations(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Booking Not Found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// List retrieves all bookings with user and room, newest first
func (a *BookingAdapter) List(ctx context.Context) ([]*entities.Booking, error) {
	return a.queryJoined(ctx, a.joined().Order(goqu.I("b.created_at").Desc()))
}

// ListByUser retrieves a user's bookings with their rooms
func (a *BookingAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Booking, error) {
	return a.queryJoined(ctx, a.joined().
		Where(goqu.Ex{"b.user_id": userID}).
		Order(goqu.I("b.check_in_date").Desc()))
}

// ListCompletedForFeedback retrieves bookings that checked out on day and
// still await a feedback request
func (a *BookingAdapter) ListCompletedForFeedback(ctx context.Context, day time.Time) ([]*entities.Booking, error) {
	return a.queryJoined(ctx, a.joined().
		Where(goqu.Ex{
			"b.check_out_date":      dateParam(day),
			"b.feedback_email_sent": false,
		}).
		Order(goqu.I("b.created_at").Asc()))
}

// ListByRoom retrieves the bookings of a room
func (a *BookingAdapter) ListByRoom(ctx context.Context, roomID string) ([]*entities.Booking, error) {
	query, args, err := a.db.From(goqu.T("bookings").As("b")).
		Select(bookingColumns...).
		Where(goqu.Ex{"b.room_id": roomID}).
		Order(goqu.I("b.check_in_date").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list room bookings", err)
	}
	defer rows.Close()

	bookings := []*entities.Booking{}
	for rows.Next() {
		booking := &entities.Booking{}
		if err := rows.Scan(bookingScanTargets(booking)...); err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}
	return bookings, nil
}

// MarkFeedbackSent flags a booking as having received its feedback request
func (a *BookingAdapter) MarkFeedbackSent(ctx context.Context, id string) error {
	query, args, err := a.db.Update("bookings").
		Set(goqu.Record{"feedback_email_sent": true}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to mark feedback sent", err)
	}
	return requireRow(result, "Booking Not Found")
}

// Delete deletes a booking
func (a *BookingAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("bookings").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete booking", err)
	}
	return requireRow(result, "Booking Does Not Exist")
}

func (a *BookingAdapter) joined() *goqu.SelectDataset {
	cols := append(append([]interface{}{}, bookingColumns...), bookingRelationColumns...)
	return a.db.From(goqu.T("bookings").As("b")).
		Select(cols...).
		InnerJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.user_id")))).
		InnerJoin(goqu.T("rooms").As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("b.room_id"))))
}

func (a *BookingAdapter) queryJoined(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Booking, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	bookings := []*entities.Booking{}
	for rows.Next() {
		booking, err := scanBookingWithRelations(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}
	return bookings, nil
}

func bookingScanTargets(b *entities.Booking) []interface{} {
	return []interface{}{
		&b.ID,
		&b.RoomID,
		&b.UserID,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.NumOfAdults,
		&b.NumOfChildren,
		&b.TotalNumOfGuest,
		&b.ConfirmationCode,
		&b.Status,
		&b.FeedbackEmailSent,
		&b.CreatedAt,
	}
}

func scanBookingWithRelations(row rowScanner) (*entities.Booking, error) {
	booking := &entities.Booking{}
	user := &entities.User{}
	room := &entities.Room{}
	var phone, description sql.NullString
	var role string
	var photos pq.StringArray

	targets := append(bookingScanTargets(booking),
		&user.Name, &user.Email, &phone, &role,
		&room.RoomType, &room.RoomPrice, &description, &photos,
	)
	if err := row.Scan(targets...); err != nil {
		return nil, err
	}

	user.ID = booking.UserID
	user.PhoneNumber = phone.String
	user.Role = entities.Role(role)

	room.ID = booking.RoomID
	room.RoomDescription = description.String
	room.RoomPhotoURLs = []string(photos)

	booking.User = user
	booking.Room = room
	return booking, nil
}
