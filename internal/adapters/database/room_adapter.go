package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

var roomColumns = []interface{}{
	"id", "room_type", "room_price", "room_description", "room_photo_urls", "created_at", "updated_at",
}

// RoomAdapter implements the RoomRepository interface
type RoomAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRoomAdapter creates a new room adapter
func NewRoomAdapter(client *postgres.Client) repositories.RoomRepository {
	return &RoomAdapter{
		client: client,
		db:     newDialect(client),
	}
}

// Create creates a new room
func (a *RoomAdapter) Create(ctx context.Context, room *entities.Room) error {
	record := goqu.Record{
		"id":               room.ID,
		"room_type":        room.RoomType,
		"room_price":       room.RoomPrice,
		"room_description": sql.NullString{String: room.RoomDescription, Valid: room.RoomDescription != ""},
		"room_photo_urls":  pq.StringArray(room.RoomPhotoURLs),
		"created_at":       room.CreatedAt,
		"updated_at":       room.UpdatedAt,
	}

	query, args, err := a.db.Insert("rooms").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create room", err)
	}
	return nil
}

// GetByID retrieves a room by ID
func (a *RoomAdapter) GetByID(ctx context.Context, id string) (*entities.Room, error) {
	query, args, err := a.db.Select(roomColumns...).From("rooms").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	room, err := scanRoom(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Room Not Found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get room", err)
	}
	return room, nil
}

// List retrieves all rooms, newest first
func (a *RoomAdapter) List(ctx context.Context) ([]*entities.Room, error) {
	ds := a.db.Select(roomColumns...).From("rooms").Order(goqu.C("created_at").Desc())
	return a.query(ctx, ds)
}

// ListTypes returns the distinct room types
func (a *RoomAdapter) ListTypes(ctx context.Context) ([]string, error) {
	query, args, err := a.db.From("rooms").
		Select("room_type").
		Distinct().
		Order(goqu.C("room_type").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list room types", err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, apperrors.NewInternalError("failed to scan room type", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate room types", err)
	}
	return types, nil
}

// ListAvailable returns rooms with no booking touching period
func (a *RoomAdapter) ListAvailable(ctx context.Context, period entities.StayPeriod, roomType string) ([]*entities.Room, error) {
	taken := a.db.From("bookings").
		Select("room_id").
		Where(
			goqu.C("check_in_date").Lte(dateParam(period.CheckOut)),
			goqu.C("check_out_date").Gte(dateParam(period.CheckIn)),
		)

	ds := a.db.Select(roomColumns...).From("rooms").
		Where(goqu.C("id").NotIn(taken)).
		Order(goqu.C("room_price").Asc(), goqu.C("id").Asc())
	if roomType != "" {
		ds = ds.Where(goqu.Ex{"room_type": roomType})
	}

	return a.query(ctx, ds)
}

// Update updates a room
func (a *RoomAdapter) Update(ctx context.Context, room *entities.Room) error {
	room.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("rooms").
		Set(goqu.Record{
			"room_type":        room.RoomType,
			"room_price":       room.RoomPrice,
			"room_description": sql.NullString{String: room.RoomDescription, Valid: room.RoomDescription != ""},
			"room_photo_urls":  pq.StringArray(room.RoomPhotoURLs),
			"updated_at":       room.UpdatedAt,
		}).
		Where(goqu.Ex{"id": room.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update room", err)
	}
	return requireRow(result, "Room Not Found")
}

// Delete deletes a room; its bookings cascade
func (a *RoomAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("rooms").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete room", err)
	}
	return requireRow(result, "Room Not Found")
}

func (a *RoomAdapter) query(ctx context.Context, ds *goqu.SelectDataset) ([]*entities.Room, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list rooms", err)
	}
	defer rows.Close()

	rooms := []*entities.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan room", err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate rooms", err)
	}
	return rooms, nil
}

func scanRoom(row rowScanner) (*entities.Room, error) {
	room := &entities.Room{}
	var description sql.NullString
	var photos pq.StringArray

	if err := row.Scan(
		&room.ID,
		&room.RoomType,
		&room.RoomPrice,
		&description,
		&photos,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return nil, err
	}

	room.RoomDescription = description.String
	room.RoomPhotoURLs = []string(photos)
	if room.RoomPhotoURLs == nil {
		room.RoomPhotoURLs = []string{}
	}
	return room, nil
}
