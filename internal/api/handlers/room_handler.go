package handlers

import (
	"context"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/dto"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/services"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

const maxUploadSize = 32 << 20

// RoomService defines the room operations used by the handler.
type RoomService interface {
	Add(ctx context.Context, in services.RoomInput) (*entities.Room, error)
	List(ctx context.Context) ([]*entities.Room, error)
	Types(ctx context.Context) ([]string, error)
	GetByID(ctx context.Context, id string) (*entities.Room, error)
	Update(ctx context.Context, id string, in services.RoomInput) (*entities.Room, error)
	Delete(ctx context.Context, id string) error
	AvailableByDateAndType(ctx context.Context, checkIn, checkOut time.Time, roomType string) ([]*entities.Room, error)
	AllAvailable(ctx context.Context, today time.Time) ([]*entities.Room, error)
}

// RoomHandler handles room inventory requests
type RoomHandler struct {
	service RoomService
	now     func() time.Time
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(service RoomService) *RoomHandler {
	return &RoomHandler{service: service, now: time.Now}
}

// Add handles POST /rooms/add (multipart/form-data)
func (h *RoomHandler) Add(w http.ResponseWriter, r *http.Request) {
	in, closeFiles, err := parseRoomForm(r)
	if err != nil {
		respondWithError(w, r, err, "saving room")
		return
	}
	defer closeFiles()

	room, err := h.service.Add(r.Context(), in)
	if err != nil {
		respondWithError(w, r, err, "saving room")
		return
	}
	view := dto.RoomFromEntity(room)
	respondOK(w, dto.Response{Room: &view})
}

// List handles GET /rooms/all
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.List(r.Context())
	if err != nil {
		respondWithError(w, r, err, "getting rooms")
		return
	}
	respondOK(w, dto.Response{RoomList: dto.RoomsFromEntities(rooms)})
}

// Types handles GET /rooms/types
func (h *RoomHandler) Types(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.Types(r.Context())
	if err != nil {
		respondWithError(w, r, err, "getting room types")
		return
	}
	if types == nil {
		types = []string{}
	}
	respondOK(w, dto.Response{RoomTypes: types})
}

// GetByID handles GET /rooms/room-by-id/{roomId}
func (h *RoomHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetByID(r.Context(), r.PathValue("roomId"))
	if err != nil {
		respondWithError(w, r, err, "getting room")
		return
	}
	view := dto.RoomWithBookings(room)
	respondOK(w, dto.Response{Room: &view})
}

// AllAvailable handles GET /rooms/all-available-rooms
func (h *RoomHandler) AllAvailable(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.service.AllAvailable(r.Context(), h.now())
	if err != nil {
		respondWithError(w, r, err, "getting available rooms")
		return
	}
	respondOK(w, dto.Response{RoomList: dto.RoomsFromEntities(rooms)})
}

// AvailableByDateAndType handles
// GET /rooms/available-rooms-by-date-and-type?checkInDate=&checkOutDate=&roomType=
func (h *RoomHandler) AvailableByDateAndType(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("checkInDate") == "" || q.Get("checkOutDate") == "" || strings.TrimSpace(q.Get("roomType")) == "" {
		respondWithStatus(w, http.StatusBadRequest, "Please provide values for all fields (checkInDate, roomType, checkOutDate)")
		return
	}

	checkIn, err := parseDate(q.Get("checkInDate"), "checkInDate")
	if err != nil {
		respondWithError(w, r, err, "getting available rooms")
		return
	}
	checkOut, err := parseDate(q.Get("checkOutDate"), "checkOutDate")
	if err != nil {
		respondWithError(w, r, err, "getting available rooms")
		return
	}

	rooms, err := h.service.AvailableByDateAndType(r.Context(), checkIn, checkOut, strings.TrimSpace(q.Get("roomType")))
	if err != nil {
		respondWithError(w, r, err, "getting available rooms")
		return
	}
	respondOK(w, dto.Response{RoomList: dto.RoomsFromEntities(rooms)})
}

// Update handles PUT /rooms/update/{roomId} (multipart/form-data)
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	in, closeFiles, err := parseRoomForm(r)
	if err != nil {
		respondWithError(w, r, err, "updating room")
		return
	}
	defer closeFiles()

	room, err := h.service.Update(r.Context(), r.PathValue("roomId"), in)
	if err != nil {
		respondWithError(w, r, err, "updating room")
		return
	}
	view := dto.RoomFromEntity(room)
	respondOK(w, dto.Response{Message: "Room updated successfully", Room: &view})
}

// Delete handles DELETE /rooms/delete/{roomId}
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("roomId")); err != nil {
		respondWithError(w, r, err, "deleting room")
		return
	}
	respondOK(w, dto.Response{})
}

// parseRoomForm reads room fields and photos. The returned func closes the
// opened uploads.
func parseRoomForm(r *http.Request) (services.RoomInput, func(), error) {
	noop := func() {}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil && err != http.ErrNotMultipart {
		return services.RoomInput{}, noop, apperrors.NewValidationError("Invalid multipart form")
	}

	in := services.RoomInput{
		RoomType:        strings.TrimSpace(r.FormValue("roomType")),
		RoomDescription: strings.TrimSpace(r.FormValue("roomDescription")),
	}
	if raw := strings.TrimSpace(r.FormValue("roomPrice")); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return services.RoomInput{}, noop, apperrors.NewValidationError("roomPrice must be a non-negative number")
		}
		in.RoomPrice = &price
	}

	if r.MultipartForm == nil {
		return in, noop, nil
	}

	var opened []multipart.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for _, field := range []string{"photos", "photo"} {
		for _, header := range r.MultipartForm.File[field] {
			file, err := header.Open()
			if err != nil {
				closeAll()
				return services.RoomInput{}, noop, apperrors.NewValidationError("Could not read uploaded photo")
			}
			opened = append(opened, file)
			in.Photos = append(in.Photos, services.Photo{Filename: header.Filename, Content: file})
		}
	}
	return in, closeAll, nil
}
