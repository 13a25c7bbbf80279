package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/providers"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

// memUsers is an in-memory repositories.UserRepository
type memUsers struct {
	mu    sync.Mutex
	users map[string]*entities.User
}

func newMemUsers(users ...*entities.User) *memUsers {
	m := &memUsers{users: map[string]*entities.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(ctx context.Context, user *entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperrors.NewConflictError("User with this email already exists")
		}
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUsers) GetByID(ctx context.Context, id string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("User Not Found")
	}
	copied := *u
	return &copied, nil
}

func (m *memUsers) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.NewNotFoundError("User Not Found")
}

func (m *memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUsers) List(ctx context.Context) ([]*entities.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entities.User{}
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

func (m *memUsers) CountByRole(ctx context.Context, role entities.Role) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *memUsers) Update(ctx context.Context, user *entities.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return apperrors.NewNotFoundError("User Not Found")
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *memUsers) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return apperrors.NewNotFoundError("User Not Found")
	}
	delete(m.users, id)
	return nil
}

// memRooms is an in-memory repositories.RoomRepository. ListAvailable
// consults bookings when set.
type memRooms struct {
	mu       sync.Mutex
	rooms    map[string]*entities.Room
	bookings *memBookings
}

func newMemRooms(rooms ...*entities.Room) *memRooms {
	m := &memRooms{rooms: map[string]*entities.Room{}}
	for _, r := range rooms {
		m.rooms[r.ID] = r
	}
	return m
}

func (m *memRooms) Create(ctx context.Context, room *entities.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *room
	m.rooms[room.ID] = &copied
	return nil
}

func (m *memRooms) GetByID(ctx context.Context, id string) (*entities.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Room Not Found")
	}
	copied := *r
	return &copied, nil
}

func (m *memRooms) List(ctx context.Context) ([]*entities.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entities.Room{}
	for _, r := range m.rooms {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRooms) ListTypes(ctx context.Context) ([]string, error) {
	rooms, _ := m.List(ctx)
	seen := map[string]bool{}
	types := []string{}
	for _, r := range rooms {
		if !seen[r.RoomType] {
			seen[r.RoomType] = true
			types = append(types, r.RoomType)
		}
	}
	sort.Strings(types)
	return types, nil
}

func (m *memRooms) Update(ctx context.Context, room *entities.Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[room.ID]; !ok {
		return apperrors.NewNotFoundError("Room Not Found")
	}
	copied := *room
	m.rooms[room.ID] = &copied
	return nil
}

func (m *memRooms) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rooms[id]; !ok {
		return apperrors.NewNotFoundError("Room Not Found")
	}
	delete(m.rooms, id)
	return nil
}

func (m *memRooms) ListAvailable(ctx context.Context, period entities.StayPeriod, roomType string) ([]*entities.Room, error) {
	rooms, _ := m.List(ctx)
	out := []*entities.Room{}
	for _, r := range rooms {
		if roomType != "" && r.RoomType != roomType {
			continue
		}
		var existing []*entities.Booking
		if m.bookings != nil {
			existing, _ = m.bookings.ListByRoom(ctx, r.ID)
		}
		if entities.IsRoomAvailable(period, existing) {
			out = append(out, r)
		}
	}
	return out, nil
}

// memBookings is an in-memory repositories.BookingRepository whose
// CreateIfAvailable holds one lock across check and insert.
type memBookings struct {
	mu        sync.Mutex
	bookings  map[string]*entities.Booking
	users     *memUsers
	rooms     *memRooms
	codeClash int
	failMark  map[string]bool
}

func newMemBookings(users *memUsers, rooms *memRooms) *memBookings {
	return &memBookings{bookings: map[string]*entities.Booking{}, users: users, rooms: rooms, failMark: map[string]bool{}}
}

func (m *memBookings) CreateIfAvailable(ctx context.Context, booking *entities.Booking) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.codeClash > 0 {
		m.codeClash--
		return false, apperrors.NewConflictError("confirmation code already exists")
	}
	var existing []*entities.Booking
	for _, b := range m.bookings {
		if b.RoomID == booking.RoomID {
			existing = append(existing, b)
		}
	}
	if !entities.IsRoomAvailable(booking.Period(), existing) {
		return false, nil
	}
	copied := *booking
	copied.User, copied.Room = nil, nil
	m.bookings[booking.ID] = &copied
	return true, nil
}

func (m *memBookings) withRelations(ctx context.Context, b *entities.Booking) *entities.Booking {
	copied := *b
	if m.users != nil {
		copied.User, _ = m.users.GetByID(ctx, b.UserID)
	}
	if m.rooms != nil {
		copied.Room, _ = m.rooms.GetByID(ctx, b.RoomID)
	}
	return &copied
}

func (m *memBookings) GetByID(ctx context.Context, id string) (*entities.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Booking Not Found")
	}
	copied := *b
	return &copied, nil
}

func (m *memBookings) GetByConfirmationCode(ctx context.Context, code string) (*entities.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ConfirmationCode == code {
			return m.withRelations(ctx, b), nil
		}
	}
	return nil, apperrors.NewNotFoundError("Booking Not Found")
}

func (m *memBookings) filter(ctx context.Context, keep func(*entities.Booking) bool) []*entities.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entities.Booking{}
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, m.withRelations(ctx, b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInDate.Before(out[j].CheckInDate) })
	return out
}

func (m *memBookings) List(ctx context.Context) ([]*entities.Booking, error) {
	return m.filter(ctx, func(*entities.Booking) bool { return true }), nil
}

func (m *memBookings) ListByRoom(ctx context.Context, roomID string) ([]*entities.Booking, error) {
	return m.filter(ctx, func(b *entities.Booking) bool { return b.RoomID == roomID }), nil
}

func (m *memBookings) ListByUser(ctx context.Context, userID string) ([]*entities.Booking, error) {
	return m.filter(ctx, func(b *entities.Booking) bool { return b.UserID == userID }), nil
}

func (m *memBookings) ListCompletedForFeedback(ctx context.Context, day time.Time) ([]*entities.Booking, error) {
	return m.filter(ctx, func(b *entities.Booking) bool {
		return !b.FeedbackEmailSent && entities.DateOnly(b.CheckOutDate).Equal(entities.DateOnly(day))
	}), nil
}

func (m *memBookings) MarkFeedbackSent(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failMark[id] {
		return apperrors.NewInternalError("failed to mark feedback sent", errors.New("db down"))
	}
	b, ok := m.bookings[id]
	if !ok {
		return apperrors.NewNotFoundError("Booking Not Found")
	}
	b.FeedbackEmailSent = true
	return nil
}

func (m *memBookings) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bookings[id]; !ok {
		return apperrors.NewNotFoundError("Booking Does Not Exist")
	}
	delete(m.bookings, id)
	return nil
}

func (m *memBookings) put(b *entities.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = b
}

// memReviews is an in-memory repositories.ReviewRepository
type memReviews struct {
	mu      sync.Mutex
	reviews map[string]*entities.Review
}

func newMemReviews() *memReviews {
	return &memReviews{reviews: map[string]*entities.Review{}}
}

func (m *memReviews) Create(ctx context.Context, review *entities.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *review
	m.reviews[review.ID] = &copied
	return nil
}

func (m *memReviews) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("Review not found")
	}
	copied := *r
	return &copied, nil
}

func (m *memReviews) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entities.Review{}
	for _, r := range m.reviews {
		if filter.Approved != nil && r.IsApproved != *filter.Approved {
			continue
		}
		if filter.RoomID != "" && (r.RoomID == nil || *r.RoomID != filter.RoomID) {
			continue
		}
		if filter.UserID != "" && r.UserID != filter.UserID {
			continue
		}
		if filter.HotelOnly && r.RoomID != nil {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memReviews) ExistsByBookingAndUser(ctx context.Context, bookingID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.BookingID != nil && *r.BookingID == bookingID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memReviews) Update(ctx context.Context, review *entities.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[review.ID]; !ok {
		return apperrors.NewNotFoundError("Review not found")
	}
	copied := *review
	m.reviews[review.ID] = &copied
	return nil
}

func (m *memReviews) SetApproved(ctx context.Context, id string, approved bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return apperrors.NewNotFoundError("Review not found")
	}
	r.IsApproved = approved
	return nil
}

func (m *memReviews) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return apperrors.NewNotFoundError("Review not found")
	}
	delete(m.reviews, id)
	return nil
}

func (m *memReviews) Stats(ctx context.Context) (*entities.ReviewStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := &entities.ReviewStats{}
	for _, r := range m.reviews {
		stats.Total++
		if r.IsApproved {
			stats.Approved++
		} else {
			stats.Pending++
		}
	}
	return stats, nil
}

func (m *memReviews) AverageRatings(ctx context.Context) (*entities.AverageRatings, error) {
	return &entities.AverageRatings{}, nil
}

// recordingMailer captures messages and optionally fails for given recipients
type recordingMailer struct {
	mu     sync.Mutex
	sent   []providers.EmailMessage
	failTo map[string]bool
}

func (m *recordingMailer) Send(ctx context.Context, msg providers.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[msg.To] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

// recordingBus captures published events
type recordingBus struct {
	mu     sync.Mutex
	events []*entities.HotelEvent
}

func (b *recordingBus) Publish(ctx context.Context, channel string, event *entities.HotelEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.HotelEvent, error) {
	return make(chan *entities.HotelEvent), nil
}

func (b *recordingBus) Unsubscribe(ctx context.Context, channel string) error { return nil }
func (b *recordingBus) Close() error                                           { return nil }

func (b *recordingBus) types() []entities.HotelEventType {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]entities.HotelEventType, 0, len(b.events))
	for _, e := range b.events {
		out = append(out, e.Type)
	}
	return out
}

// plainHasher stores passwords with a fixed prefix
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

// staticTokens issues "token-<id>"
type staticTokens struct{}

func (staticTokens) Issue(user *entities.User) (string, error) { return "token-" + user.ID, nil }
func (staticTokens) Parse(token string) (entities.Actor, error) {
	return entities.Actor{}, errors.New("not supported")
}
func (staticTokens) TTL() time.Duration { return 7 * 24 * time.Hour }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
