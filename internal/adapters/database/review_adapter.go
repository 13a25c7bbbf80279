package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/repositories"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/HotelReservationSystem/backend/pkg/errors"
)

var reviewColumns = []interface{}{
	"rv.id", "rv.title", "rv.comment",
	"rv.overall_rating", "rv.cleanliness_rating", "rv.service_rating", "rv.location_rating",
	"rv.is_approved", "rv.is_hotel_review", "rv.user_id", "rv.room_id", "rv.booking_id",
	"rv.created_at", "rv.updated_at",
	"u.name", "u.email", "r.room_type", "b.confirmation_code",
}

// ReviewAdapter implements the ReviewRepository interface
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     newDialect(client),
	}
}

// Create creates a new review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	record := goqu.Record{
		"id":                 review.ID,
		"title":              review.Title,
		"comment":            review.Comment,
		"overall_rating":     review.OverallRating,
		"cleanliness_rating": review.CleanlinessRating,
		"service_rating":     review.ServiceRating,
		"location_rating":    review.LocationRating,
		"is_approved":        review.IsApproved,
		"is_hotel_review":    review.IsHotelReview,
		"user_id":            review.UserID,
		"room_id":            nullable(review.RoomID),
		"booking_id":         nullable(review.BookingID),
		"created_at":         review.CreatedAt,
		"updated_at":         review.UpdatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflictError("You have already reviewed this booking")
		}
		return apperrors.NewInternalError("failed to create review", err)
	}
	return nil
}

// GetByID retrieves a review by ID
func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	query, args, err := a.joined().Where(goqu.Ex{"rv.id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	review, err := scanReview(a.client.DB().QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Review not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}
	return review, nil
}

// List retrieves reviews matching filter, newest first
func (a *ReviewAdapter) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, error) {
	ds := a.joined()
	if filter.Approved != nil {
		ds = ds.Where(goqu.Ex{"rv.is_approved": *filter.Approved})
	}
	if filter.RoomID != "" {
		ds = ds.Where(goqu.Ex{"rv.room_id": filter.RoomID})
	}
	if filter.UserID != "" {
		ds = ds.Where(goqu.Ex{"rv.user_id": filter.UserID})
	}
	if filter.HotelOnly {
		ds = ds.Where(goqu.I("rv.room_id").IsNull())
	}

	query, args, err := ds.Order(goqu.I("rv.created_at").Desc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}
	return reviews, nil
}

// ExistsByBookingAndUser reports whether userID already reviewed bookingID
func (a *ReviewAdapter) ExistsByBookingAndUser(ctx context.Context, bookingID, userID string) (bool, error) {
	query, args, err := a.db.From("reviews").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"booking_id": bookingID, "user_id": userID}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int64
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to check review existence", err)
	}
	return count > 0, nil
}

// Update updates content, ratings and approval
func (a *ReviewAdapter) Update(ctx context.Context, review *entities.Review) error {
	review.UpdatedAt = time.Now().UTC()

	return a.update(ctx, review.ID, goqu.Record{
		"title":              review.Title,
		"comment":            review.Comment,
		"overall_rating":     review.OverallRating,
		"cleanliness_rating": review.CleanlinessRating,
		"service_rating":     review.ServiceRating,
		"location_rating":    review.LocationRating,
		"is_approved":        review.IsApproved,
		"updated_at":         review.UpdatedAt,
	})
}

// SetApproved changes the approval flag
func (a *ReviewAdapter) SetApproved(ctx context.Context, id string, approved bool) error {
	return a.update(ctx, id, goqu.Record{
		"is_approved": approved,
		"updated_at":  time.Now().UTC(),
	})
}

func (a *ReviewAdapter) update(ctx context.Context, id string, record goqu.Record) error {
	query, args, err := a.db.Update("reviews").Set(record).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update review", err)
	}
	return requireRow(result, "Review not found")
}

// Delete deletes a review
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reviews").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete review", err)
	}
	return requireRow(result, "Review not found")
}

// Stats counts reviews by moderation state
func (a *ReviewAdapter) Stats(ctx context.Context) (*entities.ReviewStats, error) {
	query, args, err := a.db.From("reviews").Select(
		goqu.COUNT("*"),
		goqu.L("COUNT(*) FILTER (WHERE is_approved)"),
		goqu.L("COUNT(*) FILTER (WHERE NOT is_approved)"),
	).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build stats query", err)
	}

	stats := &entities.ReviewStats{}
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&stats.Total, &stats.Approved, &stats.Pending); err != nil {
		return nil, apperrors.NewInternalError("failed to load review statistics", err)
	}
	return stats, nil
}

// AverageRatings averages each category over approved reviews
func (a *ReviewAdapter) AverageRatings(ctx context.Context) (*entities.AverageRatings, error) {
	query, args, err := a.db.From("reviews").Select(
		goqu.COALESCE(goqu.AVG("overall_rating"), 0),
		goqu.COALESCE(goqu.AVG("cleanliness_rating"), 0),
		goqu.COALESCE(goqu.AVG("service_rating"), 0),
		goqu.COALESCE(goqu.AVG("location_rating"), 0),
	).Where(goqu.Ex{"is_approved": true}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build averages query", err)
	}

	avg := &entities.AverageRatings{}
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&avg.Overall, &avg.Cleanliness, &avg.Service, &avg.Location); err != nil {
		return nil, apperrors.NewInternalError("failed to load average ratings", err)
	}
	return avg, nil
}

func (a *ReviewAdapter) joined() *goqu.SelectDataset {
	return a.db.From(goqu.T("reviews").As("rv")).
		Select(reviewColumns...).
		InnerJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("rv.user_id")))).
		LeftJoin(goqu.T("rooms").As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("rv.room_id")))).
		LeftJoin(goqu.T("bookings").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("rv.booking_id"))))
}

func scanReview(row rowScanner) (*entities.Review, error) {
	review := &entities.Review{}
	var comment, roomID, bookingID, roomType, confirmationCode sql.NullString
	var userName, userEmail string

	if err := row.Scan(
		&review.ID,
		&review.Title,
		&comment,
		&review.OverallRating,
		&review.CleanlinessRating,
		&review.ServiceRating,
		&review.LocationRating,
		&review.IsApproved,
		&review.IsHotelReview,
		&review.UserID,
		&roomID,
		&bookingID,
		&review.CreatedAt,
		&review.UpdatedAt,
		&userName,
		&userEmail,
		&roomType,
		&confirmationCode,
	); err != nil {
		return nil, err
	}

	review.Comment = comment.String
	review.User = &entities.User{ID: review.UserID, Name: userName, Email: userEmail}
	if roomID.Valid {
		review.RoomID = &roomID.String
		review.Room = &entities.Room{ID: roomID.String, RoomType: roomType.String}
	}
	if bookingID.Valid {
		review.BookingID = &bookingID.String
		review.Booking = &entities.Booking{ID: bookingID.String, ConfirmationCode: confirmationCode.String}
	}
	return review, nil
}

func nullable(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
