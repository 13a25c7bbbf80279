package database

import (
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/infrastructure/clients/postgres"
)

const uniqueViolation = "23505"

func newDialect(client *postgres.Client) *goqu.Database {
	return goqu.New("postgres", client.DB())
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// dateParam renders a calendar date for DATE columns
func dateParam(t time.Time) string {
	return t.Format("2006-01-02")
}
