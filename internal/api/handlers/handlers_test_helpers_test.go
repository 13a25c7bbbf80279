package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/api/middleware"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/application/dto"
	"github.com/zatekoja/HotelReservationSystem/backend/internal/domain/entities"
)

var (
	adminActor = entities.Actor{UserID: "admin-1", Email: "admin@hotel.test", Role: entities.RoleAdmin}
	guestActor = entities.Actor{UserID: "user-1", Email: "guest@hotel.test", Role: entities.RoleUser}
)

func asActor(req *http.Request, actor entities.Actor) *http.Request {
	return req.WithContext(middleware.WithActor(req.Context(), actor))
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}
