package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

func seededStore(t *testing.T) *MemoryStore {
	t.Helper()
	data, err := DemoSeed(time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	store := NewMemoryStore()
	store.Seed(data)
	return store
}

func TestDemoSeed_SchedulesStartOnLocalDay(t *testing.T) {
	data, err := DemoSeed(time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Len(t, data.Schedules, 14*len(demoRoutes))
	first := data.Schedules[0]
	assert.Equal(t, "sch-sby-mks-20260310", first.ID)
	// 08:00 WIB is 01:00 UTC
	assert.True(t, time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC).Equal(first.DepartureTime))
	assert.Len(t, first.Classes, 3)

	require.Len(t, data.Users, 1)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(data.Users[0].PasswordHash), []byte("admin")))
}

func TestMemoryStore_CandidatesFilterRouteAndStatus(t *testing.T) {
	store := seededStore(t)

	list, err := store.ListCandidateSchedules(context.Background(), "port-sby", "port-mks")
	require.NoError(t, err)
	// two daily sailings, one of which is delayed on day 5
	assert.Len(t, list, 14*2-1)
	for i, s := range list {
		assert.Equal(t, models.ScheduleScheduled, s.Status)
		if i > 0 {
			assert.False(t, s.DepartureTime.Before(list[i-1].DepartureTime))
		}
	}
}

func TestMemoryStore_ReadsAreCopies(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	s, err := store.GetSchedule(ctx, "sch-sby-mks-20260310")
	require.NoError(t, err)
	s.Classes[0].Price = 1

	again, err := store.GetSchedule(ctx, "sch-sby-mks-20260310")
	require.NoError(t, err)
	assert.NotEqual(t, int64(1), again.Classes[0].Price)
}

func TestMemoryStore_PortsOrderedByCity(t *testing.T) {
	store := seededStore(t)

	ports, err := store.ListPorts(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, ports)
	assert.Equal(t, "Batam", ports[0].City)
	for i := 1; i < len(ports); i++ {
		assert.LessOrEqual(t, ports[i-1].City, ports[i].City)
	}
}

func TestMemoryStore_BookingLifecycle(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	b := models.Booking{
		ID: "b1", BookingCode: "SHIP-ABC123", ScheduleID: "sch-sby-mks-20260310",
		ContactName: "Budi", ContactEmail: "Budi@Example.com", Status: models.BookingPendingPayment,
		Passengers: []models.BookingPassenger{{ID: "p1", Name: "Budi", Category: models.PassengerAdult}},
	}
	require.NoError(t, store.CreateBooking(ctx, b))
	assert.True(t, domain.IsConflict(store.CreateBooking(ctx, b)))

	got, err := store.GetBookingByCode(ctx, "ship-abc123")
	require.NoError(t, err)
	require.Len(t, got.Passengers, 1)
	assert.Equal(t, "b1", got.Passengers[0].BookingID)

	found, err := store.FindBookingsByEmail(ctx, "budi@example.com")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, store.UpdateBookingStatus(ctx, "b1", models.BookingPaid))
	got, err = store.GetBookingByCode(ctx, "SHIP-ABC123")
	require.NoError(t, err)
	assert.Equal(t, models.BookingPaid, got.Status)

	require.NoError(t, store.DeleteBooking(ctx, "b1"))
	passengers, err := store.ListBookingPassengers(ctx)
	require.NoError(t, err)
	assert.Empty(t, passengers)
	assert.True(t, domain.IsNotFound(store.DeleteBooking(ctx, "b1")))
}

func TestMemoryStore_UserLookupByUsernameOrEmail(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	u, err := store.GetUserByUsername(ctx, "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)

	_, err = store.GetUserByUsername(ctx, "admin@shiptix.local")
	require.NoError(t, err)

	_, err = store.GetUserByUsername(ctx, "")
	assert.True(t, domain.IsNotFound(err))
}
