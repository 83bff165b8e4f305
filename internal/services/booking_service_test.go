package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
	"shiptix/internal/repositories"
	"shiptix/internal/session"
)

var seedNow = time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)

func seededMemory(t *testing.T) *repositories.MemoryStore {
	t.Helper()
	data, err := repositories.DemoSeed(seedNow)
	require.NoError(t, err)
	store := repositories.NewMemoryStore()
	store.Seed(data)
	return store
}

// bookingFixture publishes a search for counts and selects the first
// Surabaya-Makassar sailing of the seed.
func bookingFixture(t *testing.T, counts models.PassengerCounts) (BookingService, *repositories.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	store := seededMemory(t)
	sessions := session.NewMemoryStore(time.Hour)

	req := models.SearchRequest{
		DeparturePortID: "port-sby",
		ArrivalPortID:   "port-mks",
		DepartureDate:   "2026-03-10",
		Passengers:      counts,
	}
	_, err := sessions.PublishSearch(ctx, "s1", req)
	require.NoError(t, err)
	sched, err := store.GetSchedule(ctx, "sch-sby-mks-20260310")
	require.NoError(t, err)
	require.NoError(t, sessions.SelectSchedule(ctx, "s1", domain.LegOutbound, models.EnrichedSchedule{Schedule: sched}))

	svc := BookingService{
		Store:    store,
		Sessions: sessions,
		Now:      func() time.Time { return seedNow },
	}
	return svc, store
}

func familyInput() BookingInput {
	return BookingInput{
		ContactName:   " Budi  Santoso ",
		ContactEmail:  "budi@example.com",
		ContactPhone:  "0812",
		SelectedClass: "Economy",
		Passengers: []PassengerInput{
			{Name: "Budi Santoso", Category: "adult", IDNumber: "3578"},
			{Name: "Sari", Category: "dewasa"},
			{Name: "Adik", Category: "infant"},
		},
	}
}

func TestBookingService_CreateFromSession(t *testing.T) {
	svc, store := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})

	b, err := svc.CreateFromSession(context.Background(), "s1", familyInput())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^SHIP-[0-9A-F]{6}$`), b.BookingCode)
	assert.Equal(t, "Budi Santoso", b.ContactName)
	assert.Equal(t, 3, b.TotalPassengers)
	// infants travel free
	assert.Equal(t, int64(700000), b.PaymentAmount)
	assert.Equal(t, models.BookingPendingPayment, b.Status)

	got, err := store.GetBookingByCode(context.Background(), b.BookingCode)
	require.NoError(t, err)
	assert.Len(t, got.Passengers, 3)
	assert.Equal(t, b.ID, got.Passengers[0].BookingID)
}

func TestBookingService_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BookingInput)
		field  string
	}{
		{"missing contact", func(in *BookingInput) { in.ContactName = "" }, "contact_name"},
		{"bad email", func(in *BookingInput) { in.ContactEmail = "budi" }, "contact_email"},
		{"too few passengers", func(in *BookingInput) { in.Passengers = in.Passengers[:2] }, "passengers"},
		{"wrong category mix", func(in *BookingInput) { in.Passengers[2].Category = "child" }, "passengers"},
		{"unknown category", func(in *BookingInput) { in.Passengers[1].Category = "pet" }, "passengers[1].category"},
		{"blank passenger", func(in *BookingInput) { in.Passengers[0].Name = " " }, "passengers[0].name"},
		{"unknown class", func(in *BookingInput) { in.SelectedClass = "Suite" }, "selected_class"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})
			in := familyInput()
			tc.mutate(&in)
			_, err := svc.CreateFromSession(context.Background(), "s1", in)
			var ve domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestBookingService_RequiresSelection(t *testing.T) {
	svc := BookingService{Store: seededMemory(t), Sessions: session.NewMemoryStore(time.Hour)}
	_, err := svc.CreateFromSession(context.Background(), "nobody", familyInput())
	assert.True(t, domain.IsValidation(err))
}

func TestBookingService_CancelledScheduleConflicts(t *testing.T) {
	svc, store := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})
	ctx := context.Background()
	sched, _ := store.GetSchedule(ctx, "sch-sby-mks-20260310")
	sched.Status = models.ScheduleCancelled
	require.NoError(t, store.UpdateSchedule(ctx, sched))

	_, err := svc.CreateFromSession(ctx, "s1", familyInput())
	assert.True(t, domain.IsConflict(err))
}

func TestBookingService_NotEnoughSeats(t *testing.T) {
	svc, store := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})
	ctx := context.Background()
	sched, _ := store.GetSchedule(ctx, "sch-sby-mks-20260310")
	sched.Classes[0].AvailableSeats = 1
	require.NoError(t, store.UpdateSchedule(ctx, sched))

	_, err := svc.CreateFromSession(ctx, "s1", familyInput())
	assert.True(t, domain.IsConflict(err))
}

func TestBookingService_RetriesCodeCollision(t *testing.T) {
	svc, _ := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})
	codes := []string{"SHIP-AAAAAA", "SHIP-AAAAAA", "SHIP-BBBBBB"}
	svc.NewCode = func() string {
		c := codes[0]
		codes = codes[1:]
		return c
	}
	ctx := context.Background()

	first, err := svc.CreateFromSession(ctx, "s1", familyInput())
	require.NoError(t, err)
	assert.Equal(t, "SHIP-AAAAAA", first.BookingCode)

	second, err := svc.CreateFromSession(ctx, "s1", familyInput())
	require.NoError(t, err)
	assert.Equal(t, "SHIP-BBBBBB", second.BookingCode)
}

func TestBookingService_FindMyBookings(t *testing.T) {
	svc, _ := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})
	ctx := context.Background()
	b, err := svc.CreateFromSession(ctx, "s1", familyInput())
	require.NoError(t, err)

	_, err = svc.FindMyBookings(ctx, " ", "")
	assert.True(t, domain.IsValidation(err))

	list, err := svc.FindMyBookings(ctx, "BUDI@example.com", "")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, _ = svc.FindMyBookings(ctx, "budi@example.com", b.BookingCode[5:])
	assert.Len(t, list, 1)
	list, _ = svc.FindMyBookings(ctx, "budi@example.com", "santoso")
	assert.Len(t, list, 1)
	list, _ = svc.FindMyBookings(ctx, "budi@example.com", "nobody")
	assert.Empty(t, list)
	list, _ = svc.FindMyBookings(ctx, "other@example.com", "")
	assert.Empty(t, list)
}

func TestBookingService_GetTicket(t *testing.T) {
	svc, store := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})
	ctx := context.Background()
	b, err := svc.CreateFromSession(ctx, "s1", familyInput())
	require.NoError(t, err)

	view, err := svc.GetTicket(ctx, b.BookingCode)
	require.NoError(t, err)
	require.NotNil(t, view.Schedule)
	require.NotNil(t, view.Ship)
	require.NotNil(t, view.Operator)
	assert.Equal(t, "KM Dobonsolo", view.Ship.Name)
	assert.Equal(t, "PT PELNI", view.Operator.Name)
	assert.Equal(t, "Makassar", view.ArrivalPort.City)

	require.NoError(t, store.DeleteSchedule(ctx, b.ScheduleID))
	view, err = svc.GetTicket(ctx, b.BookingCode)
	require.NoError(t, err)
	assert.Nil(t, view.Schedule)
	assert.Len(t, view.Booking.Passengers, 3)

	_, err = svc.GetTicket(ctx, "SHIP-000000")
	assert.True(t, domain.IsNotFound(err))
}

type shipLookupStore struct {
	repositories.Store
	err error
}

func (s shipLookupStore) GetShip(context.Context, string) (models.Ship, error) {
	return models.Ship{}, s.err
}

func TestBookingService_GetTicket_ReferenceErrors(t *testing.T) {
	svc, store := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})
	ctx := context.Background()
	b, err := svc.CreateFromSession(ctx, "s1", familyInput())
	require.NoError(t, err)

	down := errors.New("connection refused")
	svc.Store = shipLookupStore{Store: store, err: down}
	_, err = svc.GetTicket(ctx, b.BookingCode)
	assert.ErrorIs(t, err, down)

	svc.Store = shipLookupStore{Store: store, err: domain.NotFoundError{Resource: "ship"}}
	view, err := svc.GetTicket(ctx, b.BookingCode)
	require.NoError(t, err)
	assert.Nil(t, view.Ship)
	assert.Nil(t, view.Operator)
	require.NotNil(t, view.DeparturePort)
	assert.Equal(t, "Makassar", view.ArrivalPort.City)
}
