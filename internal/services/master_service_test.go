package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate() { c.n++ }

func TestMasterService_Ports(t *testing.T) {
	store := seededMemory(t)
	cache := &countingInvalidator{}
	svc := MasterService{Store: store, Cache: cache, DefaultLocation: wib}
	ctx := context.Background()

	p, err := svc.CreatePort(ctx, PortInput{Name: " Pelabuhan  Bitung ", City: "Bitung", Code: "btg", Timezone: "Asia/Makassar"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Pelabuhan Bitung", p.Name)
	assert.Equal(t, "BTG", p.Code)
	assert.Equal(t, 1, cache.n)

	_, err = svc.CreatePort(ctx, PortInput{Name: "X"})
	assert.True(t, domain.IsValidation(err))
	_, err = svc.CreatePort(ctx, PortInput{Name: "X", City: "Y", Timezone: "Mars/Olympus"})
	assert.True(t, domain.IsValidation(err))

	_, err = svc.UpdatePort(ctx, "port-none", PortInput{Name: "X", City: "Y"})
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, svc.DeletePort(ctx, p.ID))
	assert.Equal(t, 2, cache.n)
}

func TestMasterService_ShipsCheckOperator(t *testing.T) {
	svc := MasterService{Store: seededMemory(t)}
	ctx := context.Background()

	ship, err := svc.CreateShip(ctx, ShipInput{Name: "KM Baru", Capacity: "1200", OperatorID: "op-dlu"})
	require.NoError(t, err)
	assert.Equal(t, 1200, ship.Capacity)

	_, err = svc.CreateShip(ctx, ShipInput{Name: "KM Hantu", OperatorID: "op-none"})
	var ve domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "operator_id", ve.Field)

	_, err = svc.CreateShip(ctx, ShipInput{ID: "ship-kelud", Name: "KM Kelud"})
	assert.True(t, domain.IsConflict(err))
}

func TestMasterService_ScheduleDefaultsAndZones(t *testing.T) {
	store := seededMemory(t)
	svc := MasterService{Store: store, DefaultLocation: wib}
	ctx := context.Background()

	sched, err := svc.CreateSchedule(ctx, ScheduleInput{
		ShipID:          "ship-kelud",
		DeparturePortID: "port-mks",
		ArrivalPortID:   "port-sby",
		DepartureTime:   "2026-03-12T07:30",
		DurationMinutes: "1320",
	})
	require.NoError(t, err)

	assert.Equal(t, models.ScheduleScheduled, sched.Status)
	// 07:30 WITA
	assert.True(t, time.Date(2026, 3, 11, 23, 30, 0, 0, time.UTC).Equal(sched.DepartureTime))
	assert.Equal(t, 1320, sched.DurationMinutes)
	assert.True(t, sched.DepartureTime.Add(22*time.Hour).Equal(sched.ArrivalTime))
	require.Len(t, sched.Classes, 3)
	assert.Equal(t, "Economy", sched.Classes[0].Name)
	assert.Equal(t, sched.ID+"-c1", sched.Classes[0].ID)

	got, err := store.GetSchedule(ctx, sched.ID)
	require.NoError(t, err)
	assert.Equal(t, sched.Classes, got.Classes)
}

func TestMasterService_ScheduleValidation(t *testing.T) {
	svc := MasterService{Store: seededMemory(t), DefaultLocation: wib}
	ctx := context.Background()
	base := func() ScheduleInput {
		return ScheduleInput{
			ShipID:          "ship-kelud",
			DeparturePortID: "port-sby",
			ArrivalPortID:   "port-mks",
			DepartureTime:   "2026-03-12 08:00",
			ArrivalTime:     "2026-03-13 07:00",
			Classes:         []ClassInput{{Name: "Economy", Price: 300000, AvailableSeats: 100}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*ScheduleInput)
		field  string
	}{
		{"same ports", func(in *ScheduleInput) { in.ArrivalPortID = in.DeparturePortID }, "arrival_port_id"},
		{"unknown ship", func(in *ScheduleInput) { in.ShipID = "ship-none" }, "ship_id"},
		{"unknown port", func(in *ScheduleInput) { in.ArrivalPortID = "port-none" }, "arrival_port_id"},
		{"bad time", func(in *ScheduleInput) { in.DepartureTime = "besok" }, "departure_time"},
		{"arrival first", func(in *ScheduleInput) { in.ArrivalTime = "2026-03-11 08:00" }, "arrival_time"},
		{"bad status", func(in *ScheduleInput) { in.Status = "sunk" }, "status"},
		{"zero price", func(in *ScheduleInput) { in.Classes[0].Price = 0 }, "classes[0].price"},
		{"no seats", func(in *ScheduleInput) { in.Classes[0].AvailableSeats = "0" }, "classes[0].available_seats"},
		{"unnamed class", func(in *ScheduleInput) { in.Classes[0].Name = "" }, "classes[0].name"},
		{"duplicate class", func(in *ScheduleInput) {
			in.Classes = append(in.Classes, ClassInput{Name: "Economy", Price: 1, AvailableSeats: 1})
		}, "classes[1].name"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := base()
			tc.mutate(&in)
			_, err := svc.CreateSchedule(ctx, in)
			var ve domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}

	in := base()
	in.Classes[0].Price = "Rp 325.000"
	sched, err := svc.CreateSchedule(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(325000), sched.Classes[0].Price)
	// WIB to WITA: 08:00+07 to 07:00+08 is 22 hours
	assert.Equal(t, 22*60, sched.DurationMinutes)
}

func TestMasterService_BookingStatus(t *testing.T) {
	bsvc, store := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})
	ctx := context.Background()
	b, err := bsvc.CreateFromSession(ctx, "s1", familyInput())
	require.NoError(t, err)

	svc := MasterService{Store: store}
	require.NoError(t, svc.UpdateBookingStatus(ctx, b.ID, " PAID "))
	got, _ := store.GetBookingByCode(ctx, b.BookingCode)
	assert.Equal(t, models.BookingPaid, got.Status)

	assert.True(t, domain.IsValidation(svc.UpdateBookingStatus(ctx, b.ID, "refunded")))
	assert.True(t, domain.IsNotFound(svc.UpdateBookingStatus(ctx, "nope", "paid")))

	require.NoError(t, svc.DeleteBooking(ctx, b.ID))
	_, err = store.GetBookingByCode(ctx, b.BookingCode)
	assert.True(t, domain.IsNotFound(err))
}
