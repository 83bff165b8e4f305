package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

var bookingCols = []string{"id", "booking_code", "schedule_id", "contact_name", "contact_email",
	"contact_phone", "selected_class", "total_passengers", "payment_amount", "status", "created_at"}

func TestBookingRepository_CreateWritesPassengersInTx(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("b1", "SHIP-ABC123", "s1", "Budi", "budi@example.com", nil, "Economy", 2, int64(700000), "pending_payment", created).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WithArgs("p1", "b1", "Budi", "adult", "3578").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").
		WithArgs("p2", "b1", "Sari", "child", nil).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := BookingRepository{DB: db}.CreateBooking(context.Background(), models.Booking{
		ID: "b1", BookingCode: "SHIP-ABC123", ScheduleID: "s1",
		ContactName: "Budi", ContactEmail: "budi@example.com",
		SelectedClass: "Economy", TotalPassengers: 2, PaymentAmount: 700000,
		Status: models.BookingPendingPayment, CreatedAt: created,
		Passengers: []models.BookingPassenger{
			{ID: "p1", Name: "Budi", Category: models.PassengerAdult, IDNumber: "3578"},
			{ID: "p2", Name: "Sari", Category: models.PassengerChild},
		},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_CreateRollsBackOnPassengerError(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO booking_passengers").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := BookingRepository{DB: db}.CreateBooking(context.Background(), models.Booking{
		ID: "b1", Passengers: []models.BookingPassenger{{ID: "p1", Name: "Budi", Category: models.PassengerAdult}},
	})
	require.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByCodeLoadsPassengers(t *testing.T) {
	db, mock := newMock(t)
	created := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)

	expectTable(mock, "bookings", true)
	mock.ExpectQuery("FROM bookings WHERE UPPER\\(booking_code\\)=\\?").
		WithArgs("SHIP-ABC123").
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow("b1", "SHIP-ABC123", "s1", "Budi", "budi@example.com", "", "Economy", 1, 350000, "paid", created))
	expectTable(mock, "booking_passengers", true)
	mock.ExpectQuery("FROM booking_passengers WHERE booking_id=\\?").
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "booking_id", "name", "category", "id_number"}).
			AddRow("p1", "b1", "Budi", "adult", ""))

	b, err := BookingRepository{DB: db}.GetBookingByCode(context.Background(), " ship-abc123 ")
	require.NoError(t, err)
	assert.Equal(t, models.BookingPaid, b.Status)
	assert.Equal(t, int64(350000), b.PaymentAmount)
	require.Len(t, b.Passengers, 1)
	assert.Equal(t, models.PassengerAdult, b.Passengers[0].Category)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetByCodeNotFound(t *testing.T) {
	db, mock := newMock(t)

	expectTable(mock, "bookings", true)
	mock.ExpectQuery("FROM bookings").WillReturnRows(sqlmock.NewRows(bookingCols))

	_, err := BookingRepository{DB: db}.GetBookingByCode(context.Background(), "SHIP-000000")
	assert.True(t, domain.IsNotFound(err))
}

func TestBookingRepository_FindByEmailLowercases(t *testing.T) {
	db, mock := newMock(t)

	expectTable(mock, "bookings", true)
	mock.ExpectQuery("FROM bookings WHERE LOWER\\(contact_email\\)=\\?").
		WithArgs("budi@example.com").
		WillReturnRows(sqlmock.NewRows(bookingCols))

	list, err := BookingRepository{DB: db}.FindBookingsByEmail(context.Background(), " Budi@Example.com ")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}
