package repositories

import (
	"context"

	"shiptix/internal/domain/models"
)

type PortStore interface {
	ListPorts(ctx context.Context) ([]models.Port, error)
	GetPort(ctx context.Context, id string) (models.Port, error)
	CreatePort(ctx context.Context, p models.Port) error
	UpdatePort(ctx context.Context, p models.Port) error
	DeletePort(ctx context.Context, id string) error
}

type OperatorStore interface {
	ListOperators(ctx context.Context) ([]models.Operator, error)
	GetOperator(ctx context.Context, id string) (models.Operator, error)
	CreateOperator(ctx context.Context, o models.Operator) error
	UpdateOperator(ctx context.Context, o models.Operator) error
	DeleteOperator(ctx context.Context, id string) error
}

type ShipStore interface {
	ListShips(ctx context.Context) ([]models.Ship, error)
	GetShip(ctx context.Context, id string) (models.Ship, error)
	CreateShip(ctx context.Context, s models.Ship) error
	UpdateShip(ctx context.Context, s models.Ship) error
	DeleteShip(ctx context.Context, id string) error
}

// ScheduleLister is the read side used by the search pipeline. Port and
// status predicates may be pushed down; the date predicate never is.
type ScheduleLister interface {
	ListCandidateSchedules(ctx context.Context, departurePortID, arrivalPortID string) ([]models.Schedule, error)
}

type ScheduleStore interface {
	ScheduleLister
	ListSchedules(ctx context.Context) ([]models.Schedule, error)
	GetSchedule(ctx context.Context, id string) (models.Schedule, error)
	CreateSchedule(ctx context.Context, s models.Schedule) error
	UpdateSchedule(ctx context.Context, s models.Schedule) error
	DeleteSchedule(ctx context.Context, id string) error
}

type BookingStore interface {
	CreateBooking(ctx context.Context, b models.Booking) error
	GetBookingByCode(ctx context.Context, code string) (models.Booking, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	FindBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error)
	ListBookingPassengers(ctx context.Context) ([]models.BookingPassenger, error)
	UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error
	DeleteBooking(ctx context.Context, id string) error
}

type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
}

// Store is everything the service layer needs from a data source.
type Store interface {
	PortStore
	OperatorStore
	ShipStore
	ScheduleStore
	BookingStore
	UserStore
}

// Snapshot is the reference data and candidate schedules for one search.
type Snapshot struct {
	Schedules []models.Schedule
	Ships     []models.Ship
	Ports     []models.Port
}
