package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

// MemoryStore is the in-process data source used for demos and tests.
// Every read returns copies so callers cannot mutate stored records.
type MemoryStore struct {
	mu         sync.RWMutex
	ports      []models.Port
	operators  []models.Operator
	ships      []models.Ship
	schedules  []models.Schedule
	bookings   []models.Booking
	passengers []models.BookingPassenger
	users      []models.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SeedData is the initial content of a MemoryStore.
type SeedData struct {
	Ports     []models.Port
	Operators []models.Operator
	Ships     []models.Ship
	Schedules []models.Schedule
	Users     []models.User
}

// Seed replaces reference data and users; bookings are kept.
func (m *MemoryStore) Seed(data SeedData) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ports = append([]models.Port(nil), data.Ports...)
	m.operators = append([]models.Operator(nil), data.Operators...)
	m.ships = append([]models.Ship(nil), data.Ships...)
	m.schedules = make([]models.Schedule, 0, len(data.Schedules))
	for _, s := range data.Schedules {
		m.schedules = append(m.schedules, cloneSchedule(s))
	}
	m.users = append([]models.User(nil), data.Users...)
}

func cloneSchedule(s models.Schedule) models.Schedule {
	s.Classes = append([]models.FareClass(nil), s.Classes...)
	return s
}

func cloneBooking(b models.Booking) models.Booking {
	b.Passengers = append([]models.BookingPassenger(nil), b.Passengers...)
	return b
}

// ---- ports ----

func (m *MemoryStore) ListPorts(ctx context.Context) ([]models.Port, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := append([]models.Port{}, m.ports...)
	m.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].City != out[j].City {
			return out[i].City < out[j].City
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *MemoryStore) GetPort(_ context.Context, id string) (models.Port, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.ports {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Port{}, domain.NotFoundError{Resource: "port"}
}

func (m *MemoryStore) CreatePort(_ context.Context, p models.Port) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.ports {
		if cur.ID == p.ID || (p.Code != "" && strings.EqualFold(cur.Code, p.Code)) {
			return domain.ConflictError{Resource: "port", Msg: "data sudah ada"}
		}
	}
	m.ports = append(m.ports, p)
	return nil
}

func (m *MemoryStore) UpdatePort(_ context.Context, p models.Port) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ports {
		if m.ports[i].ID == p.ID {
			m.ports[i] = p
			return nil
		}
	}
	return domain.NotFoundError{Resource: "port"}
}

func (m *MemoryStore) DeletePort(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ports {
		if m.ports[i].ID == id {
			m.ports = append(m.ports[:i], m.ports[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "port"}
}

// ---- operators ----

func (m *MemoryStore) ListOperators(ctx context.Context) ([]models.Operator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := append([]models.Operator{}, m.operators...)
	m.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) GetOperator(_ context.Context, id string) (models.Operator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.operators {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Operator{}, domain.NotFoundError{Resource: "operator"}
}

func (m *MemoryStore) CreateOperator(_ context.Context, o models.Operator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.operators {
		if cur.ID == o.ID {
			return domain.ConflictError{Resource: "operator", Msg: "data sudah ada"}
		}
	}
	m.operators = append(m.operators, o)
	return nil
}

func (m *MemoryStore) UpdateOperator(_ context.Context, o models.Operator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.operators {
		if m.operators[i].ID == o.ID {
			m.operators[i] = o
			return nil
		}
	}
	return domain.NotFoundError{Resource: "operator"}
}

func (m *MemoryStore) DeleteOperator(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.operators {
		if m.operators[i].ID == id {
			m.operators = append(m.operators[:i], m.operators[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "operator"}
}

// ---- ships ----

func (m *MemoryStore) ListShips(ctx context.Context) ([]models.Ship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := append([]models.Ship{}, m.ships...)
	m.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) GetShip(_ context.Context, id string) (models.Ship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.ships {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Ship{}, domain.NotFoundError{Resource: "ship"}
}

func (m *MemoryStore) CreateShip(_ context.Context, s models.Ship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.ships {
		if cur.ID == s.ID {
			return domain.ConflictError{Resource: "ship", Msg: "data sudah ada"}
		}
	}
	m.ships = append(m.ships, s)
	return nil
}

func (m *MemoryStore) UpdateShip(_ context.Context, s models.Ship) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ships {
		if m.ships[i].ID == s.ID {
			m.ships[i] = s
			return nil
		}
	}
	return domain.NotFoundError{Resource: "ship"}
}

func (m *MemoryStore) DeleteShip(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.ships {
		if m.ships[i].ID == id {
			m.ships = append(m.ships[:i], m.ships[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "ship"}
}

// ---- schedules ----

func (m *MemoryStore) ListCandidateSchedules(ctx context.Context, departurePortID, arrivalPortID string) ([]models.Schedule, error) {
	return m.filterSchedules(ctx, func(s models.Schedule) bool {
		return s.DeparturePortID == departurePortID &&
			s.ArrivalPortID == arrivalPortID &&
			s.Status == models.ScheduleScheduled
	})
}

func (m *MemoryStore) ListSchedules(ctx context.Context) ([]models.Schedule, error) {
	return m.filterSchedules(ctx, func(models.Schedule) bool { return true })
}

func (m *MemoryStore) filterSchedules(ctx context.Context, keep func(models.Schedule) bool) ([]models.Schedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := []models.Schedule{}
	for _, s := range m.schedules {
		if keep(s) {
			out = append(out, cloneSchedule(s))
		}
	}
	m.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].DepartureTime.Equal(out[j].DepartureTime) {
			return out[i].DepartureTime.Before(out[j].DepartureTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetSchedule(_ context.Context, id string) (models.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, s := range m.schedules {
		if s.ID == id {
			return cloneSchedule(s), nil
		}
	}
	return models.Schedule{}, domain.NotFoundError{Resource: "schedule"}
}

func (m *MemoryStore) CreateSchedule(_ context.Context, s models.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.schedules {
		if cur.ID == s.ID {
			return domain.ConflictError{Resource: "schedule", Msg: "data sudah ada"}
		}
	}
	m.schedules = append(m.schedules, cloneSchedule(s))
	return nil
}

func (m *MemoryStore) UpdateSchedule(_ context.Context, s models.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		if m.schedules[i].ID == s.ID {
			m.schedules[i] = cloneSchedule(s)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "schedule"}
}

func (m *MemoryStore) DeleteSchedule(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.schedules {
		if m.schedules[i].ID == id {
			m.schedules = append(m.schedules[:i], m.schedules[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "schedule"}
}

// ---- bookings ----

func (m *MemoryStore) CreateBooking(_ context.Context, b models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cur := range m.bookings {
		if cur.ID == b.ID || strings.EqualFold(cur.BookingCode, b.BookingCode) {
			return domain.ConflictError{Resource: "booking", Msg: "data sudah ada"}
		}
	}
	stored := cloneBooking(b)
	for i := range stored.Passengers {
		stored.Passengers[i].BookingID = b.ID
	}
	m.passengers = append(m.passengers, stored.Passengers...)
	stored.Passengers = nil
	m.bookings = append(m.bookings, stored)
	return nil
}

func (m *MemoryStore) GetBookingByCode(_ context.Context, code string) (models.Booking, error) {
	code = strings.TrimSpace(code)
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.bookings {
		if strings.EqualFold(b.BookingCode, code) {
			out := cloneBooking(b)
			out.Passengers = m.passengersOfLocked(b.ID)
			return out, nil
		}
	}
	return models.Booking{}, domain.NotFoundError{Resource: "booking"}
}

func (m *MemoryStore) passengersOfLocked(bookingID string) []models.BookingPassenger {
	out := []models.BookingPassenger{}
	for _, p := range m.passengers {
		if p.BookingID == bookingID {
			out = append(out, p)
		}
	}
	return out
}

func (m *MemoryStore) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return m.filterBookings(ctx, func(models.Booking) bool { return true })
}

func (m *MemoryStore) FindBookingsByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	email = strings.TrimSpace(email)
	return m.filterBookings(ctx, func(b models.Booking) bool {
		return strings.EqualFold(strings.TrimSpace(b.ContactEmail), email)
	})
}

func (m *MemoryStore) filterBookings(ctx context.Context, keep func(models.Booking) bool) ([]models.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, cloneBooking(b))
		}
	}
	m.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryStore) ListBookingPassengers(ctx context.Context) ([]models.BookingPassenger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.BookingPassenger{}, m.passengers...), nil
}

func (m *MemoryStore) UpdateBookingStatus(_ context.Context, id string, status models.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings[i].Status = status
			return nil
		}
	}
	return domain.NotFoundError{Resource: "booking"}
}

func (m *MemoryStore) DeleteBooking(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.bookings {
		if m.bookings[i].ID != id {
			continue
		}
		m.bookings = append(m.bookings[:i], m.bookings[i+1:]...)
		kept := m.passengers[:0]
		for _, p := range m.passengers {
			if p.BookingID != id {
				kept = append(kept, p)
			}
		}
		m.passengers = kept
		return nil
	}
	return domain.NotFoundError{Resource: "booking"}
}

// ---- users ----

func (m *MemoryStore) GetUserByUsername(_ context.Context, username string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.User{}, domain.NotFoundError{Resource: "user"}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) || strings.EqualFold(u.Email, username) {
			return u, nil
		}
	}
	return models.User{}, domain.NotFoundError{Resource: "user"}
}

var _ Store = (*MemoryStore)(nil)
