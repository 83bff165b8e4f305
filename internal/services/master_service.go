package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
	"shiptix/internal/repositories"
	"shiptix/internal/utils"
)

// Invalidator drops cached reference data after a master data write.
type Invalidator interface {
	Invalidate()
}

// MasterService validates and writes admin master data.
type MasterService struct {
	Store           repositories.Store
	Cache           Invalidator
	DefaultLocation *time.Location
	RequestID       string
}

func (s MasterService) invalidate() {
	if s.Cache != nil {
		s.Cache.Invalidate()
	}
}

func newID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.NewString()
}

// ---- ports ----

type PortInput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Code     string `json:"code"`
	Timezone string `json:"timezone"`
}

func (in PortInput) toModel(id string) (models.Port, error) {
	p := models.Port{
		ID:       id,
		Name:     utils.NormalizeSpace(in.Name),
		City:     utils.NormalizeSpace(in.City),
		Code:     strings.ToUpper(strings.TrimSpace(in.Code)),
		Timezone: strings.TrimSpace(in.Timezone),
	}
	if p.Name == "" {
		return p, domain.ValidationError{Field: "name", Msg: "nama pelabuhan wajib diisi"}
	}
	if p.City == "" {
		return p, domain.ValidationError{Field: "city", Msg: "kota wajib diisi"}
	}
	if p.Timezone != "" {
		if _, err := time.LoadLocation(p.Timezone); err != nil {
			return p, domain.ValidationError{Field: "timezone", Msg: "zona waktu tidak dikenal", Err: err}
		}
	}
	return p, nil
}

func (s MasterService) CreatePort(ctx context.Context, in PortInput) (models.Port, error) {
	p, err := in.toModel(newID(in.ID))
	if err != nil {
		return models.Port{}, err
	}
	if err := s.Store.CreatePort(ctx, p); err != nil {
		return models.Port{}, err
	}
	s.invalidate()
	utils.LogEvent(s.RequestID, "master", "create_port", "id="+p.ID)
	return p, nil
}

func (s MasterService) UpdatePort(ctx context.Context, id string, in PortInput) (models.Port, error) {
	p, err := in.toModel(id)
	if err != nil {
		return models.Port{}, err
	}
	if err := s.Store.UpdatePort(ctx, p); err != nil {
		return models.Port{}, err
	}
	s.invalidate()
	return p, nil
}

func (s MasterService) DeletePort(ctx context.Context, id string) error {
	if err := s.Store.DeletePort(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	utils.LogEvent(s.RequestID, "master", "delete_port", "id="+id)
	return nil
}

// ---- operators ----

type OperatorInput struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func (in OperatorInput) toModel(id string) (models.Operator, error) {
	o := models.Operator{
		ID:    id,
		Name:  utils.NormalizeSpace(in.Name),
		Phone: strings.TrimSpace(in.Phone),
		Email: strings.TrimSpace(in.Email),
	}
	if o.Name == "" {
		return o, domain.ValidationError{Field: "name", Msg: "nama operator wajib diisi"}
	}
	return o, nil
}

func (s MasterService) CreateOperator(ctx context.Context, in OperatorInput) (models.Operator, error) {
	o, err := in.toModel(newID(in.ID))
	if err != nil {
		return models.Operator{}, err
	}
	if err := s.Store.CreateOperator(ctx, o); err != nil {
		return models.Operator{}, err
	}
	utils.LogEvent(s.RequestID, "master", "create_operator", "id="+o.ID)
	return o, nil
}

func (s MasterService) UpdateOperator(ctx context.Context, id string, in OperatorInput) (models.Operator, error) {
	o, err := in.toModel(id)
	if err != nil {
		return models.Operator{}, err
	}
	return o, s.Store.UpdateOperator(ctx, o)
}

func (s MasterService) DeleteOperator(ctx context.Context, id string) error {
	return s.Store.DeleteOperator(ctx, id)
}

// ---- ships ----

type ShipInput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Capacity   any    `json:"capacity"`
	OperatorID string `json:"operator_id"`
}

func (s MasterService) shipModel(ctx context.Context, id string, in ShipInput) (models.Ship, error) {
	ship := models.Ship{
		ID:         id,
		Name:       utils.NormalizeSpace(in.Name),
		Capacity:   ParseCount(in.Capacity),
		OperatorID: strings.TrimSpace(in.OperatorID),
	}
	if ship.Name == "" {
		return ship, domain.ValidationError{Field: "name", Msg: "nama kapal wajib diisi"}
	}
	if ship.OperatorID != "" {
		if _, err := s.Store.GetOperator(ctx, ship.OperatorID); err != nil {
			if domain.IsNotFound(err) {
				return ship, domain.ValidationError{Field: "operator_id", Msg: "operator tidak ditemukan"}
			}
			return ship, err
		}
	}
	return ship, nil
}

func (s MasterService) CreateShip(ctx context.Context, in ShipInput) (models.Ship, error) {
	ship, err := s.shipModel(ctx, newID(in.ID), in)
	if err != nil {
		return models.Ship{}, err
	}
	if err := s.Store.CreateShip(ctx, ship); err != nil {
		return models.Ship{}, err
	}
	s.invalidate()
	utils.LogEvent(s.RequestID, "master", "create_ship", "id="+ship.ID)
	return ship, nil
}

func (s MasterService) UpdateShip(ctx context.Context, id string, in ShipInput) (models.Ship, error) {
	ship, err := s.shipModel(ctx, id, in)
	if err != nil {
		return models.Ship{}, err
	}
	if err := s.Store.UpdateShip(ctx, ship); err != nil {
		return models.Ship{}, err
	}
	s.invalidate()
	return ship, nil
}

func (s MasterService) DeleteShip(ctx context.Context, id string) error {
	if err := s.Store.DeleteShip(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// ---- schedules ----

type ClassInput struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Price          any    `json:"price"`
	AvailableSeats any    `json:"available_seats"`
}

type ScheduleInput struct {
	ID              string       `json:"id"`
	ShipID          string       `json:"ship_id"`
	DeparturePortID string       `json:"departure_port_id"`
	ArrivalPortID   string       `json:"arrival_port_id"`
	DepartureTime   string       `json:"departure_time"`
	ArrivalTime     string       `json:"arrival_time"`
	DurationMinutes any          `json:"duration_minutes"`
	Classes         []ClassInput `json:"classes"`
	Status          string       `json:"status"`
}

// scheduleModel validates references and times. Wall times without an
// offset are read in the departure port zone.
func (s MasterService) scheduleModel(ctx context.Context, id string, in ScheduleInput) (models.Schedule, error) {
	sched := models.Schedule{
		ID:              id,
		ShipID:          strings.TrimSpace(in.ShipID),
		DeparturePortID: strings.TrimSpace(in.DeparturePortID),
		ArrivalPortID:   strings.TrimSpace(in.ArrivalPortID),
		Status:          models.ScheduleStatus(strings.ToLower(strings.TrimSpace(in.Status))),
	}
	switch {
	case sched.ShipID == "":
		return sched, domain.ValidationError{Field: "ship_id", Msg: "kapal wajib dipilih"}
	case sched.DeparturePortID == "" || sched.ArrivalPortID == "":
		return sched, domain.ValidationError{Field: "departure_port_id", Msg: "pelabuhan asal dan tujuan wajib dipilih"}
	case sched.DeparturePortID == sched.ArrivalPortID:
		return sched, domain.ValidationError{Field: "arrival_port_id", Msg: "pelabuhan asal dan tujuan tidak boleh sama", Err: domain.ErrInvalidRoute}
	}
	if sched.Status == "" {
		sched.Status = models.ScheduleScheduled
	}
	if !sched.Status.Valid() {
		return sched, domain.ValidationError{Field: "status", Msg: "status tidak dikenal"}
	}

	if _, err := s.Store.GetShip(ctx, sched.ShipID); err != nil {
		return sched, refErr("ship_id", "kapal", err)
	}
	depPort, err := s.Store.GetPort(ctx, sched.DeparturePortID)
	if err != nil {
		return sched, refErr("departure_port_id", "pelabuhan asal", err)
	}
	arrPort, err := s.Store.GetPort(ctx, sched.ArrivalPortID)
	if err != nil {
		return sched, refErr("arrival_port_id", "pelabuhan tujuan", err)
	}

	dep, err := utils.ParseDateTime(in.DepartureTime, depPort.Location(s.DefaultLocation))
	if err != nil {
		return sched, domain.ValidationError{Field: "departure_time", Msg: "format waktu berangkat tidak valid", Err: err}
	}
	var arr time.Time
	if strings.TrimSpace(in.ArrivalTime) != "" {
		if arr, err = utils.ParseDateTime(in.ArrivalTime, arrPort.Location(s.DefaultLocation)); err != nil {
			return sched, domain.ValidationError{Field: "arrival_time", Msg: "format waktu tiba tidak valid", Err: err}
		}
	}
	arr, minutes, err := models.ResolveArrival(dep, arr, ParseCount(in.DurationMinutes))
	if err != nil {
		return sched, domain.ValidationError{Field: "arrival_time", Msg: err.Error()}
	}
	sched.DepartureTime, sched.ArrivalTime, sched.DurationMinutes = dep.UTC(), arr.UTC(), minutes

	if sched.Classes, err = buildClasses(sched.ID, in.Classes); err != nil {
		return sched, err
	}
	return sched, nil
}

func refErr(field, label string, err error) error {
	if domain.IsNotFound(err) {
		return domain.ValidationError{Field: field, Msg: label + " tidak ditemukan", Err: err}
	}
	return err
}

// buildClasses falls back to the default classes when none are given.
func buildClasses(scheduleID string, in []ClassInput) ([]models.FareClass, error) {
	if len(in) == 0 {
		out := models.DefaultClasses()
		for i := range out {
			out[i].ID = fmt.Sprintf("%s-c%d", scheduleID, i+1)
		}
		return out, nil
	}
	out := make([]models.FareClass, 0, len(in))
	seen := map[string]bool{}
	for i, c := range in {
		name := utils.NormalizeSpace(c.Name)
		if name == "" {
			return nil, domain.ValidationError{Field: fmt.Sprintf("classes[%d].name", i), Msg: "nama kelas wajib diisi"}
		}
		if seen[name] {
			return nil, domain.ValidationError{Field: fmt.Sprintf("classes[%d].name", i), Msg: "nama kelas duplikat"}
		}
		seen[name] = true
		price := parsePrice(c.Price)
		if price <= 0 {
			return nil, domain.ValidationError{Field: fmt.Sprintf("classes[%d].price", i), Msg: "harga harus lebih dari 0"}
		}
		seats := ParseCount(c.AvailableSeats)
		if seats <= 0 {
			return nil, domain.ValidationError{Field: fmt.Sprintf("classes[%d].available_seats", i), Msg: "kursi harus lebih dari 0"}
		}
		id := strings.TrimSpace(c.ID)
		if id == "" {
			id = fmt.Sprintf("%s-c%d", scheduleID, i+1)
		}
		out = append(out, models.FareClass{ID: id, Name: name, Price: price, AvailableSeats: seats})
	}
	return out, nil
}

// parsePrice accepts plain numbers and formatted amounts like "Rp 350.000".
func parsePrice(raw any) int64 {
	if str, ok := raw.(string); ok && strings.HasPrefix(strings.ToLower(strings.TrimSpace(str)), "rp") {
		n, err := utils.ParseRupiah(str)
		if err != nil || n < 0 {
			return 0
		}
		return n
	}
	return int64(ParseCount(raw))
}

func (s MasterService) CreateSchedule(ctx context.Context, in ScheduleInput) (models.Schedule, error) {
	sched, err := s.scheduleModel(ctx, newID(in.ID), in)
	if err != nil {
		return models.Schedule{}, err
	}
	if err := s.Store.CreateSchedule(ctx, sched); err != nil {
		return models.Schedule{}, err
	}
	utils.LogEvent(s.RequestID, "master", "create_schedule", "id="+sched.ID)
	return sched, nil
}

func (s MasterService) UpdateSchedule(ctx context.Context, id string, in ScheduleInput) (models.Schedule, error) {
	sched, err := s.scheduleModel(ctx, id, in)
	if err != nil {
		return models.Schedule{}, err
	}
	if err := s.Store.UpdateSchedule(ctx, sched); err != nil {
		return models.Schedule{}, err
	}
	return sched, nil
}

func (s MasterService) DeleteSchedule(ctx context.Context, id string) error {
	return s.Store.DeleteSchedule(ctx, id)
}

// ---- bookings ----

func (s MasterService) UpdateBookingStatus(ctx context.Context, id, status string) error {
	st := models.BookingStatus(strings.ToLower(strings.TrimSpace(status)))
	if !st.Valid() {
		return domain.ValidationError{Field: "status", Msg: "status booking tidak dikenal"}
	}
	if err := s.Store.UpdateBookingStatus(ctx, id, st); err != nil {
		return err
	}
	utils.LogEvent(s.RequestID, "master", "booking_status", fmt.Sprintf("id=%s status=%s", id, st))
	return nil
}

func (s MasterService) DeleteBooking(ctx context.Context, id string) error {
	return s.Store.DeleteBooking(ctx, id)
}
