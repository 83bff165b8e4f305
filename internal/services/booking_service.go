package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
	"shiptix/internal/repositories"
	"shiptix/internal/session"
	"shiptix/internal/utils"
)

type PassengerInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	IDNumber string `json:"id_number"`
}

type BookingInput struct {
	Leg           string           `json:"leg"`
	ContactName   string           `json:"contact_name"`
	ContactEmail  string           `json:"contact_email"`
	ContactPhone  string           `json:"contact_phone"`
	SelectedClass string           `json:"selected_class"`
	Passengers    []PassengerInput `json:"passengers"`
}

// TicketView is a booking with every reference it points at. Missing
// references stay nil.
type TicketView struct {
	Booking       models.Booking   `json:"booking"`
	Schedule      *models.Schedule `json:"schedule,omitempty"`
	Ship          *models.Ship     `json:"ship,omitempty"`
	Operator      *models.Operator `json:"operator,omitempty"`
	DeparturePort *models.Port     `json:"departure_port,omitempty"`
	ArrivalPort   *models.Port     `json:"arrival_port,omitempty"`
}

// BookingService turns a session selection into a booking and serves the
// booking lookups.
type BookingService struct {
	Store     repositories.Store
	Sessions  session.Store
	RequestID string
	Now       func() time.Time
	NewCode   func() string
}

func (s BookingService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s BookingService) code() string {
	if s.NewCode != nil {
		return s.NewCode()
	}
	return NewBookingCode()
}

// NewBookingCode returns "SHIP-" followed by six uppercase hex characters.
func NewBookingCode() string {
	id := uuid.New()
	return "SHIP-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6])
}

// CreateFromSession books the selected schedule of the session for leg.
func (s BookingService) CreateFromSession(ctx context.Context, sessionID string, in BookingInput) (models.Booking, error) {
	st, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return models.Booking{}, domain.InternalError{Msg: "gagal membaca sesi", Err: err}
	}
	leg := domain.ParseLeg(in.Leg)
	sel := st.Selection(leg)
	if st.Search == nil || sel == nil {
		return models.Booking{}, domain.ValidationError{Field: "schedule", Msg: "belum ada jadwal yang dipilih"}
	}

	contactName := utils.NormalizeSpace(in.ContactName)
	if contactName == "" {
		return models.Booking{}, domain.ValidationError{Field: "contact_name", Msg: "nama pemesan wajib diisi"}
	}
	email := strings.TrimSpace(in.ContactEmail)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return models.Booking{}, domain.ValidationError{Field: "contact_email", Msg: "email tidak valid"}
	}

	counts := st.Search.Passengers
	passengers, err := buildPassengers(in.Passengers, counts)
	if err != nil {
		return models.Booking{}, err
	}

	// selection may be stale; re-read the schedule
	sched, err := s.Store.GetSchedule(ctx, sel.ID)
	if err != nil {
		return models.Booking{}, err
	}
	if sched.Status != models.ScheduleScheduled {
		return models.Booking{}, domain.ConflictError{Resource: "schedule", Msg: "jadwal tidak lagi tersedia"}
	}
	class, ok := sched.Class(strings.TrimSpace(in.SelectedClass))
	if !ok {
		return models.Booking{}, domain.ValidationError{Field: "selected_class", Msg: "kelas tidak tersedia pada jadwal ini"}
	}
	// infants ride on a lap and take no seat
	if need := counts.Total() - counts.Infants; class.AvailableSeats < need {
		return models.Booking{}, domain.ConflictError{Resource: "seat", Msg: fmt.Sprintf("kursi %s tersisa %d", class.Name, class.AvailableSeats)}
	}

	b := models.Booking{
		ID:              uuid.NewString(),
		ScheduleID:      sched.ID,
		ContactName:     contactName,
		ContactEmail:    email,
		ContactPhone:    strings.TrimSpace(in.ContactPhone),
		SelectedClass:   class.Name,
		TotalPassengers: counts.Total(),
		PaymentAmount:   utils.ComputeFare(class.Price, counts),
		Status:          models.BookingPendingPayment,
		CreatedAt:       s.now().UTC(),
		Passengers:      passengers,
	}
	for i := range b.Passengers {
		b.Passengers[i].BookingID = b.ID
	}

	// a code collision is retried with a fresh code
	for attempt := 0; ; attempt++ {
		b.BookingCode = s.code()
		err = s.Store.CreateBooking(ctx, b)
		if err == nil || !domain.IsConflict(err) || attempt >= 2 {
			break
		}
	}
	if err != nil {
		return models.Booking{}, err
	}

	utils.LogEvent(s.RequestID, "booking", "create",
		fmt.Sprintf("code=%s schedule=%s pax=%d amount=%d", b.BookingCode, b.ScheduleID, b.TotalPassengers, b.PaymentAmount))
	return b, nil
}

// buildPassengers checks the list matches the searched party exactly.
func buildPassengers(in []PassengerInput, counts models.PassengerCounts) ([]models.BookingPassenger, error) {
	if len(in) != counts.Total() {
		return nil, domain.ValidationError{Field: "passengers", Msg: fmt.Sprintf("jumlah penumpang harus %d", counts.Total())}
	}
	var got models.PassengerCounts
	out := make([]models.BookingPassenger, 0, len(in))
	for i, p := range in {
		name := utils.NormalizeSpace(p.Name)
		if name == "" {
			return nil, domain.ValidationError{Field: fmt.Sprintf("passengers[%d].name", i), Msg: "nama penumpang wajib diisi"}
		}
		cat, ok := models.ParsePassengerCategory(p.Category)
		if !ok {
			return nil, domain.ValidationError{Field: fmt.Sprintf("passengers[%d].category", i), Msg: "kategori tidak dikenal"}
		}
		got = got.With(cat, got.Get(cat)+1)
		out = append(out, models.BookingPassenger{
			ID:       uuid.NewString(),
			Name:     name,
			Category: cat,
			IDNumber: strings.TrimSpace(p.IDNumber),
		})
	}
	if got != counts {
		return nil, domain.ValidationError{Field: "passengers", Msg: "kategori penumpang tidak sesuai pencarian"}
	}
	return out, nil
}

// FindMyBookings lists bookings for email (case-insensitive); a non-empty q
// must appear in the booking code or contact name.
func (s BookingService) FindMyBookings(ctx context.Context, email, q string) ([]models.Booking, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.ValidationError{Field: "email", Msg: "email wajib diisi"}
	}
	list, err := s.Store.FindBookingsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	q = strings.TrimSpace(q)
	if q == "" {
		return list, nil
	}
	out := []models.Booking{}
	for _, b := range list {
		if utils.ContainsFold(b.BookingCode, q) || utils.ContainsFold(b.ContactName, q) {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetTicket resolves a booking code to a full ticket view.
func (s BookingService) GetTicket(ctx context.Context, code string) (TicketView, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return TicketView{}, domain.ValidationError{Field: "code", Msg: "kode booking wajib diisi"}
	}
	b, err := s.Store.GetBookingByCode(ctx, code)
	if err != nil {
		return TicketView{}, err
	}

	view := TicketView{Booking: b}
	sched, err := s.Store.GetSchedule(ctx, b.ScheduleID)
	if err != nil {
		if domain.IsNotFound(err) {
			return view, nil
		}
		return TicketView{}, err
	}
	view.Schedule = &sched

	ship, err := s.Store.GetShip(ctx, sched.ShipID)
	if err := keepMissing(err, func() { view.Ship = &ship }); err != nil {
		return TicketView{}, err
	}
	if view.Ship != nil {
		op, err := s.Store.GetOperator(ctx, ship.OperatorID)
		if err := keepMissing(err, func() { view.Operator = &op }); err != nil {
			return TicketView{}, err
		}
	}
	dep, err := s.Store.GetPort(ctx, sched.DeparturePortID)
	if err := keepMissing(err, func() { view.DeparturePort = &dep }); err != nil {
		return TicketView{}, err
	}
	arr, err := s.Store.GetPort(ctx, sched.ArrivalPortID)
	if err := keepMissing(err, func() { view.ArrivalPort = &arr }); err != nil {
		return TicketView{}, err
	}
	return view, nil
}

// keepMissing runs set on success. A missing reference leaves the field nil;
// any other lookup error is returned.
func keepMissing(err error, set func()) error {
	switch {
	case err == nil:
		set()
		return nil
	case domain.IsNotFound(err):
		return nil
	default:
		return err
	}
}
