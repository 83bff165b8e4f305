package models

import "time"

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "pending_payment"
	BookingPaid           BookingStatus = "paid"
	BookingConfirmed      BookingStatus = "confirmed"
	BookingBoarding       BookingStatus = "boarding"
	BookingCompleted      BookingStatus = "completed"
	BookingCancelled      BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPendingPayment, BookingPaid, BookingConfirmed, BookingBoarding, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// Booking is a confirmed selection with contact data and passengers.
type Booking struct {
	ID              string             `json:"id"`
	BookingCode     string             `json:"booking_code"`
	ScheduleID      string             `json:"schedule_id"`
	ContactName     string             `json:"contact_name"`
	ContactEmail    string             `json:"contact_email"`
	ContactPhone    string             `json:"contact_phone,omitempty"`
	SelectedClass   string             `json:"selected_class"`
	TotalPassengers int                `json:"total_passengers"`
	PaymentAmount   int64              `json:"payment_amount"`
	Status          BookingStatus      `json:"status"`
	CreatedAt       time.Time          `json:"created_at"`
	Passengers      []BookingPassenger `json:"passengers,omitempty"`
}

type BookingPassenger struct {
	ID        string            `json:"id"`
	BookingID string            `json:"booking_id"`
	Name      string            `json:"name"`
	Category  PassengerCategory `json:"category"`
	IDNumber  string            `json:"id_number,omitempty"`
}
