package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"shiptix/internal/domain/models"
	"shiptix/internal/utils"
)

// TicketLoader resolves a booking code for document rendering.
type TicketLoader func(ctx context.Context, code string) (TicketView, error)

// DocsService menghasilkan PDF e-ticket per booking.
type DocsService struct {
	Loader          TicketLoader
	DefaultLocation *time.Location
	RequestID       string
}

func (s DocsService) GenerateETicket(ctx context.Context, code string) ([]byte, string, error) {
	view, err := s.Loader(ctx, code)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_eticket", "code="+view.Booking.BookingCode)
	return buildETicketPDF(view, s.DefaultLocation)
}

func buildETicketPDF(v TicketView, defaultLoc *time.Location) ([]byte, string, error) {
	b := v.Booking
	depLoc, arrLoc := defaultLoc, defaultLoc
	route := "-"
	if v.DeparturePort != nil {
		depLoc = v.DeparturePort.Location(defaultLoc)
	}
	if v.ArrivalPort != nil {
		arrLoc = v.ArrivalPort.Location(defaultLoc)
	}
	if v.DeparturePort != nil || v.ArrivalPort != nil {
		route = fmt.Sprintf("%s -> %s", portLabel(v.DeparturePort), portLabel(v.ArrivalPort))
	}

	departure, arrival, duration := "-", "-", "-"
	if v.Schedule != nil {
		departure = utils.FormatDateTime(v.Schedule.DepartureTime, depLoc) + " " + zoneAbbr(v.Schedule.DepartureTime, depLoc)
		if !v.Schedule.ArrivalTime.IsZero() {
			arrival = utils.FormatDateTime(v.Schedule.ArrivalTime, arrLoc) + " " + zoneAbbr(v.Schedule.ArrivalTime, arrLoc)
		}
		duration = utils.FormatDuration(v.Schedule.DurationMinutes)
	}
	ship, operator := "-", "-"
	if v.Ship != nil {
		ship = v.Ship.Name
	}
	if v.Operator != nil {
		operator = v.Operator.Name
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket "+b.BookingCode, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET KAPAL")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Kode Booking : "+safe(b.BookingCode, "-"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Status         : %s", statusLabel(b.Status)),
		fmt.Sprintf("Kapal          : %s", safe(ship, "-")),
		fmt.Sprintf("Operator       : %s", safe(operator, "-")),
		fmt.Sprintf("Rute           : %s", route),
		fmt.Sprintf("Berangkat      : %s", departure),
		fmt.Sprintf("Tiba           : %s", arrival),
		fmt.Sprintf("Durasi         : %s", duration),
		fmt.Sprintf("Kelas          : %s", safe(b.SelectedClass, "-")),
		fmt.Sprintf("Pemesan        : %s", safe(b.ContactName, "-")),
		fmt.Sprintf("Email / HP     : %s / %s", safe(b.ContactEmail, "-"), safe(b.ContactPhone, "-")),
		fmt.Sprintf("Total Bayar    : %s", utils.FormatRupiah(b.PaymentAmount)),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Penumpang:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(b.Passengers) == 0 {
		pdf.Cell(0, 6, "-")
		pdf.Ln(6)
	}
	unitPrice := int64(0)
	if v.Schedule != nil {
		if class, ok := v.Schedule.Class(b.SelectedClass); ok {
			unitPrice = class.Price
		}
	}
	for i, p := range b.Passengers {
		pdf.Cell(0, 6, passengerLine(i+1, p, unitPrice))
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Catatan: Harap tiba di pelabuhan 60 menit sebelum keberangkatan dan tunjukkan e-ticket ini beserta identitas penumpang.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", utils.SafeFilenamePart(b.BookingCode))
	return buf.Bytes(), filename, nil
}

// passengerLine tanpa harga bila kelas tidak lagi ada di jadwal.
func passengerLine(no int, p models.BookingPassenger, unitPrice int64) string {
	line := fmt.Sprintf("%d) %s (%s)", no, safe(p.Name, "-"), categoryLabel(p.Category))
	if strings.TrimSpace(p.IDNumber) != "" {
		line += " - No. ID " + p.IDNumber
	}
	if unitPrice > 0 {
		line += " - " + utils.FormatRupiah(utils.FareFor(unitPrice, p.Category))
	}
	return line
}

func portLabel(p *models.Port) string {
	if p == nil {
		return "-"
	}
	if p.City == "" {
		return safe(p.Name, "-")
	}
	return fmt.Sprintf("%s (%s)", safe(p.Name, "-"), p.City)
}

func zoneAbbr(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	name, _ := t.In(loc).Zone()
	return name
}

func statusLabel(s models.BookingStatus) string {
	switch s {
	case models.BookingPendingPayment:
		return "Menunggu Pembayaran"
	case models.BookingPaid:
		return "Lunas"
	case models.BookingConfirmed:
		return "Terkonfirmasi"
	case models.BookingBoarding:
		return "Boarding"
	case models.BookingCompleted:
		return "Selesai"
	case models.BookingCancelled:
		return "Dibatalkan"
	default:
		return safe(string(s), "-")
	}
}

func categoryLabel(c models.PassengerCategory) string {
	switch c {
	case models.PassengerAdult:
		return "Dewasa"
	case models.PassengerSenior:
		return "Lansia"
	case models.PassengerChild:
		return "Anak"
	case models.PassengerInfant:
		return "Bayi"
	default:
		return safe(string(c), "-")
	}
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}
