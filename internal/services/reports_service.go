package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
	"shiptix/internal/repositories"
	"shiptix/internal/utils"
)

type SalesReportFilter struct {
	StartDate string // YYYY-MM-DD, inclusive, by booking date
	EndDate   string
	Status    string
}

type ScheduleSales struct {
	ScheduleID      string    `json:"schedule_id"`
	DeparturePortID string    `json:"departure_port_id,omitempty"`
	ArrivalPortID   string    `json:"arrival_port_id,omitempty"`
	DepartureTime   time.Time `json:"departure_time,omitempty"`
	Bookings        int       `json:"bookings"`
	Passengers      int       `json:"passengers"`
	Revenue         int64     `json:"revenue"`
	RevenueLabel    string    `json:"revenue_label"`
}

type SalesReport struct {
	Rows         []ScheduleSales `json:"rows"`
	Bookings     int             `json:"bookings"`
	Passengers   int             `json:"passengers"`
	Revenue      int64           `json:"revenue"`
	RevenueLabel string          `json:"revenue_label"`
}

// ReportsService summarizes bookings per schedule for the admin area.
type ReportsService struct {
	Store           repositories.Store
	DefaultLocation *time.Location
}

// GetSalesReport groups bookings by schedule. Cancelled bookings are left
// out unless the status filter asks for them.
func (s ReportsService) GetSalesReport(ctx context.Context, f SalesReportFilter) (SalesReport, error) {
	var start, end time.Time
	var err error
	if strings.TrimSpace(f.StartDate) != "" {
		if start, err = utils.ParseDate(f.StartDate, s.DefaultLocation); err != nil {
			return SalesReport{}, domain.ValidationError{Field: "start_date", Msg: "format tanggal harus YYYY-MM-DD"}
		}
	}
	if strings.TrimSpace(f.EndDate) != "" {
		if end, err = utils.ParseDate(f.EndDate, s.DefaultLocation); err != nil {
			return SalesReport{}, domain.ValidationError{Field: "end_date", Msg: "format tanggal harus YYYY-MM-DD"}
		}
		end = end.AddDate(0, 0, 1)
	}
	status := models.BookingStatus(strings.ToLower(strings.TrimSpace(f.Status)))
	if status != "" && !status.Valid() {
		return SalesReport{}, domain.ValidationError{Field: "status", Msg: "status booking tidak dikenal"}
	}

	bookings, err := s.Store.ListBookings(ctx)
	if err != nil {
		return SalesReport{}, err
	}
	schedules, err := s.Store.ListSchedules(ctx)
	if err != nil {
		return SalesReport{}, err
	}
	byID := make(map[string]models.Schedule, len(schedules))
	for _, sc := range schedules {
		byID[sc.ID] = sc
	}

	rows := map[string]*ScheduleSales{}
	var report SalesReport
	for _, b := range bookings {
		switch {
		case status != "" && b.Status != status:
			continue
		case status == "" && b.Status == models.BookingCancelled:
			continue
		case !start.IsZero() && b.CreatedAt.Before(start):
			continue
		case !end.IsZero() && !b.CreatedAt.Before(end):
			continue
		}
		row, ok := rows[b.ScheduleID]
		if !ok {
			row = &ScheduleSales{ScheduleID: b.ScheduleID}
			if sc, found := byID[b.ScheduleID]; found {
				row.DeparturePortID, row.ArrivalPortID, row.DepartureTime = sc.DeparturePortID, sc.ArrivalPortID, sc.DepartureTime
			}
			rows[b.ScheduleID] = row
		}
		row.Bookings++
		row.Passengers += b.TotalPassengers
		row.Revenue += b.PaymentAmount

		report.Bookings++
		report.Passengers += b.TotalPassengers
		report.Revenue += b.PaymentAmount
	}

	report.Rows = make([]ScheduleSales, 0, len(rows))
	for _, r := range rows {
		r.RevenueLabel = utils.FormatRupiah(r.Revenue)
		report.Rows = append(report.Rows, *r)
	}
	sort.Slice(report.Rows, func(i, j int) bool {
		if report.Rows[i].Revenue != report.Rows[j].Revenue {
			return report.Rows[i].Revenue > report.Rows[j].Revenue
		}
		return report.Rows[i].ScheduleID < report.Rows[j].ScheduleID
	})
	report.RevenueLabel = utils.FormatRupiah(report.Revenue)
	return report, nil
}
