package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

func TestReportsService_SalesPerSchedule(t *testing.T) {
	bsvc, store := bookingFixture(t, models.PassengerCounts{Adults: 2, Infants: 1})
	ctx := context.Background()

	first, err := bsvc.CreateFromSession(ctx, "s1", familyInput())
	require.NoError(t, err)
	cancelled, err := bsvc.CreateFromSession(ctx, "s1", familyInput())
	require.NoError(t, err)
	require.NoError(t, MasterService{Store: store}.UpdateBookingStatus(ctx, cancelled.ID, "cancelled"))

	svc := ReportsService{Store: store, DefaultLocation: wib}
	report, err := svc.GetSalesReport(ctx, SalesReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Bookings)
	assert.Equal(t, 3, report.Passengers)
	assert.Equal(t, first.PaymentAmount, report.Revenue)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "sch-sby-mks-20260310", report.Rows[0].ScheduleID)
	assert.Equal(t, "port-sby", report.Rows[0].DeparturePortID)
	assert.Equal(t, "Rp700.000", report.RevenueLabel)

	report, err = svc.GetSalesReport(ctx, SalesReportFilter{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Bookings)

	// bookings were made at seedNow (2026-03-10 09:00 WIB)
	report, err = svc.GetSalesReport(ctx, SalesReportFilter{StartDate: "2026-03-11"})
	require.NoError(t, err)
	assert.Zero(t, report.Bookings)
	report, err = svc.GetSalesReport(ctx, SalesReportFilter{StartDate: "2026-03-10", EndDate: "2026-03-10"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Bookings)

	_, err = svc.GetSalesReport(ctx, SalesReportFilter{EndDate: "10-03-2026"})
	assert.True(t, domain.IsValidation(err))
}
