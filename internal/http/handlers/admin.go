package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"shiptix/internal/domain"
	"shiptix/internal/http/middleware"
	"shiptix/internal/services"
)

// ---- ports ----

func (h *Handler) AdminListPorts(c *gin.Context) {
	list, err := h.Store.ListPorts(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ports": list})
}

func (h *Handler) CreatePort(c *gin.Context) {
	var in services.PortInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := h.master(middleware.GetRequestID(c)).CreatePort(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePort(c *gin.Context) {
	var in services.PortInput
	if !BindJSONOrError(c, &in) {
		return
	}
	p, err := h.master(middleware.GetRequestID(c)).UpdatePort(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePort(c *gin.Context) {
	if err := h.master(middleware.GetRequestID(c)).DeletePort(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "pelabuhan dihapus"})
}

// ---- operators ----

func (h *Handler) AdminListOperators(c *gin.Context) {
	list, err := h.Store.ListOperators(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"operators": list})
}

func (h *Handler) CreateOperator(c *gin.Context) {
	var in services.OperatorInput
	if !BindJSONOrError(c, &in) {
		return
	}
	o, err := h.master(middleware.GetRequestID(c)).CreateOperator(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, o)
}

func (h *Handler) UpdateOperator(c *gin.Context) {
	var in services.OperatorInput
	if !BindJSONOrError(c, &in) {
		return
	}
	o, err := h.master(middleware.GetRequestID(c)).UpdateOperator(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (h *Handler) DeleteOperator(c *gin.Context) {
	if err := h.master(middleware.GetRequestID(c)).DeleteOperator(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "operator dihapus"})
}

// ---- ships ----

func (h *Handler) AdminListShips(c *gin.Context) {
	list, err := h.Store.ListShips(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ships": list})
}

func (h *Handler) CreateShip(c *gin.Context) {
	var in services.ShipInput
	if !BindJSONOrError(c, &in) {
		return
	}
	s, err := h.master(middleware.GetRequestID(c)).CreateShip(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) UpdateShip(c *gin.Context) {
	var in services.ShipInput
	if !BindJSONOrError(c, &in) {
		return
	}
	s, err := h.master(middleware.GetRequestID(c)).UpdateShip(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteShip(c *gin.Context) {
	if err := h.master(middleware.GetRequestID(c)).DeleteShip(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "kapal dihapus"})
}

// ---- schedules ----

func (h *Handler) AdminListSchedules(c *gin.Context) {
	list, err := h.Store.ListSchedules(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": list})
}

func (h *Handler) CreateSchedule(c *gin.Context) {
	var in services.ScheduleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	s, err := h.master(middleware.GetRequestID(c)).CreateSchedule(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) UpdateSchedule(c *gin.Context) {
	var in services.ScheduleInput
	if !BindJSONOrError(c, &in) {
		return
	}
	s, err := h.master(middleware.GetRequestID(c)).UpdateSchedule(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) DeleteSchedule(c *gin.Context) {
	if err := h.master(middleware.GetRequestID(c)).DeleteSchedule(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "jadwal dihapus"})
}

// ---- bookings ----

const adminPageMax = 100

// GET /api/admin/bookings?page=&page_size=
func (h *Handler) AdminListBookings(c *gin.Context) {
	list, err := h.Store.ListBookings(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	p := domain.Pagination{
		Page:     cast.ToInt(c.Query("page")),
		PageSize: cast.ToInt(c.Query("page_size")),
	}.Normalize(adminPageMax)
	p.Total = len(list)

	from := min(p.Offset(), len(list))
	to := min(from+p.PageSize, len(list))
	c.JSON(http.StatusOK, gin.H{"bookings": list[from:to], "total": p.Total, "pagination": p})
}

type bookingStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req bookingStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.master(middleware.GetRequestID(c)).UpdateBookingStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status booking diperbarui", "status": req.Status})
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	if err := h.master(middleware.GetRequestID(c)).DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking dihapus"})
}

// GET /api/admin/export
func (h *Handler) Export(c *gin.Context) {
	svc := services.ExportService{Store: h.Store, RequestID: middleware.GetRequestID(c)}
	data, filename, err := svc.ExportWorkbook(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// GET /api/admin/reports/sales?start_date=&end_date=&status=
func (h *Handler) SalesReport(c *gin.Context) {
	svc := services.ReportsService{Store: h.Store, DefaultLocation: h.DefaultLocation}
	report, err := svc.GetSalesReport(c.Request.Context(), services.SalesReportFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Status:    c.Query("status"),
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
