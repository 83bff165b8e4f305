package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiptix/internal/http/middleware"
	"shiptix/internal/services"
)

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var in services.BookingInput
	if !BindJSONOrError(c, &in) {
		return
	}
	b, err := h.bookings(middleware.GetRequestID(c)).CreateFromSession(c.Request.Context(), middleware.GetSessionID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"booking": b, "booking_code": b.BookingCode})
}

// GET /api/bookings?email=&q=
func (h *Handler) MyBookings(c *gin.Context) {
	list, err := h.bookings(middleware.GetRequestID(c)).FindMyBookings(c.Request.Context(), c.Query("email"), c.Query("q"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list, "total": len(list)})
}

// GET /api/bookings/:code
func (h *Handler) GetBooking(c *gin.Context) {
	view, err := h.bookings(middleware.GetRequestID(c)).GetTicket(c.Request.Context(), c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /api/bookings/:code/e-ticket
func (h *Handler) ETicket(c *gin.Context) {
	rid := middleware.GetRequestID(c)
	svc := services.DocsService{
		Loader:          h.bookings(rid).GetTicket,
		DefaultLocation: h.DefaultLocation,
		RequestID:       rid,
	}
	pdfBytes, filename, err := svc.GenerateETicket(c.Request.Context(), c.Param("code"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
