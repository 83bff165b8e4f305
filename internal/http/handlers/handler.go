package handlers

import (
	"time"

	"shiptix/internal/repositories"
	"shiptix/internal/services"
	"shiptix/internal/session"
)

// Handler groups the HTTP endpoints with the collaborators they need.
// Services that carry a request id are built per request.
type Handler struct {
	Store           repositories.Store
	Refs            *repositories.ReferenceCache
	Sessions        session.Store
	Loader          *services.ResultsLoader
	Auth            services.AuthService
	Counter         services.PassengerCounter
	DefaultLocation *time.Location
	DataSource      string
}

func (h *Handler) builder(rid string) services.SearchBuilder {
	return services.SearchBuilder{Sessions: h.Sessions, RequestID: rid}
}

func (h *Handler) selection(rid string) services.SelectionService {
	return services.SelectionService{Sessions: h.Sessions, RequestID: rid}
}

func (h *Handler) bookings(rid string) services.BookingService {
	return services.BookingService{Store: h.Store, Sessions: h.Sessions, RequestID: rid}
}

func (h *Handler) master(rid string) services.MasterService {
	var cache services.Invalidator
	if h.Refs != nil {
		cache = h.Refs
	}
	return services.MasterService{Store: h.Store, Cache: cache, DefaultLocation: h.DefaultLocation, RequestID: rid}
}

func (h *Handler) auth(rid string) services.AuthService {
	a := h.Auth
	a.RequestID = rid
	return a
}
