package services

import (
	"context"
	"fmt"
	"strings"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
	"shiptix/internal/session"
	"shiptix/internal/utils"
)

// SearchInput is the raw search form. Passenger counts arrive untyped and
// are normalized before validation.
type SearchInput struct {
	DeparturePortID string         `json:"departure_port_id"`
	ArrivalPortID   string         `json:"arrival_port_id"`
	DepartureDate   string         `json:"departure_date"`
	ReturnDate      string         `json:"return_date"`
	RoundTrip       bool           `json:"round_trip"`
	Passengers      map[string]any `json:"passengers"`
	VehicleClass    string         `json:"vehicle_class"`
}

// BuildSearchRequest validates in; the first failing rule wins.
func BuildSearchRequest(in SearchInput) (models.SearchRequest, error) {
	req := models.SearchRequest{
		DeparturePortID: strings.TrimSpace(in.DeparturePortID),
		ArrivalPortID:   strings.TrimSpace(in.ArrivalPortID),
		DepartureDate:   strings.TrimSpace(in.DepartureDate),
		RoundTrip:       in.RoundTrip,
		Passengers:      NormalizeCounts(in.Passengers),
		VehicleClass:    strings.TrimSpace(in.VehicleClass),
	}
	if req.RoundTrip {
		req.ReturnDate = strings.TrimSpace(in.ReturnDate)
	}

	switch {
	case req.DeparturePortID == "":
		return models.SearchRequest{}, domain.Incomplete("departure_port_id", "pelabuhan asal wajib dipilih")
	case req.ArrivalPortID == "":
		return models.SearchRequest{}, domain.Incomplete("arrival_port_id", "pelabuhan tujuan wajib dipilih")
	case req.DepartureDate == "":
		return models.SearchRequest{}, domain.Incomplete("departure_date", "tanggal berangkat wajib diisi")
	}
	dep, err := utils.ParseDate(req.DepartureDate, nil)
	if err != nil {
		return models.SearchRequest{}, domain.Incomplete("departure_date", "format tanggal harus YYYY-MM-DD")
	}

	if req.RoundTrip {
		if req.ReturnDate == "" {
			return models.SearchRequest{}, domain.Incomplete("return_date", "tanggal pulang wajib diisi untuk pulang-pergi")
		}
		ret, err := utils.ParseDate(req.ReturnDate, nil)
		if err != nil {
			return models.SearchRequest{}, domain.Incomplete("return_date", "format tanggal harus YYYY-MM-DD")
		}
		if ret.Before(dep) {
			return models.SearchRequest{}, domain.Incomplete("return_date", "tanggal pulang tidak boleh sebelum tanggal berangkat")
		}
	}

	if req.DeparturePortID == req.ArrivalPortID {
		return models.SearchRequest{}, domain.InvalidRoute("pelabuhan asal dan tujuan tidak boleh sama")
	}

	if req.Passengers.FareEligible() < 1 {
		return models.SearchRequest{}, domain.InvalidPassengerMix("minimal 1 penumpang dewasa atau lansia")
	}

	return req, nil
}

// SearchBuilder validates a search and publishes it to the session.
type SearchBuilder struct {
	Sessions  session.Store
	RequestID string
}

// Submit leaves the session untouched when validation fails.
func (b SearchBuilder) Submit(ctx context.Context, sessionID string, in SearchInput) (models.SearchRequest, uint64, error) {
	req, err := BuildSearchRequest(in)
	if err != nil {
		utils.LogEvent(b.RequestID, "search", "build_rejected", err.Error())
		return models.SearchRequest{}, 0, err
	}
	gen, err := b.Sessions.PublishSearch(ctx, sessionID, req)
	if err != nil {
		return models.SearchRequest{}, 0, domain.InternalError{Msg: "gagal menyimpan pencarian", Err: err}
	}
	utils.LogEvent(b.RequestID, "search", "published",
		fmt.Sprintf("session=%s gen=%d route=%s-%s date=%s", sessionID, gen, req.DeparturePortID, req.ArrivalPortID, req.DepartureDate))
	return req, gen, nil
}
