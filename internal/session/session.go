// Package session holds per-visitor pipeline state shared between the
// search builder, the results loader and the selection handoff.
package session

import (
	"context"
	"time"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

type ResultsState string

const (
	ResultsLoading     ResultsState = "loading"
	ResultsReady       ResultsState = "ready"
	ResultsUnavailable ResultsState = "unavailable"
)

// LegResults is the filtered and enriched list for one leg, in retrieval
// order, with its distinct fare class names.
type LegResults struct {
	Schedules []models.EnrichedSchedule `json:"schedules"`
	Classes   []string                  `json:"classes"`
}

// Results belong to exactly one search generation.
type Results struct {
	Generation uint64       `json:"generation"`
	State      ResultsState `json:"state"`
	Outbound   *LegResults  `json:"outbound,omitempty"`
	Return     *LegResults  `json:"return,omitempty"`
	Error      string       `json:"error,omitempty"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func (r Results) Leg(leg domain.Leg) *LegResults {
	if leg == domain.LegReturn {
		return r.Return
	}
	return r.Outbound
}

// State is everything stored for one session. Each field has one writer:
// the builder owns Search, the loader owns Results, the handoff owns the
// selections.
type State struct {
	ID             string                   `json:"id"`
	Generation     uint64                   `json:"generation"`
	Search         *models.SearchRequest    `json:"search,omitempty"`
	Results        *Results                 `json:"results,omitempty"`
	Selected       *models.EnrichedSchedule `json:"selected,omitempty"`
	SelectedReturn *models.EnrichedSchedule `json:"selected_return,omitempty"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

func (s State) Selection(leg domain.Leg) *models.EnrichedSchedule {
	if leg == domain.LegReturn {
		return s.SelectedReturn
	}
	return s.Selected
}

type Store interface {
	// Get returns the session state; an unknown id yields an empty State.
	Get(ctx context.Context, id string) (State, error)
	// PublishSearch stores req, bumps the generation, marks results as
	// loading and clears selections made for the previous search.
	PublishSearch(ctx context.Context, id string, req models.SearchRequest) (uint64, error)
	// StoreResults writes res only if res.Generation is still current.
	StoreResults(ctx context.Context, id string, res Results) (bool, error)
	SelectSchedule(ctx context.Context, id string, leg domain.Leg, sched models.EnrichedSchedule) error
	Reset(ctx context.Context, id string) error
}

func applyPublish(st *State, req models.SearchRequest, now time.Time) uint64 {
	st.Generation++
	r := req
	st.Search = &r
	st.Results = &Results{Generation: st.Generation, State: ResultsLoading, UpdatedAt: now}
	st.Selected, st.SelectedReturn = nil, nil
	st.UpdatedAt = now
	return st.Generation
}

func applyResults(st *State, res Results, now time.Time) bool {
	if res.Generation != st.Generation {
		return false
	}
	res.UpdatedAt = now
	st.Results = &res
	st.UpdatedAt = now
	return true
}

func applySelect(st *State, leg domain.Leg, sched models.EnrichedSchedule, now time.Time) {
	s := sched
	if leg == domain.LegReturn {
		st.SelectedReturn = &s
	} else {
		st.Selected = &s
	}
	st.UpdatedAt = now
}
