package services

import (
	"context"
	"fmt"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
	"shiptix/internal/session"
	"shiptix/internal/utils"
)

// SelectionService records the schedule the visitor picked.
type SelectionService struct {
	Sessions  session.Store
	RequestID string
}

// Select stores sched as the selection for leg; the last write wins.
func (s SelectionService) Select(ctx context.Context, sessionID string, leg domain.Leg, sched models.EnrichedSchedule) (domain.Next, error) {
	if err := s.Sessions.SelectSchedule(ctx, sessionID, leg, sched); err != nil {
		return "", domain.InternalError{Msg: "gagal menyimpan pilihan jadwal", Err: err}
	}
	utils.LogEvent(s.RequestID, "search", "select", fmt.Sprintf("session=%s leg=%s schedule=%s", sessionID, leg, sched.ID))
	return domain.NextDetail, nil
}

// FindInResults looks a schedule up among the session's latest ready
// results for leg.
func FindInResults(st session.State, leg domain.Leg, scheduleID string) (models.EnrichedSchedule, error) {
	if st.Results == nil || st.Results.State != session.ResultsReady {
		return models.EnrichedSchedule{}, domain.ValidationError{Field: "schedule_id", Msg: "hasil pencarian belum tersedia"}
	}
	lr := st.Results.Leg(leg)
	if lr == nil {
		return models.EnrichedSchedule{}, domain.ValidationError{Field: "leg", Msg: "pencarian ini tidak memiliki perjalanan pulang"}
	}
	for _, sched := range lr.Schedules {
		if sched.ID == scheduleID {
			return sched, nil
		}
	}
	return models.EnrichedSchedule{}, domain.NotFoundError{Resource: "schedule"}
}
