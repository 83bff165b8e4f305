package repositories

import (
	"context"

	"golang.org/x/sync/errgroup"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
)

// SnapshotReader assembles the candidate schedules and reference data for
// one search. It is a pure read and never filters by date.
type SnapshotReader struct {
	Schedules ScheduleLister
	Refs      *ReferenceCache
}

func (r SnapshotReader) FindCandidates(ctx context.Context, req models.SearchRequest) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := r.Schedules.ListCandidateSchedules(gctx, req.DeparturePortID, req.ArrivalPortID)
		snap.Schedules = list
		return err
	})
	g.Go(func() error {
		list, err := r.Refs.Ships(gctx)
		snap.Ships = list
		return err
	})
	g.Go(func() error {
		list, err := r.Refs.Ports(gctx)
		snap.Ports = list
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, domain.Unavailable("gagal mengambil jadwal", err)
	}
	return snap, nil
}
