package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"shiptix/internal/domain"
	"shiptix/internal/domain/models"
	"shiptix/internal/repositories"
	"shiptix/internal/session"
	"shiptix/internal/utils"
)

// CandidateFinder is the schedule repository seen from the loader.
type CandidateFinder interface {
	FindCandidates(ctx context.Context, req models.SearchRequest) (repositories.Snapshot, error)
}

// ResultsLoader fetches and prepares results in the background and stores
// them only if the session has not moved on to a newer search.
type ResultsLoader struct {
	Finder          CandidateFinder
	Sessions        session.Store
	Timeout         time.Duration
	DefaultLocation *time.Location

	base   context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewResultsLoader(finder CandidateFinder, sessions session.Store, timeout time.Duration, loc *time.Location) *ResultsLoader {
	base, cancel := context.WithCancel(context.Background())
	return &ResultsLoader{
		Finder:          finder,
		Sessions:        sessions,
		Timeout:         timeout,
		DefaultLocation: loc,
		base:            base,
		cancel:          cancel,
	}
}

// Start loads results for generation gen without blocking the caller.
func (l *ResultsLoader) Start(sessionID string, gen uint64, req models.SearchRequest) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if _, err := l.Load(l.base, sessionID, gen, req); err != nil {
			utils.L().Warn("results load failed", zap.String("session", sessionID), zap.Uint64("gen", gen), zap.Error(err))
		}
	}()
}

// Load runs one retrieval synchronously. The returned bool reports whether
// the results were stored; a newer search makes it false.
func (l *ResultsLoader) Load(ctx context.Context, sessionID string, gen uint64, req models.SearchRequest) (bool, error) {
	timeout := l.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res := session.Results{Generation: gen, State: session.ResultsReady}
	out, err := l.prepare(fetchCtx, req)
	if err == nil {
		res.Outbound = &out
		if req.RoundTrip {
			var back session.LegResults
			back, err = l.prepare(fetchCtx, req.ReturnLeg())
			res.Return = &back
		}
	}
	if err != nil {
		if !domain.IsUnavailable(err) {
			err = domain.Unavailable("gagal mengambil jadwal", err)
		}
		res = session.Results{Generation: gen, State: session.ResultsUnavailable, Error: "Jadwal tidak dapat dimuat, silakan coba lagi"}
	}

	// the write must land even if the fetch used up the deadline
	storeCtx, storeCancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer storeCancel()
	stored, serr := l.Sessions.StoreResults(storeCtx, sessionID, res)
	if serr != nil {
		return false, serr
	}

	count := 0
	if res.Outbound != nil {
		count = len(res.Outbound.Schedules)
	}
	utils.LogEvent("", "search", "results_"+string(res.State),
		fmt.Sprintf("session=%s gen=%d stored=%t count=%d", sessionID, gen, stored, count))
	return stored, err
}

func (l *ResultsLoader) prepare(ctx context.Context, req models.SearchRequest) (session.LegResults, error) {
	snap, err := l.Finder.FindCandidates(ctx, req)
	if err != nil {
		return session.LegResults{}, err
	}
	if err := ctx.Err(); err != nil {
		return session.LegResults{}, domain.Unavailable("waktu pencarian habis", err)
	}
	return PrepareResults(req, snap.Schedules, snap.Ships, snap.Ports, l.DefaultLocation), nil
}

// Wait blocks until every started load has finished.
func (l *ResultsLoader) Wait() {
	l.wg.Wait()
}

// Close cancels outstanding loads and waits for them.
func (l *ResultsLoader) Close() {
	l.cancel()
	l.wg.Wait()
}
