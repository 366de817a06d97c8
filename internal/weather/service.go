package weather

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Snapshot describes the store currently served by a Service.
type Snapshot struct {
	ID       uuid.UUID `json:"id"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loadedAt"`

	// Months lists the stored months as "YYYY/MM", oldest first. It stays
	// empty for stores that cannot enumerate themselves.
	Months []string `json:"months"`

	store Store
}

// Service owns the current reading store and answers report queries against it.
type Service struct {
	loader  Loader
	logger  *slog.Logger
	current atomic.Pointer[Snapshot]
}

// NewService creates a new Service. Nothing is loaded until Reload is called.
func NewService(loader Loader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		loader: loader,
		logger: logger.With("component", "weather"),
	}
}

// Reload builds a fresh store from the loader and swaps it in. The previous
// store stays in place if loading fails.
func (s *Service) Reload(ctx context.Context) error {
	start := time.Now()

	st, err := s.loader.Load(ctx)
	if err != nil {
		s.logger.Error("reload failed", "source", s.loader.Name(), "error", err)
		return fmt.Errorf("load %s: %w", s.loader.Name(), err)
	}

	snap := &Snapshot{
		ID:       uuid.New(),
		Source:   s.loader.Name(),
		LoadedAt: time.Now().UTC(),
		Months:   months(st),
		store:    st,
	}
	s.current.Store(snap)

	s.logger.Info("readings loaded",
		"load_id", snap.ID,
		"source", snap.Source,
		"months", len(snap.Months),
		"elapsed", time.Since(start),
	)
	return nil
}

func months(st Store) []string {
	out := []string{}
	lister, ok := st.(MonthLister)
	if !ok {
		return out
	}
	for _, k := range lister.Keys() {
		out = append(out, k.String())
	}
	return out
}

// Snapshot returns the currently served snapshot, or false before the first
// successful Reload.
func (s *Service) Snapshot() (Snapshot, bool) {
	snap := s.current.Load()
	if snap == nil {
		return Snapshot{}, false
	}
	return *snap, true
}

// Store returns the store queries currently run against.
func (s *Service) Store() (Store, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap.store, nil
}

// Yearly computes the yearly report against the current store.
func (s *Service) Yearly(year int) (YearlyCalculation, error) {
	st, err := s.Store()
	if err != nil {
		return YearlyCalculation{}, err
	}
	s.logger.Debug("computing yearly report", "year", year)
	return ComputeYear(year, st)
}

// Monthly computes the monthly report against the current store.
func (s *Service) Monthly(year int, month time.Month) (MonthlyCalculation, error) {
	st, err := s.Store()
	if err != nil {
		return MonthlyCalculation{}, err
	}
	s.logger.Debug("computing monthly report", "year", year, "month", int(month))
	return ComputeMonth(year, month, st)
}
