package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/valorisation/coherence/internal/domain"
	"github.com/valorisation/coherence/internal/domain/coherence"
)

// DefaultBatchConcurrency bounds ValidateBatch when no limit is given.
const DefaultBatchConcurrency = 8

// ValidateService runs the coherence rules over diagnostic snapshots and turns
// the alerts into reports with a pass/warn/fail status.
type ValidateService struct {
	loader       domain.SnapshotLoader
	configLoader domain.ConfigLoader
	history      domain.ReportHistory
	concurrency  int
	now          func() time.Time
}

// NewValidateService creates a new ValidateService with all required dependencies.
func NewValidateService(
	loader domain.SnapshotLoader,
	configLoader domain.ConfigLoader,
	history domain.ReportHistory,
) *ValidateService {
	return &ValidateService{
		loader: loader, configLoader: configLoader, history: history,
		concurrency: DefaultBatchConcurrency,
		now:         time.Now,
	}
}

// WithConcurrency sets the number of snapshots validated in parallel by
// ValidateBatch. Values below 1 are ignored.
func (s *ValidateService) WithConcurrency(n int) *ValidateService {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// LoadConfig reads the project configuration at path.
func (s *ValidateService) LoadConfig(path string) (domain.Config, error) {
	cfg, err := s.configLoader.Load(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// Check validates one snapshot and builds its report. Skip and min_severity
// filters apply after the rules have run; strict mode turns warnings into a
// failing status.
func (s *ValidateService) Check(cfg domain.Config, source string, snap domain.DiagnosticSnapshot) *domain.Report {
	v := coherence.New(coherence.WithLocale(cfg.EffectiveLocale()))

	all := v.Validate(snap)
	alerts := make([]domain.Alert, 0, len(all))
	for _, a := range all {
		if cfg.Keeps(a) {
			alerts = append(alerts, a)
		}
	}

	return &domain.Report{
		ID:        uuid.NewString(),
		Source:    source,
		Siren:     snap.Siren,
		Status:    domain.StatusFor(alerts, cfg.Strict),
		Blocking:  domain.HasBlocking(alerts),
		Summary:   domain.Summarize(alerts),
		Alerts:    alerts,
		Timestamp: s.now(),
	}
}

// ValidateFile loads the config and every snapshot held in path, then
// validates them.
func (s *ValidateService) ValidateFile(ctx context.Context, configPath, path string) ([]*domain.Report, error) {
	cfg, err := s.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	return s.ValidateFiles(ctx, cfg, path)
}

// ValidateFiles validates every snapshot held in paths with an already
// resolved config. Reports follow file order, then order within each file.
func (s *ValidateService) ValidateFiles(ctx context.Context, cfg domain.Config, paths ...string) ([]*domain.Report, error) {
	var subs []domain.Submission
	for _, path := range paths {
		loaded, err := s.loader.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading snapshots: %w", err)
		}
		subs = append(subs, loaded...)
	}

	return s.ValidateBatch(ctx, cfg, subs)
}

// ValidateBatch validates submissions concurrently. Reports come back in
// submission order. The batch stops early when ctx is cancelled.
func (s *ValidateService) ValidateBatch(ctx context.Context, cfg domain.Config, subs []domain.Submission) ([]*domain.Report, error) {
	logger := zerolog.Ctx(ctx)
	reports := make([]*domain.Report, len(subs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, sub := range subs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[i] = s.Check(cfg, sub.Source, sub.Snapshot)
			logger.Debug().
				Str("source", sub.Source).
				Str("status", reports[i].Status).
				Int("alerts", len(reports[i].Alerts)).
				Msg("snapshot validated")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("validating batch: %w", err)
	}
	return reports, nil
}

// Record appends a condensed trace of the report to the history kept in dir.
func (s *ValidateService) Record(dir string, report *domain.Report) error {
	if err := s.history.Save(dir, domain.NewHistoryEntry(report)); err != nil {
		return fmt.Errorf("recording history: %w", err)
	}
	return nil
}

// History returns the recorded runs kept in dir, oldest first.
func (s *ValidateService) History(dir string) ([]domain.HistoryEntry, error) {
	entries, err := s.history.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	return entries, nil
}

// Rules returns the coherence rule catalog in evaluation order.
func (s *ValidateService) Rules() []domain.Rule {
	return coherence.Rules()
}
