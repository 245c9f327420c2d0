// Package reports coordinates entry storage, the analytics core, and the
// memoized report cache behind one application-facing service.
package reports

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"moodlog/internal/cachemanager"
	"moodlog/internal/coach"
	"moodlog/internal/flags"
	"moodlog/internal/insight"
	"moodlog/internal/journal/domain"
	"moodlog/internal/log"
	"moodlog/internal/pubsub"
	"moodlog/internal/report"
	"moodlog/internal/tracing"
)

// DefaultCacheTTL bounds how long a memoized report may be served without
// recomputation even when no invalidation fires.
const DefaultCacheTTL = 5 * time.Minute

// Report bundles the statistics snapshot with the coach recommendation built
// from it. Coach is nil when the data gate fails.
type Report struct {
	Stats report.Stats
	Coach *coach.Result
}

// TodayView is the day-level view: the raw slot sessions plus the derived
// insight line and badges.
type TodayView struct {
	Date    domain.Date
	Morning *domain.Session
	Evening *domain.Session
	Insight insight.Daily
}

// Config holds the service's collaborators and knobs.
type Config struct {
	Entries  domain.EntryRepository
	Users    domain.UserRepository
	Flags    *flags.Registry
	Tracer   trace.Tracer
	CacheTTL time.Duration
}

// reportInput is the compute input for the read-through report cache.
type reportInput struct {
	userID string
	mode   report.Mode
	start  domain.Date
	end    domain.Date
}

// Service is the application-level entry point for journaling and reporting.
// Writes flow through it so memoized reports are invalidated exactly when the
// underlying entries change.
type Service struct {
	entries  domain.EntryRepository
	users    domain.UserRepository
	flags    *flags.Registry
	tracer   trace.Tracer
	broker   *pubsub.Broker[pubsub.EntryChange]
	cache    *cachemanager.ReadThroughCache[string, *Report, reportInput]
	cacheTTL time.Duration

	// revision is folded into cache keys; bumping it orphans every
	// memoized report without racing in-flight reads.
	revision atomic.Uint64
}

// NewService wires a report service from its collaborators.
func NewService(cfg Config) *Service {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer("noop")
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	s := &Service{
		entries:  cfg.Entries,
		users:    cfg.Users,
		flags:    cfg.Flags,
		tracer:   tracer,
		broker:   pubsub.NewBroker[pubsub.EntryChange](),
		cacheTTL: ttl,
	}

	manager := cachemanager.NewInMemoryCacheManager[string, *Report](
		"reports",
		cachemanager.DefaultExpiration,
		cachemanager.DefaultCleanupInterval,
	)
	s.cache = cachemanager.NewReadThroughCache(
		manager,
		s.buildReport,
		!cfg.Flags.Enabled(flags.FlagReportCache),
	)
	return s
}

// Subscribe exposes entry change events, e.g. for UI refresh.
func (s *Service) Subscribe(ctx context.Context) <-chan pubsub.Event[pubsub.EntryChange] {
	return s.broker.Subscribe(ctx)
}

// Close shuts down the event broker. The repositories stay open; their
// lifetime belongs to the caller.
func (s *Service) Close() {
	s.broker.Close()
}

// Add validates and stores a session, replacing any previous session for the
// same (date, slot) pair.
func (s *Service) Add(ctx context.Context, userID string, session *domain.Session) error {
	if _, err := s.users.Ensure(userID); err != nil {
		return fmt.Errorf("ensuring user: %w", err)
	}
	if err := s.entries.Upsert(userID, session); err != nil {
		return err
	}
	log.Info(log.CatCLI, "entry upserted", "user", userID, "entry", session.EntryID())
	s.entryChanged(ctx, pubsub.UpsertedEvent, userID, session.EntryID())
	return nil
}

// Get retrieves a session by entry id.
func (s *Service) Get(ctx context.Context, userID, entryID string) (*domain.Session, error) {
	return s.entries.FindByID(userID, entryID)
}

// List retrieves the sessions in an inclusive date range.
func (s *Service) List(ctx context.Context, userID string, start, end domain.Date) ([]*domain.Session, error) {
	return s.entries.ListByRange(userID, start, end)
}

// Delete removes a session by entry id.
func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	if err := s.entries.Delete(userID, entryID); err != nil {
		return err
	}
	log.Info(log.CatCLI, "entry deleted", "user", userID, "entry", entryID)
	s.entryChanged(ctx, pubsub.DeletedEvent, userID, entryID)
	return nil
}

// Report builds (or serves from cache) the gated statistics snapshot and the
// coach recommendation for the window ending at asOf.
func (s *Service) Report(ctx context.Context, userID string, mode report.Mode, asOf domain.Date) (*Report, error) {
	if !mode.IsValid() {
		return nil, fmt.Errorf("invalid report mode %q", mode)
	}
	if !asOf.IsValid() {
		return nil, fmt.Errorf("invalid report date %q", asOf)
	}

	start := asOf.AddDays(-(mode.Days() - 1))
	input := reportInput{userID: userID, mode: mode, start: start, end: asOf}
	key := fmt.Sprintf("%s|%s|%s|%s|r%d", userID, mode, start, asOf, s.revision.Load())

	return s.cache.Get(ctx, key, input, s.cacheTTL)
}

// buildReport is the cache compute function: load the window, build the
// statistics snapshot, run the coach rules.
func (s *Service) buildReport(ctx context.Context, in reportInput) (*Report, error) {
	ctx, span := s.tracer.Start(ctx, tracing.SpanPrefixReport+"build",
		trace.WithAttributes(
			attribute.String(tracing.AttrUserID, in.userID),
			attribute.String(tracing.AttrMode, string(in.mode)),
			attribute.String(tracing.AttrRangeStart, string(in.start)),
			attribute.String(tracing.AttrRangeEnd, string(in.end)),
		))
	defer span.End()

	sessions, err := s.listSpan(ctx, in)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rng := &report.Range{
		Start: in.start,
		End:   in.end,
		Days:  in.mode.Days(),
		Mode:  in.mode,
	}
	stats := report.Build(in.mode, sessions, rng)
	result := coach.Run(stats)

	span.SetAttributes(
		attribute.Bool(tracing.AttrGatePassed, stats.Gate.OK),
		attribute.Int(tracing.AttrSessionCount, len(sessions)),
	)
	if result != nil {
		span.SetAttributes(attribute.String(tracing.AttrCoachTitle, result.Title))
	}
	log.Debug(log.CatReport, "report built",
		"user", in.userID, "mode", in.mode, "sessions", len(sessions), "gate", stats.Gate.OK)

	return &Report{Stats: stats, Coach: result}, nil
}

func (s *Service) listSpan(ctx context.Context, in reportInput) ([]*domain.Session, error) {
	_, span := s.tracer.Start(ctx, tracing.SpanPrefixRepo+"list_by_range")
	defer span.End()
	return s.entries.ListByRange(in.userID, in.start, in.end)
}

// Today builds the day-level view for a date: both slot sessions (either may
// be absent) and the derived daily insight.
func (s *Service) Today(ctx context.Context, userID string, date domain.Date) (*TodayView, error) {
	if !date.IsValid() {
		return nil, fmt.Errorf("invalid date %q", date)
	}

	sessions, err := s.entries.ListByDate(userID, date)
	if err != nil {
		return nil, err
	}

	view := &TodayView{Date: date}
	for _, session := range sessions {
		switch session.Slot {
		case domain.SlotMorning:
			view.Morning = session
		case domain.SlotEvening:
			view.Evening = session
		}
	}
	view.Insight = insight.BuildDaily(view.Morning, view.Evening)

	log.Debug(log.CatInsight, "daily insight built",
		"user", userID, "date", date,
		"morning", view.Morning != nil, "evening", view.Evening != nil)
	return view, nil
}

// Invalidate drops every memoized report. The database watcher calls it when
// another process writes the file.
func (s *Service) Invalidate(ctx context.Context) {
	s.revision.Add(1)
	if err := s.cache.Flush(ctx); err != nil {
		log.ErrorErr(log.CatCache, "report cache flush failed", err)
	}
	s.broker.Publish(pubsub.InvalidatedEvent, pubsub.EntryChange{})
	log.Debug(log.CatCache, "report cache invalidated")
}

// WatchInvalidations consumes a watcher change channel until ctx ends,
// invalidating the report cache on every signal.
func (s *Service) WatchInvalidations(ctx context.Context, changes <-chan struct{}) {
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			log.Debug(log.CatWatcher, "database changed externally")
			s.Invalidate(ctx)
		}
	}
}

func (s *Service) entryChanged(ctx context.Context, event pubsub.EventType, userID, entryID string) {
	s.revision.Add(1)
	if err := s.cache.Flush(ctx); err != nil {
		log.ErrorErr(log.CatCache, "report cache flush failed", err)
	}
	s.broker.Publish(event, pubsub.EntryChange{UserID: userID, EntryID: entryID})
}
