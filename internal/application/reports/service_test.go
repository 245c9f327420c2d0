package reports

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"moodlog/internal/flags"
	"moodlog/internal/infrastructure/sqlite"
	"moodlog/internal/journal/domain"
	"moodlog/internal/pubsub"
	"moodlog/internal/report"
)

func setupService(t *testing.T, flagOverrides map[string]bool) *Service {
	t.Helper()
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "moodlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(Config{
		Entries: db.EntryRepository(),
		Users:   db.UserRepository(),
		Flags:   flags.New(flagOverrides),
	})
	t.Cleanup(svc.Close)
	return svc
}

func session(date domain.Date, slot domain.Slot, mood domain.Mood, energy int, topics ...string) *domain.Session {
	return &domain.Session{Date: date, Slot: slot, Mood: mood, Energy: energy, Topics: topics}
}

// seedRecoveryWindow inserts four complete days ending at asOf where evening
// energy beats morning energy, enough to pass the 7d gate.
func seedRecoveryWindow(t *testing.T, svc *Service, asOf domain.Date) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		date := asOf.AddDays(-i)
		require.NoError(t, svc.Add(ctx, "user-1", session(date, domain.SlotMorning, domain.MoodSad, 2, "work")))
		require.NoError(t, svc.Add(ctx, "user-1", session(date, domain.SlotEvening, domain.MoodContent, 4, "exercise")))
	}
}

func TestService_AddGetDelete(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	s := session("2026-01-07", domain.SlotMorning, domain.MoodCalm, 3, "work")
	require.NoError(t, svc.Add(ctx, "user-1", s))

	found, err := svc.Get(ctx, "user-1", "2026-01-07_morning")
	require.NoError(t, err)
	require.Equal(t, domain.MoodCalm, found.Mood)

	require.NoError(t, svc.Delete(ctx, "user-1", "2026-01-07_morning"))

	_, err = svc.Get(ctx, "user-1", "2026-01-07_morning")
	var notFound *domain.EntryNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestService_Add_ValidatesSession(t *testing.T) {
	svc := setupService(t, nil)

	bad := session("2026-01-07", domain.SlotMorning, domain.MoodCalm, 9)
	require.Error(t, svc.Add(context.Background(), "user-1", bad))
}

func TestService_Add_PublishesEvent(t *testing.T) {
	svc := setupService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := svc.Subscribe(ctx)

	require.NoError(t, svc.Add(ctx, "user-1", session("2026-01-07", domain.SlotMorning, domain.MoodCalm, 3)))

	select {
	case evt := <-events:
		require.Equal(t, pubsub.UpsertedEvent, evt.Type)
		require.Equal(t, "user-1", evt.Payload.UserID)
		require.Equal(t, "2026-01-07_morning", evt.Payload.EntryID)
	case <-time.After(time.Second):
		t.Fatal("expected upsert event")
	}
}

func TestService_Report_GateFailsOnSparseData(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "user-1", session("2026-01-07", domain.SlotMorning, domain.MoodCalm, 3)))

	rep, err := svc.Report(ctx, "user-1", report.Mode7d, "2026-01-07")
	require.NoError(t, err)
	require.False(t, rep.Stats.Gate.OK, "one session cannot pass the gate")
	require.Nil(t, rep.Coach, "no recommendation without sufficient data")
	require.Equal(t, 1, rep.Stats.Volume.TotalSessions, "statistics are still computed")
}

func TestService_Report_RecoveryWindow(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()
	asOf := domain.Date("2026-01-07")

	seedRecoveryWindow(t, svc, asOf)

	rep, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)
	require.True(t, rep.Stats.Gate.OK)
	require.NotNil(t, rep.Coach, "gate passed, catch-all guarantees a recommendation")

	require.Equal(t, 8, rep.Stats.Volume.TotalSessions)
	require.Equal(t, 4, rep.Stats.Volume.CompleteDays)
	require.NotNil(t, rep.Stats.Energy.DeltaType)
	require.Equal(t, report.DeltaRecovery, *rep.Stats.Energy.DeltaType)

	require.Equal(t, asOf.AddDays(-6), rep.Stats.Range.Start, "7d window is inclusive of asOf")
	require.Equal(t, asOf, rep.Stats.Range.End)
}

func TestService_Report_InvalidInput(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	_, err := svc.Report(ctx, "user-1", "90d", "2026-01-07")
	require.Error(t, err)

	_, err = svc.Report(ctx, "user-1", report.Mode7d, "last tuesday")
	require.Error(t, err)
}

func TestService_Report_CachesUntilWrite(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()
	asOf := domain.Date("2026-01-07")

	seedRecoveryWindow(t, svc, asOf)

	first, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)
	second, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)
	require.Same(t, first, second, "unchanged data is served from cache")

	// A write must orphan the memoized report
	require.NoError(t, svc.Add(ctx, "user-1", session(asOf.AddDays(-5), domain.SlotMorning, domain.MoodGood, 4)))

	third, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)
	require.NotSame(t, first, third, "write invalidates the cache")
	require.Equal(t, 9, third.Stats.Volume.TotalSessions)
}

func TestService_Report_CacheDisabledByFlag(t *testing.T) {
	svc := setupService(t, map[string]bool{flags.FlagReportCache: false})
	ctx := context.Background()
	asOf := domain.Date("2026-01-07")

	seedRecoveryWindow(t, svc, asOf)

	first, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)
	second, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)
	require.NotSame(t, first, second, "flag off means every request recomputes")
}

func TestService_Invalidate_DropsCache(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()
	asOf := domain.Date("2026-01-07")

	seedRecoveryWindow(t, svc, asOf)

	first, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)

	svc.Invalidate(ctx)

	second, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)
	require.NotSame(t, first, second)
}

func TestService_WatchInvalidations(t *testing.T) {
	svc := setupService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	asOf := domain.Date("2026-01-07")

	seedRecoveryWindow(t, svc, asOf)

	first, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)

	changes := make(chan struct{}, 1)
	done := make(chan struct{})
	go func() {
		svc.WatchInvalidations(ctx, changes)
		close(done)
	}()

	events := svc.Subscribe(ctx)
	changes <- struct{}{}

	select {
	case evt := <-events:
		require.Equal(t, pubsub.InvalidatedEvent, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("expected invalidation event")
	}

	second, err := svc.Report(ctx, "user-1", report.Mode7d, asOf)
	require.NoError(t, err)
	require.NotSame(t, first, second)

	close(changes)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch loop should exit when channel closes")
	}
}

func TestService_Report_ExternalWriteVisibleAfterInvalidation(t *testing.T) {
	db, err := sqlite.NewDB(filepath.Join(t.TempDir(), "moodlog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(Config{
		Entries: db.EntryRepository(),
		Users:   db.UserRepository(),
		Flags:   flags.New(nil),
	})
	t.Cleanup(svc.Close)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, svc.Add(ctx, "user-1", session("2026-01-07", domain.SlotMorning, domain.MoodCalm, 3)))

	first, err := svc.Report(ctx, "user-1", report.Mode7d, "2026-01-07")
	require.NoError(t, err)
	require.Equal(t, 1, first.Stats.Volume.TotalSessions)

	// Another process writes the same database file. The service sees no
	// write of its own, so the memoized report stays valid.
	external := session("2026-01-07", domain.SlotEvening, domain.MoodGood, 4)
	require.NoError(t, db.EntryRepository().Upsert("user-1", external))

	stale, err := svc.Report(ctx, "user-1", report.Mode7d, "2026-01-07")
	require.NoError(t, err)
	require.Equal(t, 1, stale.Stats.Volume.TotalSessions, "memoized snapshot predates the write")

	// The watcher path: the change signal flows through WatchInvalidations,
	// and a consumer that waits for InvalidatedEvent before reading is
	// guaranteed the flush already happened.
	changes := make(chan struct{}, 1)
	go svc.WatchInvalidations(ctx, changes)

	events := svc.Subscribe(ctx)
	changes <- struct{}{}

	select {
	case evt := <-events:
		require.Equal(t, pubsub.InvalidatedEvent, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("expected invalidation event")
	}

	fresh, err := svc.Report(ctx, "user-1", report.Mode7d, "2026-01-07")
	require.NoError(t, err)
	require.Equal(t, 2, fresh.Stats.Volume.TotalSessions, "read after invalidation includes the external write")
}

func TestService_Today(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "user-1", session("2026-01-07", domain.SlotMorning, domain.MoodCalm, 2, "work")))
	require.NoError(t, svc.Add(ctx, "user-1", session("2026-01-07", domain.SlotEvening, domain.MoodGood, 4, "work")))

	view, err := svc.Today(ctx, "user-1", "2026-01-07")
	require.NoError(t, err)
	require.NotNil(t, view.Morning)
	require.NotNil(t, view.Evening)
	require.Equal(t, "아침보다 저녁 에너지가 확실히 높아졌어. 회복한 날이다.", view.Insight.Line)
}

func TestService_Today_Empty(t *testing.T) {
	svc := setupService(t, nil)

	view, err := svc.Today(context.Background(), "user-1", "2026-01-07")
	require.NoError(t, err)
	require.Nil(t, view.Morning)
	require.Nil(t, view.Evening)
	require.Len(t, view.Insight.Badges, 1)
	require.Equal(t, "no_record", view.Insight.Badges[0].Key)
}

func TestService_Today_InvalidDate(t *testing.T) {
	svc := setupService(t, nil)

	_, err := svc.Today(context.Background(), "user-1", "07-01-2026")
	require.Error(t, err)
}

func TestService_List(t *testing.T) {
	svc := setupService(t, nil)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "user-1", session("2026-01-06", domain.SlotMorning, domain.MoodCalm, 3)))
	require.NoError(t, svc.Add(ctx, "user-1", session("2026-01-07", domain.SlotMorning, domain.MoodCalm, 3)))

	sessions, err := svc.List(ctx, "user-1", "2026-01-06", "2026-01-07")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
}
