package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"moodlog/internal/journal/domain"
)

// setupTestDB creates a new DB for testing, closed when the test completes.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "moodlog.db")
	db, err := NewDB(dbPath)
	require.NoError(t, err, "Failed to create test database")
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestRepo(t *testing.T) domain.EntryRepository {
	t.Helper()
	db := setupTestDB(t)
	// Entries reference users; create the owning profile up front.
	_, err := db.UserRepository().Ensure("user-1")
	require.NoError(t, err)
	return db.EntryRepository()
}

func testSession(date domain.Date, slot domain.Slot) *domain.Session {
	return &domain.Session{
		Date:   date,
		Slot:   slot,
		Mood:   domain.MoodCalm,
		Energy: 3,
		Topics: []string{"work"},
		Note:   "a note",
	}
}

func TestEntryRepository_Upsert_Insert(t *testing.T) {
	repo := setupTestRepo(t)

	session := testSession("2026-01-07", domain.SlotMorning)
	err := repo.Upsert("user-1", session)
	require.NoError(t, err, "Upsert should succeed for new entry")

	found, err := repo.FindByID("user-1", "2026-01-07_morning")
	require.NoError(t, err, "FindByID should succeed")
	require.Equal(t, session.Date, found.Date)
	require.Equal(t, session.Slot, found.Slot)
	require.Equal(t, session.Mood, found.Mood)
	require.Equal(t, session.Energy, found.Energy)
	require.Equal(t, session.Topics, found.Topics)
	require.Equal(t, session.Note, found.Note)
	require.False(t, found.CreatedAt.IsZero(), "CreatedAt should be stamped on insert")
}

func TestEntryRepository_Upsert_ReplacesSameSlot(t *testing.T) {
	repo := setupTestRepo(t)

	first := testSession("2026-01-07", domain.SlotMorning)
	require.NoError(t, repo.Upsert("user-1", first))

	created, err := repo.FindByID("user-1", "2026-01-07_morning")
	require.NoError(t, err)
	originalCreatedAt := created.CreatedAt

	// Sleep briefly to ensure updatedAt changes
	time.Sleep(1100 * time.Millisecond)

	second := testSession("2026-01-07", domain.SlotMorning)
	second.Mood = domain.MoodVeryGood
	second.Energy = 5
	second.Topics = []string{"exercise"}
	require.NoError(t, repo.Upsert("user-1", second))

	found, err := repo.FindByID("user-1", "2026-01-07_morning")
	require.NoError(t, err)
	require.Equal(t, domain.MoodVeryGood, found.Mood, "Mood should be replaced")
	require.Equal(t, 5, found.Energy, "Energy should be replaced")
	require.Equal(t, []string{"exercise"}, found.Topics, "Topics should be replaced")
	require.Equal(t, originalCreatedAt.Unix(), found.CreatedAt.Unix(), "CreatedAt should not change on replace")
	require.Greater(t, found.UpdatedAt.Unix(), originalCreatedAt.Unix(), "UpdatedAt should be refreshed")

	// Still exactly one row for the slot
	all, err := repo.ListByDate("user-1", "2026-01-07")
	require.NoError(t, err)
	require.Len(t, all, 1, "Upsert must not create duplicate rows per slot")
}

func TestEntryRepository_Upsert_RejectsInvalid(t *testing.T) {
	repo := setupTestRepo(t)

	bad := testSession("2026-01-07", domain.SlotMorning)
	bad.Energy = 9
	err := repo.Upsert("user-1", bad)
	require.Error(t, err, "Upsert should reject out-of-range energy")
}

func TestEntryRepository_FindByID_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByID("user-1", "2026-01-07_morning")
	require.Error(t, err)

	var notFound *domain.EntryNotFoundError
	require.True(t, errors.As(err, &notFound), "error should be EntryNotFoundError")
	require.Equal(t, "user-1", notFound.UserID)
	require.Equal(t, "2026-01-07_morning", notFound.EntryID)
}

func TestEntryRepository_FindByID_MalformedID(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.FindByID("user-1", "not-an-entry-id")
	require.Error(t, err, "malformed entry id should be rejected")
}

func TestEntryRepository_ListByRange_Ordering(t *testing.T) {
	repo := setupTestRepo(t)

	// Insert out of order
	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-08", domain.SlotEvening)))
	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-07", domain.SlotEvening)))
	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-08", domain.SlotMorning)))
	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-07", domain.SlotMorning)))

	sessions, err := repo.ListByRange("user-1", "2026-01-07", "2026-01-08")
	require.NoError(t, err)
	require.Len(t, sessions, 4)

	require.Equal(t, "2026-01-07_morning", sessions[0].EntryID())
	require.Equal(t, "2026-01-07_evening", sessions[1].EntryID())
	require.Equal(t, "2026-01-08_morning", sessions[2].EntryID())
	require.Equal(t, "2026-01-08_evening", sessions[3].EntryID())
}

func TestEntryRepository_ListByRange_BoundsInclusive(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-06", domain.SlotMorning)))
	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-07", domain.SlotMorning)))
	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-08", domain.SlotMorning)))
	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-09", domain.SlotMorning)))

	sessions, err := repo.ListByRange("user-1", "2026-01-07", "2026-01-08")
	require.NoError(t, err)
	require.Len(t, sessions, 2, "both range bounds are inclusive")
	require.Equal(t, domain.Date("2026-01-07"), sessions[0].Date)
	require.Equal(t, domain.Date("2026-01-08"), sessions[1].Date)
}

func TestEntryRepository_ListByRange_IsolatesUsers(t *testing.T) {
	db := setupTestDB(t)
	repo := db.EntryRepository()
	_, err := db.UserRepository().Ensure("user-1")
	require.NoError(t, err)
	_, err = db.UserRepository().Ensure("user-2")
	require.NoError(t, err)

	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-07", domain.SlotMorning)))
	require.NoError(t, repo.Upsert("user-2", testSession("2026-01-07", domain.SlotEvening)))

	sessions, err := repo.ListByRange("user-1", "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.Equal(t, domain.SlotMorning, sessions[0].Slot)
}

func TestEntryRepository_ListByDate(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-07", domain.SlotMorning)))
	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-07", domain.SlotEvening)))
	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-08", domain.SlotMorning)))

	sessions, err := repo.ListByDate("user-1", "2026-01-07")
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	require.Equal(t, domain.SlotMorning, sessions[0].Slot)
	require.Equal(t, domain.SlotEvening, sessions[1].Slot)
}

func TestEntryRepository_Delete(t *testing.T) {
	repo := setupTestRepo(t)

	require.NoError(t, repo.Upsert("user-1", testSession("2026-01-07", domain.SlotMorning)))

	err := repo.Delete("user-1", "2026-01-07_morning")
	require.NoError(t, err, "Delete should succeed")

	_, err = repo.FindByID("user-1", "2026-01-07_morning")
	var notFound *domain.EntryNotFoundError
	require.True(t, errors.As(err, &notFound), "entry should be gone after Delete")
}

func TestEntryRepository_Delete_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	err := repo.Delete("user-1", "2026-01-07_morning")
	require.Error(t, err)

	var notFound *domain.EntryNotFoundError
	require.True(t, errors.As(err, &notFound), "error should be EntryNotFoundError")
}

func TestEntryRepository_LegacyTopicRoundtrip(t *testing.T) {
	repo := setupTestRepo(t)

	legacy := &domain.Session{
		Date:   "2026-01-07",
		Slot:   domain.SlotEvening,
		Mood:   domain.MoodSad,
		Energy: 2,
		Topic:  "sleep",
	}
	require.NoError(t, repo.Upsert("user-1", legacy))

	found, err := repo.FindByID("user-1", "2026-01-07_evening")
	require.NoError(t, err)
	require.Empty(t, found.Topics, "Topics stays empty for legacy entries")
	require.Equal(t, "sleep", found.Topic, "legacy topic field survives the roundtrip")
	require.Equal(t, []string{"sleep"}, found.NormalizedTopics())
}

// TestEntryRepository_UpsertRoundtrip_Property verifies that any valid session
// survives a store/load cycle unchanged.
func TestEntryRepository_UpsertRoundtrip_Property(t *testing.T) {
	repo := setupTestRepo(t)

	rapid.Check(t, func(rt *rapid.T) {
		day := rapid.IntRange(1, 28).Draw(rt, "day")
		date := domain.Date(time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"))
		slot := rapid.SampledFrom([]domain.Slot{domain.SlotMorning, domain.SlotEvening}).Draw(rt, "slot")
		mood := rapid.SampledFrom(domain.MoodOrder).Draw(rt, "mood")
		energy := rapid.IntRange(domain.EnergyMin, domain.EnergyMax).Draw(rt, "energy")
		topics := rapid.SliceOfN(rapid.SampledFrom([]string{"work", "sleep", "exercise", "family"}), 0, 3).Draw(rt, "topics")

		session := &domain.Session{
			Date:   date,
			Slot:   slot,
			Mood:   mood,
			Energy: energy,
			Topics: topics,
		}
		require.NoError(rt, repo.Upsert("user-1", session))

		found, err := repo.FindByID("user-1", session.EntryID())
		require.NoError(rt, err)
		require.Equal(rt, mood, found.Mood)
		require.Equal(rt, energy, found.Energy)
		if len(topics) > 0 {
			require.Equal(rt, topics, found.Topics)
		} else {
			require.Empty(rt, found.Topics)
		}
	})
}
