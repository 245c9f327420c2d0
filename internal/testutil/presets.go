package testutil

// WithRecoveryWeek adds four complete days where evening mood is higher than
// morning mood, enough volume to pass the 7-day report gate.
//
// Day layout, anchored at the given start date (must be the 1st..25th so
// day arithmetic stays inside the month):
//
//	day+0: sad(2) -> content(6)
//	day+1: anxious(3) -> good(7)
//	day+2: calm(5) -> very_good(8)
//	day+3: angry(4) -> content(6)
func (b *Builder) WithRecoveryWeek(dates [4]string) *Builder {
	return b.
		WithEntry(dates[0], "morning", Mood("sad"), Energy(2), Topics("work")).
		WithEntry(dates[0], "evening", Mood("content"), Energy(3), Topics("exercise")).
		WithEntry(dates[1], "morning", Mood("anxious"), Energy(2), Topics("work")).
		WithEntry(dates[1], "evening", Mood("good"), Energy(4), Topics("family")).
		WithEntry(dates[2], "morning", Mood("calm"), Energy(3), Topics("work")).
		WithEntry(dates[2], "evening", Mood("very_good"), Energy(5), Topics("exercise")).
		WithEntry(dates[3], "morning", Mood("angry"), Energy(2), Topics("sleep")).
		WithEntry(dates[3], "evening", Mood("content"), Energy(4), Topics("work"))
}

// WithSparseWeek adds two morning-only entries, below every gate threshold.
func (b *Builder) WithSparseWeek(dates [2]string) *Builder {
	return b.
		WithEntry(dates[0], "morning", Mood("calm"), Energy(3)).
		WithEntry(dates[1], "morning", Mood("good"), Energy(4))
}

// WithLegacyEntry adds a single pre-migration entry carrying only the old
// single-topic column.
func (b *Builder) WithLegacyEntry(date, slot, topic string) *Builder {
	return b.WithEntry(date, slot, Mood("sad"), Energy(2), LegacyTopic(topic))
}
