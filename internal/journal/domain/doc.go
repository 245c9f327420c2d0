// Package domain provides the pure domain layer for journal entries with no
// infrastructure dependencies.
//
// It defines the Session value (one mood/energy record for a date and slot),
// the fixed eight-step mood scale with its score and label tables, and the
// repository interfaces the storage layer implements. The domain layer has no
// knowledge of infrastructure concerns (databases, file I/O, etc.).
package domain
