package tracing

// Span attribute keys. These define the semantic conventions for span
// attributes emitted by the report pipeline.
const (
	// Report attributes
	AttrUserID       = "report.user_id"
	AttrMode         = "report.mode"
	AttrRangeStart   = "report.range.start"
	AttrRangeEnd     = "report.range.end"
	AttrGatePassed   = "report.gate.passed"
	AttrSessionCount = "report.sessions"
	AttrCacheHit     = "report.cache.hit"

	// Coach attributes
	AttrCoachTitle = "coach.title"

	// Storage attributes
	AttrDBPath = "db.path"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span name prefixes for consistent naming.
const (
	SpanPrefixReport = "report."
	SpanPrefixRepo   = "repo."
)
