package domain

import "time"

// LogRecord is a single control-plane log event pulled from log storage.
// Timestamp is milliseconds since epoch, matching the wire format of the
// storage backend. Records are immutable once retrieved.
type LogRecord struct {
	Timestamp int64
	Message   string
	LogType   string
	Stream    string
}

// Time returns the record timestamp as a time.Time.
func (r LogRecord) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// TimeWindow is a half-open-inclusive [Start, End] range in milliseconds
// since epoch. Start is always before End.
type TimeWindow struct {
	Start int64
	End   int64
}

// WindowHoursBack derives the retrieval window ending at now and reaching
// hoursBack hours into the past.
func WindowHoursBack(now time.Time, hoursBack int) TimeWindow {
	end := now.UTC()
	start := end.Add(-time.Duration(hoursBack) * time.Hour)
	return TimeWindow{
		Start: start.UnixMilli(),
		End:   end.UnixMilli(),
	}
}

// RetrievalBudget bounds how many records a single retrieval run may request
// across all log types.
type RetrievalBudget struct {
	MaxTotalRecords int
}

// PerTypeLimit splits the budget evenly across typeCount log types using
// floor division. A zero result is a legal cap and simply yields no records.
func (b RetrievalBudget) PerTypeLimit(typeCount int) int {
	if typeCount <= 0 {
		return 0
	}
	return b.MaxTotalRecords / typeCount
}

// PartitionDescriptor names one log stream and its most recent activity.
// LastEventTime is zero when the stream has no recorded events. Descriptors
// are produced fresh per retrieval and never cached.
type PartitionDescriptor struct {
	Name          string
	LastEventTime int64
}

// ContextStats summarizes the full retrieved record set, independent of how
// many records end up rendered.
type ContextStats struct {
	TotalEvents int
	PerType     map[string]int
	// TypeOrder preserves first-seen order of log types for rendering.
	TypeOrder []string
}

// CompactedContext is the single formatted text block built once per
// analysis session. It is read-only after construction and reused verbatim
// for every question in the session.
type CompactedContext struct {
	Stats     ContextStats
	Body      string
	HoursBack int
}
