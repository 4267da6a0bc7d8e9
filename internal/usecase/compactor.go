package usecase

import (
	"fmt"
	"sort"
	"strings"

	"eks-log-analyzer/internal/domain"
)

const (
	// DefaultMaxRenderedRecords bounds how many records the rendered body
	// holds; chosen to keep the context inside the model's token budget.
	DefaultMaxRenderedRecords = 150
	// DefaultMaxMessageChars bounds each rendered message.
	DefaultMaxMessageChars = 500

	noEventsBody     = "No log events found in the specified time range."
	renderTimeLayout = "2006-01-02 15:04:05"
)

// Compact merges retrieved records into the single static context used for
// the whole analysis session, applying the default rendering limits.
func Compact(records []domain.LogRecord, hoursBack int) domain.CompactedContext {
	return CompactWithLimits(records, hoursBack, DefaultMaxRenderedRecords, DefaultMaxMessageChars)
}

// CompactWithLimits is Compact with explicit rendering limits.
//
// Header statistics always cover the full input set; the limits only bound
// what the body renders. Records are ordered most recent first; the sort is
// stable, so records sharing a timestamp keep their retrieval order. This is
// a pure formatting transform: the input is never mutated or re-fetched.
func CompactWithLimits(records []domain.LogRecord, hoursBack, maxRenderedRecords, maxMessageChars int) domain.CompactedContext {
	if len(records) == 0 {
		return domain.CompactedContext{
			Stats:     domain.ContextStats{TotalEvents: 0, PerType: map[string]int{}},
			Body:      noEventsBody,
			HoursBack: hoursBack,
		}
	}

	stats := buildStats(records)

	ordered := make([]domain.LogRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp > ordered[j].Timestamp
	})
	if len(ordered) > maxRenderedRecords {
		ordered = ordered[:maxRenderedRecords]
	}

	var b strings.Builder
	b.WriteString("=== EKS CLUSTER LOGS ANALYSIS ===\n")
	fmt.Fprintf(&b, "Time Range: Last %d hours\n", hoursBack)
	fmt.Fprintf(&b, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintf(&b, "Log Types: %s\n", formatTypeCounts(stats))
	fmt.Fprintf(&b, "\n=== DETAILED LOG EVENTS (Most Recent %d) ===\n\n", len(ordered))

	for i, rec := range ordered {
		fmt.Fprintf(&b, "%d. [%s] [%s]\n", i+1,
			rec.Time().UTC().Format(renderTimeLayout),
			strings.ToUpper(rec.LogType))
		fmt.Fprintf(&b, "   %s\n\n", truncateMessage(rec.Message, maxMessageChars))
	}

	return domain.CompactedContext{
		Stats:     stats,
		Body:      b.String(),
		HoursBack: hoursBack,
	}
}

func buildStats(records []domain.LogRecord) domain.ContextStats {
	perType := make(map[string]int, 4)
	var order []string
	for _, rec := range records {
		logType := rec.LogType
		if logType == "" {
			logType = "unknown"
		}
		if _, seen := perType[logType]; !seen {
			order = append(order, logType)
		}
		perType[logType]++
	}
	return domain.ContextStats{
		TotalEvents: len(records),
		PerType:     perType,
		TypeOrder:   order,
	}
}

func formatTypeCounts(stats domain.ContextStats) string {
	parts := make([]string, 0, len(stats.TypeOrder))
	for _, logType := range stats.TypeOrder {
		parts = append(parts, fmt.Sprintf("%s(%d)", logType, stats.PerType[logType]))
	}
	return strings.Join(parts, ", ")
}

func truncateMessage(msg string, maxChars int) string {
	msg = strings.TrimSpace(msg)
	// Cap counts characters, not bytes, so multi-byte messages are never
	// cut mid-rune.
	runes := []rune(msg)
	if len(runes) <= maxChars {
		return msg
	}
	return string(runes[:maxChars]) + "..."
}
