package usecase

import (
	"context"
	"errors"

	"eks-log-analyzer/internal/domain"
)

// maxStreamsPerType bounds how many selected streams are actually read for
// each log type.
const maxStreamsPerType = 3

// defaultLogTypes is used when the cluster's logging configuration reports
// no enabled types (or cannot be read). Fixed policy pair.
var defaultLogTypes = []string{"api", "audit"}

// Retriever pulls windowed log records for a cluster across one or more log
// types, splitting the record budget evenly across types and isolating every
// per-partition failure.
type Retriever struct {
	logs     LogSource
	clusters ClusterSource
	selector *PartitionSelector
	report   StatusReporter
}

func NewRetriever(logs LogSource, clusters ClusterSource, report StatusReporter) (*Retriever, error) {
	if logs == nil {
		return nil, errors.New("usecase: log source must not be nil")
	}
	if clusters == nil {
		return nil, errors.New("usecase: cluster source must not be nil")
	}
	if report == nil {
		report = NopReporter{}
	}
	selector, err := NewPartitionSelector(logs)
	if err != nil {
		return nil, err
	}
	return &Retriever{
		logs:     logs,
		clusters: clusters,
		selector: selector,
		report:   report,
	}, nil
}

// Retrieve fetches every record inside window for the given log types, each
// per-partition fetch capped at budget.MaxTotalRecords / len(logTypes).
//
// An empty logTypes set is resolved against the cluster's logging
// configuration, falling back to defaultLogTypes. A failing partition or a
// missing log group for one type is reported and skipped; it never aborts
// retrieval for the remaining partitions or types. The aggregate result may
// exceed the budget since each type and stream is capped independently;
// final bounding happens during compaction.
func (r *Retriever) Retrieve(ctx context.Context, cluster string, window domain.TimeWindow, logTypes []string, budget domain.RetrievalBudget) ([]domain.LogRecord, error) {
	logTypes = r.resolveLogTypes(ctx, cluster, logTypes)
	if len(logTypes) == 0 {
		return nil, nil
	}

	perFetchLimit := budget.PerTypeLimit(len(logTypes))
	logGroup := LogGroupName(cluster)

	var all []domain.LogRecord
	for _, logType := range logTypes {
		r.report.Statusf("Fetching %s logs...", logType)

		streams, err := r.selector.Select(ctx, logGroup, logType)
		if err != nil {
			if IsResourceNotFound(err) {
				r.report.Statusf("Log group not found: %s", logGroup)
			} else {
				r.report.Statusf("Error getting log streams for %s: %v", logType, err)
			}
			continue
		}
		if len(streams) == 0 {
			r.report.Statusf("No log streams found for %s", logType)
			continue
		}

		if len(streams) > maxStreamsPerType {
			streams = streams[:maxStreamsPerType]
		}
		for _, stream := range streams {
			records, err := r.logs.FetchRecords(ctx, logGroup, []string{stream.Name}, window, int32(perFetchLimit))
			if err != nil {
				r.report.Statusf("Error fetching from stream %s: %v", stream.Name, err)
				continue
			}
			for i := range records {
				records[i].LogType = logType
				if records[i].Stream == "" {
					records[i].Stream = stream.Name
				}
			}
			all = append(all, records...)
			r.report.Statusf("Retrieved %d events from %s", len(records), stream.Name)
		}
	}
	return all, nil
}

// EnabledLogTypes reports which control-plane log types the cluster has
// enabled. Exposed so callers can warn before retrieval when logging is off.
func (r *Retriever) EnabledLogTypes(ctx context.Context, cluster string) ([]string, error) {
	return r.clusters.EnabledLogTypes(ctx, cluster)
}

func (r *Retriever) resolveLogTypes(ctx context.Context, cluster string, logTypes []string) []string {
	if len(logTypes) > 0 {
		return logTypes
	}
	enabled, err := r.clusters.EnabledLogTypes(ctx, cluster)
	if err != nil {
		r.report.Statusf("Error getting logging config: %v", err)
	}
	if len(enabled) == 0 {
		return defaultLogTypes
	}
	return enabled
}
