package usecase

import (
	"context"

	"eks-log-analyzer/internal/domain"
)

// LogSource is the minimal log-storage capability the pipeline consumes.
// *cloudwatch.Client satisfies this interface.
type LogSource interface {
	ListPartitions(ctx context.Context, logGroup, prefix string, limit int32) ([]domain.PartitionDescriptor, error)
	FetchRecords(ctx context.Context, logGroup string, streams []string, window domain.TimeWindow, limit int32) ([]domain.LogRecord, error)
}

// ClusterSource is the cluster-metadata capability the pipeline consumes.
// *eks.Client satisfies this interface.
type ClusterSource interface {
	ListClusters(ctx context.Context) ([]string, error)
	EnabledLogTypes(ctx context.Context, cluster string) ([]string, error)
}

// ModelBackend is a hosted language model. *bedrock.Client satisfies this
// interface.
type ModelBackend interface {
	Invoke(ctx context.Context, system, question string, maxTokens int, temperature float64) (string, error)
}

// StatusReporter receives per-type and per-partition progress during
// retrieval. Reports are observational only and never change the outcome.
type StatusReporter interface {
	Statusf(format string, args ...any)
}

// NopReporter discards all status output.
type NopReporter struct{}

func (NopReporter) Statusf(string, ...any) {}

// LogGroupName returns the storage log group holding control-plane logs for
// a cluster. The format is a fixed platform convention.
func LogGroupName(cluster string) string {
	return "/aws/eks/" + cluster + "/cluster"
}
