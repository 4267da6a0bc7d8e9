package usecase

import (
	"context"
	"errors"
	"sort"

	"eks-log-analyzer/internal/domain"
)

const (
	// maxStreamCandidates is how many streams are listed before ranking.
	maxStreamCandidates = 50
	// maxSelectedStreams is how many ranked streams a selection returns.
	maxSelectedStreams = 5
)

// PartitionSelector picks the most recently active log streams for one log
// type within a log group.
type PartitionSelector struct {
	logs LogSource
}

func NewPartitionSelector(logs LogSource) (*PartitionSelector, error) {
	if logs == nil {
		return nil, errors.New("usecase: log source must not be nil")
	}
	return &PartitionSelector{logs: logs}, nil
}

// Select lists up to maxStreamCandidates streams whose name starts with
// logType, orders them by last event time descending (streams with no
// recorded events sort last, listing order preserved for ties) and returns
// at most maxSelectedStreams of them.
//
// A missing log group is an ErrorResourceNotFound; a log group that exists
// but has no matching streams is a valid empty result.
func (s *PartitionSelector) Select(ctx context.Context, logGroup, logType string) ([]domain.PartitionDescriptor, error) {
	partitions, err := s.logs.ListPartitions(ctx, logGroup, logType, maxStreamCandidates)
	if err != nil {
		if IsResourceNotFound(err) {
			return nil, newError(ErrorResourceNotFound, "log_group_missing", err)
		}
		return nil, newError(ErrorPartialFetch, "list_partitions", err)
	}

	ranked := make([]domain.PartitionDescriptor, len(partitions))
	copy(ranked, partitions)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].LastEventTime > ranked[j].LastEventTime
	})

	if len(ranked) > maxSelectedStreams {
		ranked = ranked[:maxSelectedStreams]
	}
	return ranked, nil
}
