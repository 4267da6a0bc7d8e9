package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"eks-log-analyzer/internal/domain"
)

func TestSelectOrdersByLastEventTimeDescending(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"api": {
				{Name: "api-old", LastEventTime: 100},
				{Name: "api-new", LastEventTime: 300},
				{Name: "api-mid", LastEventTime: 200},
			},
		},
	}
	selector, err := NewPartitionSelector(logs)
	require.NoError(t, err)

	got, err := selector.Select(context.Background(), "/aws/eks/demo/cluster", "api")
	require.NoError(t, err)
	require.Equal(t, []string{"api-new", "api-mid", "api-old"}, partitionNames(got))
}

func TestSelectInactiveStreamsSortLastAndTiesAreStable(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"audit": {
				{Name: "audit-silent-a"},
				{Name: "audit-tie-1", LastEventTime: 500},
				{Name: "audit-silent-b"},
				{Name: "audit-tie-2", LastEventTime: 500},
			},
		},
	}
	selector, err := NewPartitionSelector(logs)
	require.NoError(t, err)

	got, err := selector.Select(context.Background(), "/aws/eks/demo/cluster", "audit")
	require.NoError(t, err)
	// Ties keep listing order; streams with no activity sort last in
	// listing order too.
	require.Equal(t, []string{"audit-tie-1", "audit-tie-2", "audit-silent-a", "audit-silent-b"}, partitionNames(got))
}

func TestSelectCapsTheSelection(t *testing.T) {
	var partitions []domain.PartitionDescriptor
	for i := 0; i < 12; i++ {
		partitions = append(partitions, domain.PartitionDescriptor{
			Name:          string(rune('a' + i)),
			LastEventTime: int64(100 - i),
		})
	}
	logs := &mockLogSource{partitions: map[string][]domain.PartitionDescriptor{"api": partitions}}
	selector, err := NewPartitionSelector(logs)
	require.NoError(t, err)

	got, err := selector.Select(context.Background(), "/aws/eks/demo/cluster", "api")
	require.NoError(t, err)
	require.Len(t, got, maxSelectedStreams)
	require.Equal(t, "a", got[0].Name)
}

func TestSelectMissingLogGroupIsResourceNotFound(t *testing.T) {
	logs := &mockLogSource{
		listErr: map[string]error{"api": &notFoundErr{what: "log group"}},
	}
	selector, err := NewPartitionSelector(logs)
	require.NoError(t, err)

	_, err = selector.Select(context.Background(), "/aws/eks/demo/cluster", "api")
	require.Error(t, err)
	require.True(t, IsResourceNotFound(err))

	var ue *Error
	require.ErrorAs(t, err, &ue)
	require.Equal(t, ErrorResourceNotFound, ue.Code)
}

func TestSelectEmptyGroupIsAValidEmptyResult(t *testing.T) {
	logs := &mockLogSource{partitions: map[string][]domain.PartitionDescriptor{}}
	selector, err := NewPartitionSelector(logs)
	require.NoError(t, err)

	got, err := selector.Select(context.Background(), "/aws/eks/demo/cluster", "api")
	require.NoError(t, err)
	require.Empty(t, got)
}

func partitionNames(partitions []domain.PartitionDescriptor) []string {
	names := make([]string, len(partitions))
	for i, p := range partitions {
		names[i] = p.Name
	}
	return names
}
