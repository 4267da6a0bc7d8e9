package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"eks-log-analyzer/internal/domain"
)

func testWindow() domain.TimeWindow {
	return domain.TimeWindow{Start: 1_000, End: 2_000}
}

func newTestRetriever(t *testing.T, logs *mockLogSource, clusters *mockClusterSource) *Retriever {
	t.Helper()
	r, err := NewRetriever(logs, clusters, &recordingReporter{})
	require.NoError(t, err)
	return r
}

func TestRetrieveSplitsBudgetAcrossTypes(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"api":   {{Name: "api-0", LastEventTime: 10}},
			"audit": {{Name: "audit-0", LastEventTime: 10}},
		},
		records: map[string][]domain.LogRecord{
			"api-0":   {{Timestamp: 1_500, Message: "api event"}},
			"audit-0": {{Timestamp: 1_600, Message: "audit event"}},
		},
	}
	r := newTestRetriever(t, logs, &mockClusterSource{})

	got, err := r.Retrieve(context.Background(), "demo", testWindow(),
		[]string{"api", "audit"}, domain.RetrievalBudget{MaxTotalRecords: 1000})
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Budget 1000 over 2 types: every per-partition fetch capped at 500.
	require.NotEmpty(t, logs.fetchCalls)
	for _, call := range logs.fetchCalls {
		require.Equal(t, int32(500), call.limit)
		require.Equal(t, "/aws/eks/demo/cluster", call.group)
		require.Equal(t, testWindow(), call.window)
	}
}

func TestRetrieveBudgetUsesFloorDivision(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"api":           {{Name: "api-0"}},
			"audit":         {{Name: "audit-0"}},
			"authenticator": {{Name: "authenticator-0"}},
		},
	}
	r := newTestRetriever(t, logs, &mockClusterSource{})

	_, err := r.Retrieve(context.Background(), "demo", testWindow(),
		[]string{"api", "audit", "authenticator"}, domain.RetrievalBudget{MaxTotalRecords: 100})
	require.NoError(t, err)
	for _, call := range logs.fetchCalls {
		require.Equal(t, int32(33), call.limit)
	}
}

func TestRetrieveStampsTypeAndStream(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"api": {{Name: "api-0", LastEventTime: 10}},
		},
		records: map[string][]domain.LogRecord{
			"api-0": {
				{Timestamp: 1_100, Message: "one"},
				{Timestamp: 1_200, Message: "two", Stream: "api-0"},
			},
		},
	}
	r := newTestRetriever(t, logs, &mockClusterSource{})

	got, err := r.Retrieve(context.Background(), "demo", testWindow(),
		[]string{"api"}, domain.RetrievalBudget{MaxTotalRecords: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, rec := range got {
		require.Equal(t, "api", rec.LogType)
		require.Equal(t, "api-0", rec.Stream)
	}
}

func TestRetrieveIsolatesPartitionFailures(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"api": {
				{Name: "api-bad", LastEventTime: 20},
				{Name: "api-good", LastEventTime: 10},
			},
		},
		records: map[string][]domain.LogRecord{
			"api-good": {
				{Timestamp: 1_100, Message: "survived"},
				{Timestamp: 1_200, Message: "also survived"},
			},
		},
		fetchErr: map[string]error{"api-bad": errors.New("throttled")},
	}
	reporter := &recordingReporter{}
	r, err := NewRetriever(logs, &mockClusterSource{}, reporter)
	require.NoError(t, err)

	got, err := r.Retrieve(context.Background(), "demo", testWindow(),
		[]string{"api"}, domain.RetrievalBudget{MaxTotalRecords: 100})
	require.NoError(t, err)

	// The failing stream contributes nothing; the healthy one contributes
	// everything it has.
	require.Len(t, got, 2)
	for _, rec := range got {
		require.Equal(t, "api-good", rec.Stream)
	}
	require.Contains(t, reporter.lines[1], "api-bad")
}

func TestRetrieveMissingLogGroupForOneTypeYieldsZeroForThatType(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"audit": {{Name: "audit-0", LastEventTime: 10}},
		},
		listErr: map[string]error{"api": &notFoundErr{what: "log group"}},
		records: map[string][]domain.LogRecord{
			"audit-0": {{Timestamp: 1_500, Message: "kept"}},
		},
	}
	r := newTestRetriever(t, logs, &mockClusterSource{})

	got, err := r.Retrieve(context.Background(), "demo", testWindow(),
		[]string{"api", "audit"}, domain.RetrievalBudget{MaxTotalRecords: 100})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "audit", got[0].LogType)
}

func TestRetrieveReadsAtMostThreeStreamsPerType(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"api": {
				{Name: "api-1", LastEventTime: 50},
				{Name: "api-2", LastEventTime: 40},
				{Name: "api-3", LastEventTime: 30},
				{Name: "api-4", LastEventTime: 20},
				{Name: "api-5", LastEventTime: 10},
			},
		},
	}
	r := newTestRetriever(t, logs, &mockClusterSource{})

	_, err := r.Retrieve(context.Background(), "demo", testWindow(),
		[]string{"api"}, domain.RetrievalBudget{MaxTotalRecords: 100})
	require.NoError(t, err)
	require.Len(t, logs.fetchCalls, 3)
	require.Equal(t, "api-1", logs.fetchCalls[0].stream)
	require.Equal(t, "api-3", logs.fetchCalls[2].stream)
}

func TestRetrieveResolvesEnabledTypesWhenNoneGiven(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"scheduler": {{Name: "scheduler-0", LastEventTime: 10}},
		},
		records: map[string][]domain.LogRecord{
			"scheduler-0": {{Timestamp: 1_500, Message: "scheduled"}},
		},
	}
	clusters := &mockClusterSource{enabled: []string{"scheduler"}}
	r := newTestRetriever(t, logs, clusters)

	got, err := r.Retrieve(context.Background(), "demo", testWindow(),
		nil, domain.RetrievalBudget{MaxTotalRecords: 100})
	require.NoError(t, err)
	require.Equal(t, 1, clusters.enabledCalls)
	require.Len(t, got, 1)
	require.Equal(t, "scheduler", got[0].LogType)
}

func TestRetrieveDefaultsToAPIAndAuditWhenNothingEnabled(t *testing.T) {
	logs := &mockLogSource{}
	clusters := &mockClusterSource{}
	r := newTestRetriever(t, logs, clusters)

	_, err := r.Retrieve(context.Background(), "demo", testWindow(),
		nil, domain.RetrievalBudget{MaxTotalRecords: 100})
	require.NoError(t, err)
	// One stream listing per defaulted type.
	require.Equal(t, 2, logs.listCalls)
}

func TestRetrieveExplicitTypesSkipLoggingConfigLookup(t *testing.T) {
	logs := &mockLogSource{}
	clusters := &mockClusterSource{}
	r := newTestRetriever(t, logs, clusters)

	_, err := r.Retrieve(context.Background(), "demo", testWindow(),
		[]string{"api"}, domain.RetrievalBudget{MaxTotalRecords: 100})
	require.NoError(t, err)
	require.Zero(t, clusters.enabledCalls)
}

func TestRetrieveZeroPerCallCapFetchesNothing(t *testing.T) {
	logs := &mockLogSource{
		partitions: map[string][]domain.PartitionDescriptor{
			"api":   {{Name: "api-0"}},
			"audit": {{Name: "audit-0"}},
			"sched": {{Name: "sched-0"}},
		},
		records: map[string][]domain.LogRecord{
			"api-0": {{Timestamp: 1_500, Message: "should not appear"}},
		},
	}
	r := newTestRetriever(t, logs, &mockClusterSource{})

	got, err := r.Retrieve(context.Background(), "demo", testWindow(),
		[]string{"api", "audit", "sched"}, domain.RetrievalBudget{MaxTotalRecords: 2})
	require.NoError(t, err)
	require.Empty(t, got)
	for _, call := range logs.fetchCalls {
		require.Zero(t, call.limit)
	}
}

func TestPerTypeLimitFloorsAndGuardsZeroTypes(t *testing.T) {
	budget := domain.RetrievalBudget{MaxTotalRecords: 1000}
	require.Equal(t, 500, budget.PerTypeLimit(2))
	require.Equal(t, 333, budget.PerTypeLimit(3))
	require.Equal(t, 0, budget.PerTypeLimit(0))
}
