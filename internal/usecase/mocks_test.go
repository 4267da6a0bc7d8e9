package usecase

import (
	"context"
	"fmt"

	"eks-log-analyzer/internal/domain"
)

type fetchCall struct {
	group  string
	stream string
	window domain.TimeWindow
	limit  int32
}

type mockLogSource struct {
	partitions map[string][]domain.PartitionDescriptor
	listErr    map[string]error
	records    map[string][]domain.LogRecord
	fetchErr   map[string]error

	listCalls  int
	fetchCalls []fetchCall
}

func (m *mockLogSource) ListPartitions(_ context.Context, logGroup, prefix string, _ int32) ([]domain.PartitionDescriptor, error) {
	m.listCalls++
	if err := m.listErr[prefix]; err != nil {
		return nil, err
	}
	return m.partitions[prefix], nil
}

func (m *mockLogSource) FetchRecords(_ context.Context, logGroup string, streams []string, window domain.TimeWindow, limit int32) ([]domain.LogRecord, error) {
	if len(streams) != 1 {
		return nil, fmt.Errorf("expected a single stream per fetch, got %d", len(streams))
	}
	stream := streams[0]
	m.fetchCalls = append(m.fetchCalls, fetchCall{group: logGroup, stream: stream, window: window, limit: limit})
	if err := m.fetchErr[stream]; err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}
	records := m.records[stream]
	if int32(len(records)) > limit {
		records = records[:limit]
	}
	out := make([]domain.LogRecord, len(records))
	copy(out, records)
	return out, nil
}

type mockClusterSource struct {
	clusters   []string
	listErr    error
	enabled    []string
	enabledErr error

	listCalls    int
	enabledCalls int
}

func (m *mockClusterSource) ListClusters(_ context.Context) ([]string, error) {
	m.listCalls++
	return m.clusters, m.listErr
}

func (m *mockClusterSource) EnabledLogTypes(_ context.Context, _ string) ([]string, error) {
	m.enabledCalls++
	return m.enabled, m.enabledErr
}

type invokeCall struct {
	system      string
	question    string
	maxTokens   int
	temperature float64
}

type mockBackend struct {
	answer string
	err    error

	calls []invokeCall
}

func (m *mockBackend) Invoke(_ context.Context, system, question string, maxTokens int, temperature float64) (string, error) {
	m.calls = append(m.calls, invokeCall{system: system, question: question, maxTokens: maxTokens, temperature: temperature})
	return m.answer, m.err
}

type notFoundErr struct{ what string }

func (e *notFoundErr) Error() string          { return "not found: " + e.what }
func (e *notFoundErr) ResourceNotFound() bool { return true }

type recordingReporter struct {
	lines []string
}

func (r *recordingReporter) Statusf(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}
