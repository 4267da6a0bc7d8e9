package cloudwatch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs/types"

	"eks-log-analyzer/internal/domain"
)

// logsAPI is the minimal CloudWatch Logs interface required by Client.
// *cloudwatchlogs.Client from aws-sdk-go-v2 satisfies this interface.
type logsAPI interface {
	DescribeLogStreams(ctx context.Context, in *cloudwatchlogs.DescribeLogStreamsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.DescribeLogStreamsOutput, error)
	FilterLogEvents(ctx context.Context, in *cloudwatchlogs.FilterLogEventsInput, optFns ...func(*cloudwatchlogs.Options)) (*cloudwatchlogs.FilterLogEventsOutput, error)
}

// NotFoundError marks a log group that does not exist, as opposed to one
// that exists but holds no matching streams.
type NotFoundError struct {
	LogGroup string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cloudwatch: log group not found: %s", e.LogGroup)
}

func (e *NotFoundError) ResourceNotFound() bool { return true }

// Client wraps CloudWatch Logs as the pipeline's log storage source.
type Client struct {
	api logsAPI
}

// New creates a Client with the given CloudWatch Logs API implementation.
func New(api logsAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("cloudwatch: api must not be nil")
	}
	return &Client{api: api}, nil
}

// ListPartitions lists up to limit streams in logGroup whose name starts
// with prefix. Ordering is whatever the service returns; ranking is the
// caller's concern. A missing log group yields *NotFoundError.
func (c *Client) ListPartitions(ctx context.Context, logGroup, prefix string, limit int32) ([]domain.PartitionDescriptor, error) {
	logGroup = strings.TrimSpace(logGroup)
	if logGroup == "" {
		return nil, errors.New("cloudwatch: log group is required")
	}

	in := &cloudwatchlogs.DescribeLogStreamsInput{
		LogGroupName: aws.String(logGroup),
		Limit:        aws.Int32(limit),
	}
	// orderBy cannot be combined with a name prefix; callers sort by last
	// event time themselves.
	if prefix != "" {
		in.LogStreamNamePrefix = aws.String(prefix)
	}

	out, err := c.api.DescribeLogStreams(ctx, in)
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil, &NotFoundError{LogGroup: logGroup}
		}
		return nil, fmt.Errorf("cloudwatch: describe log streams %q: %w", logGroup, err)
	}

	partitions := make([]domain.PartitionDescriptor, 0, len(out.LogStreams))
	for _, stream := range out.LogStreams {
		if stream.LogStreamName == nil {
			continue
		}
		descriptor := domain.PartitionDescriptor{Name: *stream.LogStreamName}
		if stream.LastEventTimestamp != nil {
			descriptor.LastEventTime = *stream.LastEventTimestamp
		}
		partitions = append(partitions, descriptor)
	}
	return partitions, nil
}

// FetchRecords pulls up to limit records from the named streams whose
// timestamps fall inside window. A limit of zero requests nothing and
// returns an empty result.
func (c *Client) FetchRecords(ctx context.Context, logGroup string, streams []string, window domain.TimeWindow, limit int32) ([]domain.LogRecord, error) {
	if len(streams) == 0 {
		return nil, errors.New("cloudwatch: at least one stream is required")
	}
	if limit <= 0 {
		return nil, nil
	}

	out, err := c.api.FilterLogEvents(ctx, &cloudwatchlogs.FilterLogEventsInput{
		LogGroupName:   aws.String(logGroup),
		LogStreamNames: streams,
		StartTime:      aws.Int64(window.Start),
		EndTime:        aws.Int64(window.End),
		Limit:          aws.Int32(limit),
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil, &NotFoundError{LogGroup: logGroup}
		}
		return nil, fmt.Errorf("cloudwatch: filter log events %q: %w", logGroup, err)
	}

	records := make([]domain.LogRecord, 0, len(out.Events))
	for _, event := range out.Events {
		rec := domain.LogRecord{}
		if event.Timestamp != nil {
			rec.Timestamp = *event.Timestamp
		}
		if event.Message != nil {
			rec.Message = *event.Message
		}
		if event.LogStreamName != nil {
			rec.Stream = *event.LogStreamName
		}
		records = append(records, rec)
	}
	return records, nil
}
