package eks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awseks "github.com/aws/aws-sdk-go-v2/service/eks"
	"github.com/aws/aws-sdk-go-v2/service/eks/types"

	"eks-log-analyzer/internal/domain"
)

// eksAPI is the minimal EKS interface required by Client.
// *eks.Client from aws-sdk-go-v2 satisfies this interface.
type eksAPI interface {
	ListClusters(ctx context.Context, in *awseks.ListClustersInput, optFns ...func(*awseks.Options)) (*awseks.ListClustersOutput, error)
	DescribeCluster(ctx context.Context, in *awseks.DescribeClusterInput, optFns ...func(*awseks.Options)) (*awseks.DescribeClusterOutput, error)
}

// NotFoundError marks a cluster that does not exist in the region.
type NotFoundError struct {
	Cluster string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("eks: cluster not found: %s", e.Cluster)
}

func (e *NotFoundError) ResourceNotFound() bool { return true }

// Client wraps the EKS API as the pipeline's cluster metadata source.
type Client struct {
	api eksAPI
}

// New creates a Client with the given EKS API implementation.
func New(api eksAPI) (*Client, error) {
	if api == nil {
		return nil, errors.New("eks: api must not be nil")
	}
	return &Client{api: api}, nil
}

// ListClusters returns the names of all clusters in the region.
func (c *Client) ListClusters(ctx context.Context) ([]string, error) {
	out, err := c.api.ListClusters(ctx, &awseks.ListClustersInput{})
	if err != nil {
		return nil, fmt.Errorf("eks: list clusters: %w", err)
	}
	return out.Clusters, nil
}

// ClusterExists reports whether the named cluster exists. A missing cluster
// is a regular false result, not an error.
func (c *Client) ClusterExists(ctx context.Context, cluster string) (bool, error) {
	_, err := c.describe(ctx, cluster)
	if err != nil {
		var nf *NotFoundError
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DescribeStatus returns display metadata for one cluster.
func (c *Client) DescribeStatus(ctx context.Context, cluster string) (domain.ClusterInfo, error) {
	out, err := c.describe(ctx, cluster)
	if err != nil {
		return domain.ClusterInfo{}, err
	}
	info := domain.ClusterInfo{
		Name:    cluster,
		Status:  string(out.Status),
		Version: aws.ToString(out.Version),
	}
	if info.Status == "" {
		info.Status = "UNKNOWN"
	}
	if info.Version == "" {
		info.Version = "N/A"
	}
	return info, nil
}

// EnabledLogTypes returns the control-plane log types the cluster's logging
// configuration has enabled. An empty result means logging is off.
func (c *Client) EnabledLogTypes(ctx context.Context, cluster string) ([]string, error) {
	out, err := c.describe(ctx, cluster)
	if err != nil {
		return nil, err
	}
	if out.Logging == nil {
		return nil, nil
	}
	var enabled []string
	for _, setup := range out.Logging.ClusterLogging {
		if setup.Enabled == nil || !*setup.Enabled {
			continue
		}
		for _, logType := range setup.Types {
			enabled = append(enabled, string(logType))
		}
	}
	return enabled, nil
}

func (c *Client) describe(ctx context.Context, cluster string) (*types.Cluster, error) {
	cluster = strings.TrimSpace(cluster)
	if cluster == "" {
		return nil, errors.New("eks: cluster name is required")
	}
	out, err := c.api.DescribeCluster(ctx, &awseks.DescribeClusterInput{
		Name: aws.String(cluster),
	})
	if err != nil {
		var rnf *types.ResourceNotFoundException
		if errors.As(err, &rnf) {
			return nil, &NotFoundError{Cluster: cluster}
		}
		return nil, fmt.Errorf("eks: describe cluster %q: %w", cluster, err)
	}
	if out.Cluster == nil {
		return nil, fmt.Errorf("eks: describe cluster %q: empty response", cluster)
	}
	return out.Cluster, nil
}
