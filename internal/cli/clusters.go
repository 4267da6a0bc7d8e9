package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newClustersCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "Show EKS clusters in the region",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runClusters(cmd.Context())
		},
	}
}

func (a *App) runClusters(ctx context.Context) error {
	fmt.Fprintln(a.Out, "\n"+banner("EKS CLUSTER INFORMATION"))

	clusters, err := a.Clusters.ListClusters(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "\nRegion: %s\n", a.Config.Region)
	fmt.Fprintf(a.Out, "Total EKS Clusters: %d\n", len(clusters))

	if len(clusters) == 0 {
		fmt.Fprintln(a.Out, warnStyle.Render("\nNo EKS clusters found in this region."))
		fmt.Fprintln(a.Out, "\nTo create an EKS cluster:")
		fmt.Fprintln(a.Out, "   - Use the AWS Console: https://console.aws.amazon.com/eks/")
		fmt.Fprintln(a.Out, "   - Or the AWS CLI: aws eks create-cluster --name my-cluster ...")
		return nil
	}

	fmt.Fprintln(a.Out)
	fmt.Fprintln(a.Out, headerStyle.Render(fmt.Sprintf("%-5s %-30s %-15s %-10s", "#", "Cluster Name", "Status", "Version")))

	for i, cluster := range clusters {
		info, err := a.Clusters.DescribeStatus(ctx, cluster)
		if err != nil {
			fmt.Fprintln(a.Out, errorStyle.Render(fmt.Sprintf("%-5d %-30s error: %v", i+1, cluster, err)))
			continue
		}
		statusCell := fmt.Sprintf("%-15s", info.Status)
		if info.Status == "ACTIVE" {
			statusCell = okStyle.Render(statusCell)
		} else {
			statusCell = warnStyle.Render(statusCell)
		}
		fmt.Fprintf(a.Out, "%-5d %-30s %s %-10s\n", i+1, info.Name, statusCell, info.Version)
	}

	fmt.Fprintln(a.Out, statusStyle.Render("\nTip: use 'analyze' to inspect logs or 'ask' for general questions about these clusters"))
	return nil
}
