package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"eks-log-analyzer/internal/domain"
	"eks-log-analyzer/internal/usecase"
)

const defaultHoursBack = 24

func newAnalyzeCommand(app *App) *cobra.Command {
	var hours int
	cmd := &cobra.Command{
		Use:   "analyze [cluster]",
		Short: "Retrieve cluster logs and ask questions about them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cluster := ""
			if len(args) == 1 {
				cluster = args[0]
			}
			return app.runAnalyze(cmd.Context(), cluster, hours)
		},
	}
	cmd.Flags().IntVar(&hours, "hours", defaultHoursBack, "hours of logs to analyze")
	return cmd
}

func (a *App) runAnalyze(ctx context.Context, cluster string, hours int) error {
	if hours <= 0 {
		hours = defaultHoursBack
	}

	if cluster == "" {
		picked, err := a.pickCluster(ctx)
		if err != nil {
			return err
		}
		if picked == "" {
			return nil
		}
		cluster = picked
	}

	exists, err := a.Clusters.ClusterExists(ctx, cluster)
	if err != nil {
		return err
	}
	if !exists {
		fmt.Fprintln(a.Out, warnStyle.Render(fmt.Sprintf(
			"Cluster %q not found in region %s", cluster, a.Config.Region)))
		return nil
	}

	enabled, err := a.Retriever.EnabledLogTypes(ctx, cluster)
	if err != nil {
		return err
	}
	if len(enabled) == 0 {
		fmt.Fprintln(a.Out, warnStyle.Render(fmt.Sprintf(
			"Cluster logging is NOT enabled for %q", cluster)))
		a.printEnableLoggingInstructions(cluster)
		return nil
	}
	fmt.Fprintln(a.Out, okStyle.Render("Cluster logging is enabled"))
	fmt.Fprintf(a.Out, "   Enabled log types: %s\n", strings.Join(enabled, ", "))

	window := domain.WindowHoursBack(a.clock(), hours)
	fmt.Fprintf(a.Out, "\nRetrieving logs for the last %d hours...\n", hours)

	records, err := a.Retriever.Retrieve(ctx, cluster, window, enabled,
		domain.RetrievalBudget{MaxTotalRecords: a.Config.MaxLogEntries})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "\nTotal log events retrieved: %d\n", len(records))

	if len(records) == 0 {
		a.printNoLogsGuidance()
		return nil
	}

	compacted := usecase.Compact(records, hours)
	a.printAnalysisBanner()

	err = RunLoop(ctx, a.lineScanner(), a.Out, "Your question:", "Analyzing logs...",
		func(ctx context.Context, question string) (string, error) {
			return a.Engine.Ask(ctx, compacted, question), nil
		})
	if usecase.IsUserAbort(err) {
		return nil
	}
	return err
}

// pickCluster lists the region's clusters and reads a selection by name or
// number. An empty return with nil error means there was nothing to pick.
func (a *App) pickCluster(ctx context.Context) (string, error) {
	clusters, err := a.Clusters.ListClusters(ctx)
	if err != nil {
		return "", err
	}
	fmt.Fprintln(a.Out, "\nAvailable EKS clusters:")
	if len(clusters) == 0 {
		fmt.Fprintln(a.Out, warnStyle.Render("   No clusters found in this region"))
		return "", nil
	}
	for i, cluster := range clusters {
		fmt.Fprintf(a.Out, "   %d. %s\n", i+1, cluster)
	}

	fmt.Fprint(a.Out, "\n"+promptStyle.Render("Enter your EKS cluster name (or number):")+" ")
	scanner := a.lineScanner()
	if !scanner.Scan() {
		return "", nil
	}
	input := strings.TrimSpace(scanner.Text())
	if input == "" {
		fmt.Fprintln(a.Out, errorStyle.Render("Cluster name is required"))
		return "", nil
	}
	if n, convErr := strconv.Atoi(input); convErr == nil {
		if n < 1 || n > len(clusters) {
			fmt.Fprintln(a.Out, errorStyle.Render(fmt.Sprintf(
				"Invalid number. Please choose between 1 and %d", len(clusters))))
			return "", nil
		}
		selected := clusters[n-1]
		fmt.Fprintf(a.Out, "Selected: %s\n", selected)
		return selected, nil
	}
	return input, nil
}

func (a *App) printNoLogsGuidance() {
	fmt.Fprintln(a.Out, warnStyle.Render("\nNo logs found. This could mean:"))
	fmt.Fprintln(a.Out, "   - Logging was recently enabled (wait 5-10 minutes)")
	fmt.Fprintln(a.Out, "   - No activity in the specified time range")
	fmt.Fprintln(a.Out, "   - Logs are being sent to S3 instead of CloudWatch")
}

func (a *App) printAnalysisBanner() {
	fmt.Fprintln(a.Out, "\n"+banner("INTERACTIVE EKS LOG ANALYSIS"))
	fmt.Fprintln(a.Out, "\nYou can now ask questions about your EKS cluster logs!")
	fmt.Fprintln(a.Out, "\nExample questions:")
	for _, example := range []string{
		"What API requests do you see?",
		"Show me authentication failures",
		"Which users accessed the cluster?",
		"Are there any errors or warnings?",
		"What pods were created or deleted?",
		"Show me suspicious activities",
	} {
		fmt.Fprintf(a.Out, "   - %s\n", example)
	}
	fmt.Fprintln(a.Out, "\nType 'exit' or 'quit' to end the session.")
}
