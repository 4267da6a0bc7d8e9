package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"eks-log-analyzer/internal/usecase"
)

func newAskCommand(app *App) *cobra.Command {
	var cluster string
	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Ask general EKS and Kubernetes questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runAsk(cmd.Context(), cluster)
		},
	}
	cmd.Flags().StringVar(&cluster, "cluster", "", "cluster name injected as context (never validated)")
	return cmd
}

func (a *App) runAsk(ctx context.Context, cluster string) error {
	fmt.Fprintln(a.Out, "\n"+banner("EKS KNOWLEDGE ASSISTANT"))
	fmt.Fprintln(a.Out, "\nAsk me anything about EKS and Kubernetes!")
	fmt.Fprintln(a.Out, "\nExample questions:")
	for _, example := range []string{
		"How do I troubleshoot pod crashes in EKS?",
		"What's the difference between EKS node groups and Fargate?",
		"How do I set up IRSA (IAM Roles for Service Accounts)?",
		"What are EKS best practices for security?",
		"How do I configure cluster autoscaling?",
		"Explain EKS networking and VPC CNI",
		"How do I upgrade my EKS cluster version?",
	} {
		fmt.Fprintf(a.Out, "   - %s\n", example)
	}
	fmt.Fprintln(a.Out, "\nType 'exit' or 'quit' to end the session.")

	err := RunLoop(ctx, a.lineScanner(), a.Out, "Your question:", "Thinking...",
		func(ctx context.Context, question string) (string, error) {
			return a.Engine.AskGeneral(ctx, question, cluster), nil
		})
	if usecase.IsUserAbort(err) {
		return nil
	}
	return err
}
