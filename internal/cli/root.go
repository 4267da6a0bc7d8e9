package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"eks-log-analyzer/internal/config"
	"eks-log-analyzer/internal/domain"
)

// clusterDirectory is the cluster metadata capability the commands consume.
// *eks.Client satisfies this interface.
type clusterDirectory interface {
	ListClusters(ctx context.Context) ([]string, error)
	ClusterExists(ctx context.Context, cluster string) (bool, error)
	DescribeStatus(ctx context.Context, cluster string) (domain.ClusterInfo, error)
}

// logRetriever is the retrieval pipeline capability the analyze command
// consumes. *usecase.Retriever satisfies this interface.
type logRetriever interface {
	Retrieve(ctx context.Context, cluster string, window domain.TimeWindow, logTypes []string, budget domain.RetrievalBudget) ([]domain.LogRecord, error)
	EnabledLogTypes(ctx context.Context, cluster string) ([]string, error)
}

// queryEngine answers questions; *usecase.QueryEngine satisfies this
// interface.
type queryEngine interface {
	Ask(ctx context.Context, compacted domain.CompactedContext, question string) string
	AskGeneral(ctx context.Context, question, cluster string) string
}

// App carries the wired dependencies for the command tree.
type App struct {
	Config    config.Config
	Clusters  clusterDirectory
	Retriever logRetriever
	Engine    queryEngine
	SessionID string
	In        io.Reader
	Out       io.Writer
	Logger    *slog.Logger

	// now is swappable in tests; defaults to time.Now.
	now func() time.Time

	// scanner is the single line reader over In, shared by every prompt in
	// a command run so read-ahead never strands buffered input.
	scanner *bufio.Scanner
}

// lineScanner returns the shared scanner over App.In, creating it on first
// use. All interactive reads must go through it.
func (a *App) lineScanner() *bufio.Scanner {
	if a.scanner == nil {
		a.scanner = bufio.NewScanner(a.In)
		a.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	}
	return a.scanner
}

func (a *App) clock() time.Time {
	if a.now != nil {
		return a.now()
	}
	return time.Now()
}

func (a *App) validate() error {
	if a.Clusters == nil {
		return errors.New("cli: cluster directory must not be nil")
	}
	if a.Retriever == nil {
		return errors.New("cli: retriever must not be nil")
	}
	if a.Engine == nil {
		return errors.New("cli: query engine must not be nil")
	}
	if a.In == nil || a.Out == nil {
		return errors.New("cli: input and output must not be nil")
	}
	return nil
}

// NewRootCommand builds the command tree.
func NewRootCommand(app *App) (*cobra.Command, error) {
	if err := app.validate(); err != nil {
		return nil, err
	}
	root := &cobra.Command{
		Use:           "eks-log-analyzer",
		Short:         "Analyze EKS control-plane logs with natural-language questions",
		Long:          "Retrieves EKS control-plane logs from CloudWatch, compacts them into a bounded context, and answers questions about them with Amazon Bedrock.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if app.Logger != nil {
				app.Logger.Debug("command start", "command", cmd.Name(), "session_id", app.SessionID)
			}
		},
	}
	root.AddCommand(
		newAnalyzeCommand(app),
		newAskCommand(app),
		newClustersCommand(app),
	)
	return root, nil
}
