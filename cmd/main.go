package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatchlogs"
	awseks "github.com/aws/aws-sdk-go-v2/service/eks"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/google/uuid"

	"eks-log-analyzer/internal/cli"
	"eks-log-analyzer/internal/config"
	"eks-log-analyzer/internal/integrations/bedrock"
	"eks-log-analyzer/internal/integrations/cloudwatch"
	"eks-log-analyzer/internal/integrations/eks"
	"eks-log-analyzer/internal/integrations/paramstore"
	"eks-log-analyzer/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessionID := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})).With("session_id", sessionID)

	// ---- Configuration (read only here) ----
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	// ---- AWS SDK config ----
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		logger.Error("failed to load AWS config", "err", err)
		os.Exit(1)
	}

	// ---- Clients ----
	clusterClient, err := eks.New(awseks.NewFromConfig(awsCfg))
	if err != nil {
		logger.Error("failed to create EKS client", "err", err)
		os.Exit(1)
	}
	logsClient, err := cloudwatch.New(cloudwatchlogs.NewFromConfig(awsCfg))
	if err != nil {
		logger.Error("failed to create CloudWatch Logs client", "err", err)
		os.Exit(1)
	}

	// Optional parameter-store overrides for model id and persona.
	var engineOpts []usecase.QueryOption
	if cfg.ParamPrefix != "" {
		ssmClient, psErr := paramstore.New(awsssm.NewFromConfig(awsCfg))
		if psErr != nil {
			logger.Error("failed to create SSM client", "err", psErr)
			os.Exit(1)
		}
		overrides := paramstore.LoadOverrides(ctx, ssmClient, cfg.ParamPrefix)
		if overrides.ModelID != "" {
			cfg.ModelID = overrides.ModelID
		}
		if overrides.Persona != "" {
			engineOpts = append(engineOpts, usecase.WithAnalystPersona(overrides.Persona))
		}
	}

	modelClient, err := bedrock.New(bedrockruntime.NewFromConfig(awsCfg), cfg.ModelID)
	if err != nil {
		logger.Error("failed to create Bedrock client", "err", err)
		os.Exit(1)
	}

	// ---- Pipeline ----
	retriever, err := usecase.NewRetriever(logsClient, clusterClient, cli.NewStatusReporter(os.Stdout, logger))
	if err != nil {
		logger.Error("failed to create retriever", "err", err)
		os.Exit(1)
	}
	engine, err := usecase.NewQueryEngine(modelClient, clusterClient, cfg.Region, engineOpts...)
	if err != nil {
		logger.Error("failed to create query engine", "err", err)
		os.Exit(1)
	}

	logger.Info("initialized", "region", cfg.Region, "model", cfg.ModelID)

	root, err := cli.NewRootCommand(&cli.App{
		Config:    cfg,
		Clusters:  clusterClient,
		Retriever: retriever,
		Engine:    engine,
		SessionID: sessionID,
		In:        os.Stdin,
		Out:       os.Stdout,
		Logger:    logger,
	})
	if err != nil {
		logger.Error("failed to build command tree", "err", err)
		os.Exit(1)
	}
	if err := root.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func logLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
