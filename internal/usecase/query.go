package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eks-log-analyzer/internal/domain"
)

// Generation parameters. Context-bound answers favor precise citation of log
// content; general answers get more room and a little more variation.
const (
	contextAnswerMaxTokens = 2000
	contextTemperature     = 0.1
	generalAnswerMaxTokens = 3000
	generalTemperature     = 0.3
)

// IntentPredicate decides whether a question asks about the caller's live
// resource inventory. Pluggable so the matching strategy can be swapped
// without touching the pipeline.
type IntentPredicate func(question string) bool

var inventoryPhrases = []string{
	"my cluster",
	"my eks",
	"how many cluster",
	"list cluster",
	"number of cluster",
}

// InventoryIntent is the default predicate: case-insensitive substring match
// against a small fixed phrase list.
func InventoryIntent(question string) bool {
	q := strings.ToLower(question)
	for _, phrase := range inventoryPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	return false
}

// QueryEngine answers questions with the model backend, either against a
// fixed compacted log context or in general-knowledge mode. Every backend
// failure is recovered into a displayable answer string; no error escapes.
type QueryEngine struct {
	backend  ModelBackend
	clusters ClusterSource
	region   string
	intent   IntentPredicate
	persona  string
}

type QueryOption func(*QueryEngine)

// WithIntentPredicate replaces the inventory-intent predicate.
func WithIntentPredicate(p IntentPredicate) QueryOption {
	return func(e *QueryEngine) {
		if p != nil {
			e.intent = p
		}
	}
}

// WithAnalystPersona overrides the analyst persona used in context-bound
// mode, e.g. from an externally managed parameter.
func WithAnalystPersona(persona string) QueryOption {
	return func(e *QueryEngine) {
		if strings.TrimSpace(persona) != "" {
			e.persona = strings.TrimSpace(persona)
		}
	}
}

func NewQueryEngine(backend ModelBackend, clusters ClusterSource, region string, opts ...QueryOption) (*QueryEngine, error) {
	if backend == nil {
		return nil, errors.New("usecase: model backend must not be nil")
	}
	if clusters == nil {
		return nil, errors.New("usecase: cluster source must not be nil")
	}
	e := &QueryEngine{
		backend:  backend,
		clusters: clusters,
		region:   region,
		intent:   InventoryIntent,
		persona:  analystPersona,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Ask answers question against the fixed compacted context. The context body
// goes into the system instructions; the question is the only user turn, so
// every call is independent of prior turns.
func (e *QueryEngine) Ask(ctx context.Context, compacted domain.CompactedContext, question string) string {
	system := buildAnalysisPrompt(e.persona, compacted.Body)
	answer, err := e.backend.Invoke(ctx, system, question, contextAnswerMaxTokens, contextTemperature)
	if err != nil {
		return recoveredBackendAnswer(err)
	}
	return answer
}

// AskGeneral answers a question without log context. When the question
// matches the inventory-intent predicate the live cluster list is fetched
// and injected as factual background; otherwise no collaborator call is
// made. cluster, when non-empty, is injected as a hint and never validated.
func (e *QueryEngine) AskGeneral(ctx context.Context, question, cluster string) string {
	var inventory string
	if e.intent(question) {
		inventory = e.renderInventory(ctx)
	}
	system := buildGeneralPrompt(cluster, inventory)
	answer, err := e.backend.Invoke(ctx, system, question, generalAnswerMaxTokens, generalTemperature)
	if err != nil {
		return recoveredBackendAnswer(err)
	}
	return answer
}

func (e *QueryEngine) renderInventory(ctx context.Context) string {
	clusters, err := e.clusters.ListClusters(ctx)
	if err != nil {
		// Inventory is best-effort background; the question still goes out.
		return fmt.Sprintf("\n\n=== USER'S ACTUAL AWS RESOURCES ===\nRegion: %s\nCluster inventory unavailable: %v\n", e.region, err)
	}
	var b strings.Builder
	b.WriteString("\n\n=== USER'S ACTUAL AWS RESOURCES ===\n")
	fmt.Fprintf(&b, "Region: %s\n", e.region)
	fmt.Fprintf(&b, "Number of EKS Clusters: %d\n", len(clusters))
	if len(clusters) > 0 {
		fmt.Fprintf(&b, "Cluster Names: %s\n", strings.Join(clusters, ", "))
	} else {
		b.WriteString("No EKS clusters found in this region.\n")
	}
	return b.String()
}

func recoveredBackendAnswer(err error) string {
	recovered := newError(ErrorBackendUnavailable, "invoke_model", err)
	return fmt.Sprintf("Error calling the model backend: %v\n\nMake sure you have:\n"+
		"1. Enabled the model in the Bedrock console\n"+
		"2. AWS credentials with the bedrock:InvokeModel permission\n"+
		"3. A region where the model is available (e.g. us-east-1, us-west-2, eu-west-1)",
		recovered)
}
