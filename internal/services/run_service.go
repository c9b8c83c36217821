package services

import (
	"context"
	"fmt"

	"colcat/internal/costtracker"
	"colcat/internal/models"
	"colcat/internal/store"
	"colcat/internal/tabular"
	"colcat/pkg/categorizer"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// RunService executes end-to-end categorization runs over tabular files:
// read, extract the designated column, run the pipeline, optionally write an
// annotated copy, and record the run in history.
type RunService struct {
	Pipeline    *categorizer.Pipeline
	RunStore    store.RunStore          // optional; skipped when nil
	CostTracker costtracker.CostTracker // optional
	Provider    string
	Model       string
	ChunkSize   int
}

// RunParams identifies the input file, the column to categorize and the
// constraints forwarded to the classification service.
type RunParams struct {
	FilePath   string
	Column     string
	Options    categorizer.Options
	OutputPath string // when set, an annotated copy is written here
}

// RunResult is the outcome of one run: the labeled items plus the recorded
// summary row.
type RunResult struct {
	Run   *models.Run
	Items []categorizer.Item
}

func NewRunService(pipeline *categorizer.Pipeline, runStore store.RunStore, costTracker costtracker.CostTracker, provider, model string, chunkSize int) *RunService {
	if chunkSize <= 0 {
		chunkSize = categorizer.DefaultChunkSize
	}
	return &RunService{
		Pipeline:    pipeline,
		RunStore:    runStore,
		CostTracker: costTracker,
		Provider:    provider,
		Model:       model,
		ChunkSize:   chunkSize,
	}
}

// CategorizeFile runs the full flow for one file and column. A failed
// classification request aborts the run; everything after the pipeline
// (annotation, history) is best-effort and logged rather than fatal once
// results exist.
func (s *RunService) CategorizeFile(ctx context.Context, params RunParams) (*RunResult, error) {
	table, err := tabular.ReadFile(params.FilePath)
	if err != nil {
		return nil, err
	}
	values, err := table.ExtractColumn(params.Column)
	if err != nil {
		return nil, err
	}

	unique := categorizer.Normalize(values)
	log.Infof("Categorizing column %q of %s: %d values, %d unique", params.Column, params.FilePath, len(values), len(unique))

	costBefore := s.totalCost(ctx)

	items, err := s.Pipeline.Categorize(ctx, values, params.Options)
	if err != nil {
		return nil, fmt.Errorf("categorization run failed: %w", err)
	}

	run := &models.Run{
		ID:            uuid.NewString(),
		FilePath:      params.FilePath,
		Column:        params.Column,
		Provider:      s.Provider,
		Model:         s.Model,
		ItemCount:     len(unique),
		ChunkCount:    chunkCount(len(unique), s.ChunkSize),
		FallbackCount: countFallbacks(items),
		CategoryCount: countCategories(items),
		CostUSD:       s.totalCost(ctx) - costBefore,
	}

	if params.OutputPath != "" {
		annotated, err := table.Annotate(params.Column, tabular.LookupByText(items))
		if err != nil {
			return nil, err
		}
		if err := tabular.WriteFile(params.OutputPath, annotated); err != nil {
			return nil, err
		}
		log.Infof("Wrote annotated file to %s", params.OutputPath)
	}

	if s.RunStore != nil {
		if err := s.RunStore.RecordRun(ctx, run); err != nil {
			log.Warnf("Failed to record run history: %v", err)
		}
	}

	return &RunResult{Run: run, Items: items}, nil
}

func (s *RunService) totalCost(ctx context.Context) float64 {
	if s.CostTracker == nil {
		return 0
	}
	total, err := s.CostTracker.TotalCost(ctx)
	if err != nil {
		log.Warnf("Failed to read accumulated cost: %v", err)
		return 0
	}
	return total
}

func chunkCount(itemCount, chunkSize int) int {
	if itemCount == 0 {
		return 0
	}
	return (itemCount + chunkSize - 1) / chunkSize
}

func countFallbacks(items []categorizer.Item) int {
	n := 0
	for _, item := range items {
		if item.Category == categorizer.FallbackCategory && item.Reason == categorizer.FallbackReason && item.Confidence == 0 {
			n++
		}
	}
	return n
}

func countCategories(items []categorizer.Item) int {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		seen[item.Category] = struct{}{}
	}
	return len(seen)
}
