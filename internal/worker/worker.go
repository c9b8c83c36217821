package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"colcat/internal/services"
	"colcat/internal/tasks"
	"colcat/pkg/categorizer"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"
)

// Deps bundles the services the task handlers need.
type Deps struct {
	Runs *services.RunService
}

// RegisterHandlers wires all task handlers onto the mux.
func RegisterHandlers(mux *asynq.ServeMux, deps Deps) {
	mux.HandleFunc(tasks.TypeCategorizeFile, func(ctx context.Context, t *asynq.Task) error {
		return handleCategorizeFile(ctx, t, deps)
	})
}

func handleCategorizeFile(ctx context.Context, t *asynq.Task, deps Deps) error {
	var p tasks.CategorizeFilePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that never unmarshals will never succeed; don't retry.
		return fmt.Errorf("failed to unmarshal categorize payload: %v: %w", err, asynq.SkipRetry)
	}

	result, err := deps.Runs.CategorizeFile(ctx, services.RunParams{
		FilePath:   p.FilePath,
		Column:     p.Column,
		OutputPath: p.OutputPath,
		Options: categorizer.Options{
			MaxCategories:        p.MaxCategories,
			PredefinedCategories: p.PredefinedCategories,
		},
	})
	if err != nil {
		return err
	}

	log.Infof("Categorized %s column %q: %d items, %d categories, %d fallbacks",
		p.FilePath, p.Column, result.Run.ItemCount, result.Run.CategoryCount, result.Run.FallbackCount)
	return nil
}
