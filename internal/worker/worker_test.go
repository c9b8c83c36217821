package worker

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"colcat/internal/services"
	"colcat/internal/tasks"
	"colcat/pkg/categorizer"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoClassifier struct{}

func (echoClassifier) ClassifyChunk(ctx context.Context, instructions string, items []string) (string, error) {
	records := make([]categorizer.Item, len(items))
	for i, item := range items {
		records[i] = categorizer.Item{OriginalText: item, Category: "Echo", Confidence: 0.9, Reason: "test"}
	}
	data, _ := json.Marshal(records)
	return string(data), nil
}

func newTestMux() *asynq.ServeMux {
	pipeline := categorizer.NewPipeline(echoClassifier{}, 100)
	svc := services.NewRunService(pipeline, nil, nil, "openai", "gpt-test", 100)
	mux := asynq.NewServeMux()
	RegisterHandlers(mux, Deps{Runs: svc})
	return mux
}

func TestHandleCategorizeFile(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.csv")
	output := filepath.Join(dir, "output.csv")
	require.NoError(t, os.WriteFile(input, []byte("feedback\nGreat service\n"), 0o644))

	task, err := tasks.NewCategorizeFileTask(tasks.CategorizeFilePayload{
		FilePath:   input,
		Column:     "feedback",
		OutputPath: output,
	})
	require.NoError(t, err)

	require.NoError(t, newTestMux().ProcessTask(context.Background(), task))

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Echo")
}

func TestHandleCategorizeFile_BadPayloadSkipsRetry(t *testing.T) {
	task := asynq.NewTask(tasks.TypeCategorizeFile, []byte("not json"))
	err := newTestMux().ProcessTask(context.Background(), task)
	require.Error(t, err)
	assert.ErrorIs(t, err, asynq.SkipRetry, "an unparseable payload must not be retried")
}

func TestHandleCategorizeFile_MissingFileFails(t *testing.T) {
	task, err := tasks.NewCategorizeFileTask(tasks.CategorizeFilePayload{
		FilePath: "/nonexistent/input.csv",
		Column:   "feedback",
	})
	require.NoError(t, err)
	assert.Error(t, newTestMux().ProcessTask(context.Background(), task))
}
