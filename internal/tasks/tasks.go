package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeCategorizeFile is the task type for background file categorization.
const TypeCategorizeFile = "categorize:file"

// CategorizeFilePayload carries everything a worker needs to run one file
// categorization end to end.
type CategorizeFilePayload struct {
	FilePath             string   `json:"file_path"`
	Column               string   `json:"column"`
	OutputPath           string   `json:"output_path,omitempty"`
	MaxCategories        int      `json:"max_categories,omitempty"`
	PredefinedCategories []string `json:"predefined_categories,omitempty"`
}

// NewCategorizeFileTask builds an asynq task for the payload.
func NewCategorizeFileTask(p CategorizeFilePayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal categorize payload: %w", err)
	}
	return asynq.NewTask(TypeCategorizeFile, payload), nil
}
