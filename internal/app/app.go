package app

import (
	"context"
	"fmt"

	"colcat/internal/config"
	"colcat/internal/costtracker"
	"colcat/internal/services"
	"colcat/internal/store"
	"colcat/internal/store/history"
	"colcat/pkg/categorizer"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// App holds the wired application graph shared by all commands.
type App struct {
	Config      *config.Config
	CostTracker costtracker.CostTracker
	Classifier  categorizer.ChunkClassifier
	Pipeline    *categorizer.Pipeline
	RunStore    store.RunStore
	RunService  *services.RunService

	classifierCloser func() error
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{Config: cfg, CostTracker: costtracker.New()}

	if err := a.initClassifier(ctx); err != nil {
		return nil, err
	}
	a.Pipeline = categorizer.NewPipeline(a.Classifier, cfg.Categorization.ChunkSize)

	if err := a.initRunStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	a.RunService = services.NewRunService(
		a.Pipeline, a.RunStore, a.CostTracker,
		cfg.Categorization.Provider, cfg.Categorization.Model, cfg.Categorization.ChunkSize,
	)

	log.Debug("Application initialization complete.")
	return a, nil
}

func (a *App) initClassifier(ctx context.Context) error {
	cfg := a.Config.Categorization
	switch cfg.Provider {
	case "openai":
		client := openai.NewClient(cfg.OpenaiApiKey)
		a.Classifier = categorizer.NewOpenAIClassifier(client, cfg.Model, a.CostTracker, a.Config.Pricing)
		log.Infof("OpenAI classifier initialized with model %s", cfg.Model)
	case "gemini":
		classifier, err := categorizer.NewGeminiClassifier(ctx, cfg.GeminiApiKey, cfg.Model, a.CostTracker, a.Config.Pricing)
		if err != nil {
			return fmt.Errorf("init gemini classifier: %w", err)
		}
		a.Classifier = classifier
		a.classifierCloser = classifier.Close
	default:
		return fmt.Errorf("unsupported categorization provider '%s'", cfg.Provider)
	}
	return nil
}

func (a *App) initRunStore(ctx context.Context) error {
	rs, err := history.NewRunStore(ctx, a.Config.History.Path)
	if err != nil {
		return fmt.Errorf("init run history store: %w", err)
	}
	a.RunStore = rs
	return nil
}

// Close releases the store and provider resources held by the app.
func (a *App) Close() {
	if a.RunStore != nil {
		if err := a.RunStore.Close(); err != nil {
			log.Warnf("Failed to close run store: %v", err)
		}
	}
	if a.classifierCloser != nil {
		if err := a.classifierCloser(); err != nil {
			log.Warnf("Failed to close classifier client: %v", err)
		}
	}
}
