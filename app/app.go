package app

import (
	"context"
	"fmt"
	"io"

	"wikiquiz/cache"
	"wikiquiz/config"
	"wikiquiz/db"
	"wikiquiz/services"
	"wikiquiz/services/article"
	"wikiquiz/services/generator"

	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// App holds the services shared by the server and the batch commands.
type App struct {
	Quizzes *services.QuizService
	History *services.HistoryService

	closers []io.Closer
	logger  *zap.SugaredLogger
}

// New builds the service stack selected by cfg. Options are applied after
// the ones derived from the configuration.
func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger, opts ...services.QuizServiceOption) (*App, error) {
	a := &App{logger: logger}

	repo, err := a.historyRepository(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	quizCache, err := a.quizCache(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	gen, err := newGenerator(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.History = services.NewHistoryService(repo, logger)
	quizOpts := append([]services.QuizServiceOption{
		services.WithCache(quizCache),
		services.WithDelay(cfg.GenerationDelay),
		services.WithTimeout(cfg.GenerationTimeout),
	}, opts...)
	a.Quizzes = services.NewQuizService(newSource(cfg), gen, a.History, logger, quizOpts...)
	return a, nil
}

func (a *App) historyRepository(ctx context.Context, cfg *config.Config) (db.HistoryRepository, error) {
	if cfg.DatabaseURL != "" {
		repo, err := db.NewPostgresHistoryRepository(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize history database: %w", err)
		}
		a.closers = append(a.closers, repo)
		a.logger.Infof("Using Postgres history store")
		return repo, nil
	}

	seed, err := services.SeedQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to seed history: %w", err)
	}
	a.logger.Infof("Using in-memory history store seeded with %d quizzes", len(seed))
	return db.NewMemoryHistoryRepository(seed...), nil
}

func (a *App) quizCache(cfg *config.Config) (cache.QuizCache, error) {
	if cfg.RedisURL == "" {
		return cache.NoopQuizCache{}, nil
	}

	client, err := cache.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize quiz cache: %w", err)
	}
	quizCache := cache.NewRedisQuizCache(client, cfg.CacheTTL, a.logger)
	a.closers = append(a.closers, quizCache)
	a.logger.Infof("Caching generated quizzes in Redis for %s", cfg.CacheTTL)
	return quizCache, nil
}

func newSource(cfg *config.Config) article.Source {
	if cfg.ArticleSource == config.ArticleSourceWikipedia {
		return article.NewWikipediaSource(nil)
	}
	return article.NewMockSource()
}

func newGenerator(cfg *config.Config, logger *zap.SugaredLogger) (generator.Generator, error) {
	template := generator.NewTemplateGenerator()
	questionCount := template.QuestionCount()

	switch cfg.QuestionGenerator {
	case config.GeneratorOpenAI:
		llm, err := openai.New(
			openai.WithModel(cfg.OpenAIModel),
			openai.WithToken(cfg.OpenAIAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize OpenAI client: %w", err)
		}
		logger.Infof("Generating questions with OpenAI model %s", cfg.OpenAIModel)
		return generator.NewLLMGenerator(llm, questionCount, logger), nil
	case config.GeneratorAnthropic:
		logger.Infof("Generating questions with Anthropic Claude")
		return generator.NewClaudeGenerator(cfg.AnthropicAPIKey, questionCount, logger), nil
	default:
		return template, nil
	}
}

func (a *App) Close() {
	for _, closer := range a.closers {
		if err := closer.Close(); err != nil {
			a.logger.Warnf("Failed to close resource: %v", err)
		}
	}
	a.closers = nil
}
