package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wikiquiz/cache"
	"wikiquiz/models"
	"wikiquiz/services/article"
	"wikiquiz/services/generator"
	"wikiquiz/services/upstream"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultGenerationDelay   = 2 * time.Second
	DefaultGenerationTimeout = 30 * time.Second
)

// QuizService turns a Wikipedia URL into a stored quiz.
type QuizService struct {
	source    article.Source
	generator generator.Generator
	history   *HistoryService
	cache     cache.QuizCache
	delay     time.Duration
	timeout   time.Duration
	now       func() time.Time
	logger    *zap.SugaredLogger
}

type QuizServiceOption func(*QuizService)

func WithCache(c cache.QuizCache) QuizServiceOption {
	return func(s *QuizService) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithDelay sets the simulated latency applied before every run. Zero disables it.
func WithDelay(d time.Duration) QuizServiceOption {
	return func(s *QuizService) {
		s.delay = max(d, 0)
	}
}

func WithTimeout(d time.Duration) QuizServiceOption {
	return func(s *QuizService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithClock(now func() time.Time) QuizServiceOption {
	return func(s *QuizService) {
		s.now = now
	}
}

func NewQuizService(source article.Source, gen generator.Generator, history *HistoryService, logger *zap.SugaredLogger, opts ...QuizServiceOption) *QuizService {
	s := &QuizService{
		source:    source,
		generator: gen,
		history:   history,
		cache:     cache.NoopQuizCache{},
		delay:     DefaultGenerationDelay,
		timeout:   DefaultGenerationTimeout,
		now:       time.Now,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates the URL and runs the generation in the background. A
// validation failure is returned directly and no task is started.
func (s *QuizService) Start(ctx context.Context, rawURL string) (*Task, error) {
	articleURL, err := ValidateArticleURL(rawURL)
	if err != nil {
		s.logger.Warnf("Rejected quiz generation request: %v", err)
		return nil, err
	}

	taskCtx, cancel := context.WithCancel(ctx)
	task := newTask(cancel)
	go func() {
		quiz, err := s.run(taskCtx, articleURL)
		task.complete(quiz, err)
	}()
	return task, nil
}

// Generate is the blocking form of Start. Failures after validation are
// returned as *GenerationError.
func (s *QuizService) Generate(ctx context.Context, rawURL string) (*models.Quiz, error) {
	articleURL, err := ValidateArticleURL(rawURL)
	if err != nil {
		s.logger.Warnf("Rejected quiz generation request: %v", err)
		return nil, err
	}

	quiz, err := s.run(ctx, articleURL)
	if err != nil {
		return nil, classifyGenerationError(err)
	}
	return quiz, nil
}

func (s *QuizService) run(ctx context.Context, articleURL string) (*models.Quiz, error) {
	s.logger.Infof("Starting quiz generation for URL %s", articleURL)

	if err := s.wait(ctx); err != nil {
		s.logger.Warnf("Quiz generation for %s interrupted: %v", articleURL, err)
		return nil, err
	}

	if cached, ok := s.lookupCache(ctx, articleURL); ok {
		cached.ID = newQuizID()
		cached.CreatedAt = s.now().UTC()
		if err := s.store(ctx, cached); err != nil {
			return nil, err
		}
		s.logger.Infof("Served quiz %s for %s from cache", cached.ID, articleURL)
		return cached, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	art, err := s.source.Fetch(runCtx, articleURL)
	if err != nil {
		s.logger.Errorf("Failed to fetch article %s: %v", articleURL, err)
		return nil, fmt.Errorf("failed to fetch article: %w", err)
	}
	s.logger.Infof("Fetched article %q with %d entities", art.Title, len(art.Entities))

	questions, err := s.generator.Generate(runCtx, art)
	if err != nil {
		s.logger.Errorf("Failed to generate questions for %q: %v", art.Title, err)
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	quiz := assembleQuiz(newQuizID(), art, questions, s.now().UTC())
	if err := quiz.Validate(); err != nil {
		s.logger.Errorf("Generated quiz for %q is invalid: %v", art.Title, err)
		return nil, fmt.Errorf("%w: %w", upstream.ErrMalformedContent, err)
	}

	if err := s.store(ctx, quiz); err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, articleURL, quiz); err != nil {
		s.logger.Warnf("Failed to cache quiz for %s: %v", articleURL, err)
	}

	s.logger.Infof("Successfully generated quiz %s with %d questions for %q", quiz.ID, len(quiz.Questions), quiz.Title)
	return quiz, nil
}

func (s *QuizService) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *QuizService) lookupCache(ctx context.Context, articleURL string) (*models.Quiz, bool) {
	quiz, ok, err := s.cache.Get(ctx, articleURL)
	if err != nil {
		s.logger.Warnf("Quiz cache lookup for %s failed: %v", articleURL, err)
		return nil, false
	}
	if !ok || quiz.Validate() != nil {
		return nil, false
	}
	return quiz, true
}

func (s *QuizService) store(ctx context.Context, quiz *models.Quiz) error {
	if s.history == nil {
		return nil
	}
	if err := s.history.SaveQuiz(ctx, quiz); err != nil {
		return fmt.Errorf("%w: %w", upstream.ErrUnavailable, err)
	}
	return nil
}

func assembleQuiz(id string, art models.Article, questions []models.Question, createdAt time.Time) *models.Quiz {
	return &models.Quiz{
		ID:            id,
		Title:         art.Title,
		SourceURL:     art.SourceURL,
		Summary:       art.Summary,
		Sections:      art.Sections,
		Entities:      art.Entities,
		RelatedTopics: art.RelatedTopics,
		Questions:     questions,
		CreatedAt:     createdAt,
	}
}

func newQuizID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "quiz-" + id[:12]
}
