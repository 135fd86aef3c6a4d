package views

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"wikiquiz/models"
	"wikiquiz/services"
)

var (
	ErrSubmissionInFlight = errors.New("a quiz is already being generated")
	ErrViewClosed         = errors.New("view is closed")
	ErrQuestionNotFound   = errors.New("question not found")
)

// Starter begins a background generation for a URL.
type Starter interface {
	Start(ctx context.Context, rawURL string) (*services.Task, error)
}

// GenerateView is the state behind the generate page: the URL form, the
// loading flag, the latest quiz and its notification.
type GenerateView struct {
	mu      sync.Mutex
	starter Starter
	ctx     context.Context
	cancel  context.CancelFunc

	input        string
	fieldError   string
	loading      bool
	task         *services.Task
	settled      chan struct{}
	quiz         *models.Quiz
	questions    []*QuestionView
	notification *models.Notification
	closed       bool
}

func NewGenerateView(parent context.Context, starter Starter) *GenerateView {
	ctx, cancel := context.WithCancel(parent)
	settled := make(chan struct{})
	close(settled)
	return &GenerateView{
		starter: starter,
		ctx:     ctx,
		cancel:  cancel,
		settled: settled,
	}
}

// Submit validates rawURL and starts generating. A validation failure is
// shown under the input and leaves the current quiz in place.
func (v *GenerateView) Submit(rawURL string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return ErrViewClosed
	}
	if v.loading {
		return ErrSubmissionInFlight
	}

	v.input = rawURL
	task, err := v.starter.Start(v.ctx, rawURL)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			v.fieldError = validationErr.Message
			return err
		}
		notification := services.FailureNotification(err)
		v.notification = &notification
		return err
	}

	v.fieldError = ""
	v.quiz = nil
	v.questions = nil
	v.notification = nil
	v.loading = true
	v.task = task
	v.settled = make(chan struct{})

	go v.await(task, v.settled)
	return nil
}

func (v *GenerateView) await(task *services.Task, settled chan struct{}) {
	<-task.Done()
	result := task.Result()

	v.mu.Lock()
	defer v.mu.Unlock()
	defer close(settled)

	if v.closed || v.task != task {
		return
	}

	v.loading = false
	v.task = nil

	var notification models.Notification
	if result.OK() {
		v.quiz = result.Quiz
		v.questions = newQuestionViews(result.Quiz.Questions)
		notification = services.SuccessNotification(result.Quiz)
	} else {
		notification = services.FailureNotification(result.Err)
	}
	v.notification = &notification
}

// Wait blocks until no submission is in flight.
func (v *GenerateView) Wait(ctx context.Context) error {
	v.mu.Lock()
	settled := v.settled
	v.mu.Unlock()

	select {
	case <-settled:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (v *GenerateView) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *GenerateView) Answer(index int, option string) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	question, err := questionAt(v.questions, index)
	if err != nil {
		return false, err
	}
	return question.Select(option), nil
}

func (v *GenerateView) ToggleExplanation(index int) (bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	question, err := questionAt(v.questions, index)
	if err != nil {
		return false, err
	}
	return question.ToggleExplanation(), nil
}

func (v *GenerateView) DismissNotification() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.notification = nil
}

// Close cancels any in-flight generation; its result is discarded.
func (v *GenerateView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	v.cancel()
}

type GenerateSnapshot struct {
	Input        string
	FieldError   string
	Loading      bool
	Notification *models.Notification
	Quiz         *QuizSnapshot
}

func (v *GenerateView) Snapshot() GenerateSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	snapshot := GenerateSnapshot{
		Input:      v.input,
		FieldError: v.fieldError,
		Loading:    v.loading,
		Quiz:       snapshotQuiz(v.quiz, v.questions),
	}
	if v.notification != nil {
		notification := *v.notification
		snapshot.Notification = &notification
	}
	return snapshot
}

func questionAt(questions []*QuestionView, index int) (*QuestionView, error) {
	if index < 0 || index >= len(questions) {
		return nil, fmt.Errorf("question %d: %w", index, ErrQuestionNotFound)
	}
	return questions[index], nil
}
