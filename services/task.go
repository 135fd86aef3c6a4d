package services

import (
	"context"

	"wikiquiz/models"
)

// Result is the outcome of a generation task: exactly one of Quiz and Err is set.
type Result struct {
	Quiz *models.Quiz
	Err  *GenerationError
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Task is a generation running in the background.
type Task struct {
	done   chan struct{}
	result Result
	cancel context.CancelFunc
}

func newTask(cancel context.CancelFunc) *Task {
	return &Task{done: make(chan struct{}), cancel: cancel}
}

func (t *Task) complete(quiz *models.Quiz, err error) {
	if err != nil {
		t.result = Result{Err: classifyGenerationError(err)}
	} else {
		t.result = Result{Quiz: quiz}
	}
	t.cancel()
	close(t.done)
}

// Done is closed once Result is available.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Result blocks until the task has finished.
func (t *Task) Result() Result {
	<-t.done
	return t.result
}

func (t *Task) Cancel() {
	t.cancel()
}

func (t *Task) Wait(ctx context.Context) (Result, error) {
	select {
	case <-t.done:
		return t.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
