package quiz

import (
	"context"
	"errors"
)

var ErrQuestionNotFound = errors.New("question not found")

type ListOpts struct {
	Author string
	Limit  int
	Offset int
}

type Store interface {
	Create(ctx context.Context, q Question) (Question, error)
	Update(ctx context.Context, id string, q Question) (Question, error)
	Get(ctx context.Context, id string) (Question, error)
	List(ctx context.Context, opts ListOpts) ([]Question, error)
}
