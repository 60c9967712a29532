package audit

import "context"

type Repository interface {
	Create(ctx context.Context, e Entry) error
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}

type ListFilter struct {
	Kind  Kind // vacío = todos
	Limit int
}
