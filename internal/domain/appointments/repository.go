package appointments

import "context"

type Repository interface {
	Create(ctx context.Context, p Payload) error
}
