package clienterror

import "context"

// Repository persists client error reports.
type Repository interface {
	Save(ctx context.Context, report Report) error
}
