package match

import "context"

// Repository describes match persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, m Match) (Match, error)
	List(ctx context.Context, filter ListFilter) ([]Match, error)
	GetByID(ctx context.Context, matchID int64) (Match, bool, error)
	Update(ctx context.Context, matchID int64, changes Update) (Match, bool, error)
}
