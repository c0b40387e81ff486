package player

import "context"

// Repository describes the read/create side of player persistence. The
// mutation paths that carry auction invariants (purchase, reset, generic
// update) live behind the auction repository.
type Repository interface {
	Create(ctx context.Context, p Player) (Player, error)
	List(ctx context.Context, filter ListFilter) ([]Player, error)
	GetByID(ctx context.Context, playerID int64) (Player, bool, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
}
