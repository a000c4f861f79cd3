package interfaces

import (
	"context"

	domaintypes "clientdesk/internal/domain/types"
)

// SelectionService keeps the persisted shortlist of selected clients.
type SelectionService interface {
	Add(client domaintypes.Client) error
	Remove(id domaintypes.ClientID) error
	Clear() error
	Clients() []domaintypes.Client
	Contains(id domaintypes.ClientID) bool
	Len() int
}

// SessionService keeps the persisted login name.
type SessionService interface {
	Login(name string) error
	Logout() error
	Name() (string, bool)
}

// ClientService validates and forwards client mutations to the backend.
type ClientService interface {
	Create(ctx context.Context, in domaintypes.ClientInput) (domaintypes.Client, error)
	Update(
		ctx context.Context,
		id domaintypes.ClientID,
		in domaintypes.ClientInput,
	) (domaintypes.Client, error)
	Delete(ctx context.Context, id domaintypes.ClientID) error
}

// PageController exposes the paginated listing to a UI.
type PageController interface {
	Configure(ctx context.Context, page, limit int) (domaintypes.FetchState, error)
	Refetch(ctx context.Context) error
	State() domaintypes.FetchState
	Params() (page, limit int)
	Subscribe(fn func(domaintypes.FetchState)) (cancel func())
	Wait()
}
