package interfaces

import (
	"context"

	domaintypes "clientdesk/internal/domain/types"
)

// ClientLister reads one page of clients from the backend.
type ClientLister interface {
	ListClients(ctx context.Context, page, limit int) (domaintypes.Page, error)
}

// ClientAPI is how we talk to the clients REST backend.
type ClientAPI interface {
	ClientLister

	CreateClient(ctx context.Context, in domaintypes.ClientInput) (domaintypes.Client, error)
	UpdateClient(
		ctx context.Context,
		id domaintypes.ClientID,
		in domaintypes.ClientInput,
	) (domaintypes.Client, error)
	DeleteClient(ctx context.Context, id domaintypes.ClientID) error
}
