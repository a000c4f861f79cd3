package domain

import (
	interfaces "clientdesk/internal/domain/interfaces"
	types "clientdesk/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	ClientID    = types.ClientID
	Client      = types.Client
	ClientInput = types.ClientInput
	Page        = types.Page
	FetchState  = types.FetchState
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	KeyValueStore    = interfaces.KeyValueStore
	ClientLister     = interfaces.ClientLister
	ClientAPI        = interfaces.ClientAPI
	SelectionService = interfaces.SelectionService
	SessionService   = interfaces.SessionService
	ClientService    = interfaces.ClientService
	PageController   = interfaces.PageController
)

// Sentinel errors re-exported from the types subpackage.
var (
	ErrNotFound      = types.ErrNotFound
	ErrInvalidClient = types.ErrInvalidClient
)
