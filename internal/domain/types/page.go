package types

import "slices"

// Page is one page of the client listing.
type Page struct {
	Clients     []Client `json:"clients"`
	TotalPages  int      `json:"totalPages"`
	CurrentPage int      `json:"currentPage"`
}

// FetchState is what the page controller publishes to the UI.
//
// While IsLoading is true Error is empty. After a failed fetch Clients is
// empty and TotalPages and CurrentPage are both 1.
type FetchState struct {
	Clients     []Client
	IsLoading   bool
	Error       string
	TotalPages  int
	CurrentPage int
}

// Clone returns a copy of s that shares no memory with it.
func (s FetchState) Clone() FetchState {
	s.Clients = slices.Clone(s.Clients)
	if s.Clients == nil {
		s.Clients = []Client{}
	}
	return s
}
