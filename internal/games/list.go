package games

import (
	"github.com/hyun090116/vortex-game-explorer/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the catalog endpoint.
type ListFilters struct {
	Query    string `json:"q,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Featured *bool  `json:"featured,omitempty"`
}

// ListGamesInput captures the inputs needed to paginate/filter the catalog.
type ListGamesInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}
