package loader

import (
	"github.com/nfrund/folio/internal/domain"
	"github.com/nfrund/folio/internal/pubsub"
)

// ProfileEvent is published after a profile was fetched from the network.
type ProfileEvent struct {
	Profile domain.Profile `json:"profile"`
}

// RepositoriesEvent is published after the repository list was fetched from
// the network.
type RepositoriesEvent struct {
	Repositories []domain.Repository `json:"repositories"`
}

var (
	ProfileLoaded      = pubsub.NewEvent[ProfileEvent]("profile.loaded", "A fresh profile was fetched and cached")
	RepositoriesLoaded = pubsub.NewEvent[RepositoriesEvent]("repositories.loaded", "A fresh repository list was fetched and cached")
)

// Metadata values attached to published events.
const (
	MetaSource    = "source"
	SourceNetwork = "network"
)
