package handler

import (
	"context"

	"baby-tracker-go/internal/domain/identity"
	"baby-tracker-go/internal/domain/invites"
	"baby-tracker-go/internal/domain/membership"
	"baby-tracker-go/internal/domain/weights"
	"baby-tracker-go/internal/invitelink"
	"baby-tracker-go/pkg/logger"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handlers struct {
	Identity *identity.Service
	Babies   *membership.Service
	Weights  *weights.Service
	Invites  *invites.Service
	Links    *invitelink.Builder
	DB       Pinger
	log      logger.Logger
}

func New(identityService *identity.Service, babies *membership.Service, weightsService *weights.Service, invitesService *invites.Service, links *invitelink.Builder, db Pinger, log logger.Logger) *Handlers {
	return &Handlers{
		Identity: identityService,
		Babies:   babies,
		Weights:  weightsService,
		Invites:  invitesService,
		Links:    links,
		DB:       db,
		log:      log,
	}
}
