package game

import (
	"context"

	"expediente/internal/api"
)

// Service is the remote reasoning surface the session depends on.
// *api.Client satisfies it; tests inject stubs.
type Service interface {
	StartGame(ctx context.Context) (*api.Game, error)
	AskNarrator(ctx context.Context, req *api.NarratorRequest) (*api.NarratorResponse, error)
	AskSuspect(ctx context.Context, req *api.SuspectRequest) (string, error)
}

// PortraitResolver produces one image reference per description,
// preserving order.
type PortraitResolver interface {
	ResolveAll(ctx context.Context, descriptions []string) []string
}
