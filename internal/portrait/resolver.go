// Package portrait resolves generated character portraits, falling back to
// a stock avatar when generation fails.
package portrait

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"expediente/internal/logger"
)

// Fallback avatar used whenever a single portrait cannot be generated.
const Fallback = "https://i.pinimg.com/1200x/7c/3c/97/7c3c978ebca761862373cdc8e776f5ec.jpg"

// Narrator portrait is fixed and never requested from the service.
const Narrator = "https://preview.redd.it/what-is-your-c-ai-pfp-ill-go-first-v0-19dlqdqksggb1.jpg?width=1080&crop=smart&auto=webp&s=2d56f7565ed5d404454a1d47a2535c69f525158c"

// Generator is the single service call the resolver needs.
type Generator interface {
	GeneratePortrait(ctx context.Context, description string) (string, error)
}

type Resolver struct {
	gen      Generator
	fallback string
	log      *logger.Log
}

func NewResolver(gen Generator) *Resolver {
	return &Resolver{
		gen:      gen,
		fallback: Fallback,
		log:      logger.New(),
	}
}

// ResolveAll requests one portrait per description concurrently and returns
// the references in input order. A failed or empty result at position i
// becomes the fallback at position i; the batch itself never fails.
func (r *Resolver) ResolveAll(ctx context.Context, descriptions []string) []string {
	images := make([]string, len(descriptions))

	g := new(errgroup.Group)
	for i, desc := range descriptions {
		i, desc := i, desc
		g.Go(func() error {
			img, err := r.gen.GeneratePortrait(ctx, desc)
			if err != nil || img == "" {
				r.log.WithError(err).Warn(fmt.Sprintf("portrait generation failed, using fallback [index:%d]", i))
				images[i] = r.fallback
				return nil
			}
			images[i] = img
			return nil
		})
	}
	_ = g.Wait()

	return images
}
