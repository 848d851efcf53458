package portrait

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	mu      sync.Mutex
	calls   []string
	failOn  map[string]bool
	emptyOn map[string]bool
}

func (f *fakeGenerator) GeneratePortrait(_ context.Context, description string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, description)
	f.mu.Unlock()

	if f.failOn[description] {
		return "", errors.New("generation exploded")
	}
	if f.emptyOn[description] {
		return "", nil
	}
	return "img://" + description, nil
}

func TestResolveAllPreservesOrder(t *testing.T) {
	gen := &fakeGenerator{}
	r := NewResolver(gen)

	descs := make([]string, 10)
	for i := range descs {
		descs[i] = fmt.Sprintf("suspect-%d", i)
	}

	images := r.ResolveAll(context.Background(), descs)

	require.Len(t, images, 10)
	for i, img := range images {
		assert.Equal(t, "img://"+descs[i], img)
	}
	assert.Len(t, gen.calls, 10)
}

func TestResolveAllIsolatesFailures(t *testing.T) {
	gen := &fakeGenerator{
		failOn:  map[string]bool{"b": true},
		emptyOn: map[string]bool{"d": true},
	}
	r := NewResolver(gen)

	images := r.ResolveAll(context.Background(), []string{"a", "b", "c", "d"})

	require.Len(t, images, 4)
	assert.Equal(t, "img://a", images[0])
	assert.Equal(t, Fallback, images[1])
	assert.Equal(t, "img://c", images[2])
	assert.Equal(t, Fallback, images[3])
}

func TestResolveAllEmptyInput(t *testing.T) {
	r := NewResolver(&fakeGenerator{})

	images := r.ResolveAll(context.Background(), nil)

	assert.Empty(t, images)
}
