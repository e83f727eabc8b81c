package core_test

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/katalvlaran/cfpq/core"
)

// TestGraph_ConcurrentAddEdge checks that parallel writers never collide on
// edge IDs and that label counts stay consistent.
func TestGraph_ConcurrentAddEdge(t *testing.T) {
	const writers, perWriter = 8, 50
	g := core.NewGraph()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				_, _ = g.AddEdge("v"+strconv.Itoa(w), "v"+strconv.Itoa(i%writers), "l"+strconv.Itoa(w%2))
			}
		}(w)
	}
	wg.Wait()

	edges := g.Edges()
	assert.Len(t, edges, writers*perWriter)
	seen := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		seen[e.ID] = struct{}{}
	}
	assert.Len(t, seen, writers*perWriter)
	assert.Equal(t, []string{"l0", "l1"}, g.Labels())
}

// TestGraph_ConcurrentReaders runs read-only queries in parallel with each other.
func TestGraph_ConcurrentReaders(t *testing.T) {
	g := core.NewGraph()
	for i := 0; i < 20; i++ {
		_, _ = g.AddEdge(strconv.Itoa(i), strconv.Itoa((i+1)%20), "a")
	}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for r := 0; r < 16; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = g.Vertices()
			_ = g.Labels()
			if _, err := g.EdgesFrom("0"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
