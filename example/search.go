package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-drift/drift/pkg/core"
	"github.com/go-drift/drift/pkg/platform"
	"github.com/go-drift/drift/pkg/widgets"

	"github.com/go-drift/retained/pkg/retained"
)

// SearchController is a deliberately "expensive" stateful controller.
// It exists to show that construction happens once, on first use, and
// that the same instance is mutated across rebuilds.
type SearchController struct {
	Results []string
	closed  bool
}

func NewSearchController() *SearchController {
	log.Println("search controller constructed")
	return &SearchController{}
}

// Lookup simulates a slow backend query.
func (c *SearchController) Lookup(ctx context.Context, query string) ([]string, error) {
	select {
	case <-time.After(300 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return []string{query + " (remote hit)"}, nil
}

func (c *SearchController) Dispose() {
	c.closed = true
	log.Println("search controller disposed")
}

// SearchPage demonstrates a deferred controller slot.
type SearchPage struct{}

func (p SearchPage) CreateElement() core.Element {
	return core.NewStatefulElement(p, nil)
}

func (p SearchPage) Key() any {
	return nil
}

func (p SearchPage) CreateState() core.State {
	return &searchPageState{}
}

type searchPageState struct {
	core.StateBase
	search   *retained.Owner[*SearchController]
	loading  bool
	rebuilds int
}

func (s *searchPageState) InitState() {
	// Nothing is constructed here. The controller is built on the first
	// tap that touches it and survives every rebuild after that; it is
	// disposed with this state, and only if it was ever built.
	s.search = retained.Use(&s.StateBase, NewSearchController)
}

func (s *searchPageState) Build(ctx core.BuildContext) core.Widget {
	s.rebuilds++

	status := "controller: not built"
	if s.search.Built() {
		status = fmt.Sprintf("controller: built, %d results", len(s.search.Value().Results))
	}

	return widgets.Centered(widgets.ColumnOf(
		widgets.MainAxisAlignmentCenter,
		widgets.CrossAxisAlignmentCenter,
		widgets.MainAxisSizeMin,
		widgets.Text{Content: fmt.Sprintf("rebuild #%d", s.rebuilds)},
		widgets.VSpace(8),
		widgets.Text{Content: status},
		widgets.VSpace(16),
		widgets.ButtonOf("Rebuild only", func() {
			// Rebuilds the whole value-type widget tree without
			// constructing the controller.
			s.SetState(nil)
		}),
		widgets.VSpace(8),
		widgets.ButtonOf("Record a result", func() {
			s.SetState(func() {
				s.search.Mutate(func(c *SearchController) {
					c.Results = append(c.Results, "local result")
				})
			})
		}),
		widgets.VSpace(8),
		s.searchButton(),
	))
}

func (s *searchPageState) searchButton() core.Widget {
	label := "Search (async)"
	if s.loading {
		label = "Searching..."
	}
	return widgets.ButtonOf(label, func() {
		if s.loading {
			// Keep at most one WithUnsafe call in flight per owner.
			return
		}
		s.SetState(func() { s.loading = true })
		go func() {
			// The live controller crosses the goroutine boundary
			// here; the loading flag keeps this call exclusive.
			results, err := retained.WithUnsafe(context.Background(), s.search,
				func(ctx context.Context, c *SearchController) ([]string, error) {
					return c.Lookup(ctx, "drift")
				})
			platform.Dispatch(func() {
				s.SetState(func() {
					s.loading = false
					if err != nil {
						log.Printf("search failed: %v", err)
						return
					}
					s.search.Value().Results = append(s.search.Value().Results, results...)
				})
			})
		}()
	})
}
