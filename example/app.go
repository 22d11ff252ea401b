// Package main provides the retained demo application.
// It shows deferred controller construction surviving widget rebuilds.
package main

import (
	"github.com/go-drift/drift/pkg/core"
)

// App returns the root widget for the retained demo.
func App() core.Widget {
	return SearchPage{}
}
