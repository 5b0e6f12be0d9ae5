//go:build tools

package tools

// Run `go run github.com/vektra/mockery/v2` from the repository root to
// regenerate pkg/transport/mocks after changing the Transport interface.
import (
	_ "github.com/vektra/mockery/v2"
)
