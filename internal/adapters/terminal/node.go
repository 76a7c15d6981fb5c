package terminal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deltamake/internal/core/ports"
)

// NodeID is the unique identifier for the Terminal Graft node.
const NodeID graft.ID = "adapter.terminal"

func init() {
	graft.Register(graft.Node[ports.Terminal]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.Terminal, error) {
			// Constructed non-verbose; the CLI layer calls SetVerbose on
			// the resolved singleton once flags are parsed.
			return New(false), nil
		},
	})
}
