package differential

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deltamake/internal/core/ports"
)

// NodeID is the unique identifier for the differential Store Graft node.
const NodeID graft.ID = "adapter.differential_store"

func init() {
	graft.Register(graft.Node[ports.DifferentialStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.DifferentialStore, error) {
			return NewStore(), nil
		},
	})
}
