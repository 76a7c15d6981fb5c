package scheduler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deltamake/internal/adapters/shell"
	"go.trai.ch/deltamake/internal/adapters/terminal"
	"go.trai.ch/deltamake/internal/core/domain"
	"go.trai.ch/deltamake/internal/core/ports"
)

// NodeID is the unique identifier for the Scheduler Graft node.
const NodeID graft.ID = "engine.scheduler"

func init() {
	graft.Register(graft.Node[*Scheduler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{terminal.NodeID},
		Run: func(ctx context.Context) (*Scheduler, error) {
			term, err := graft.Dep[ports.Terminal](ctx)
			if err != nil {
				return nil, err
			}
			return New(term, func() domain.ProcessRunner { return shell.NewRunner() }), nil
		},
	})
}
