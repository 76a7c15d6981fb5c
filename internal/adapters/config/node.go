package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deltamake/internal/adapters/differential"
	"go.trai.ch/deltamake/internal/adapters/logger"
	"go.trai.ch/deltamake/internal/adapters/terminal"
	"go.trai.ch/deltamake/internal/core/ports"
)

// NodeID is the unique identifier for the solution Loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.SolutionLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{terminal.NodeID, logger.NodeID, differential.NodeID},
		Run: func(ctx context.Context) (ports.SolutionLoader, error) {
			term, err := graft.Dep[ports.Terminal](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			diffStore, err := graft.Dep[ports.DifferentialStore](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(term, log, diffStore), nil
		},
	})
}
