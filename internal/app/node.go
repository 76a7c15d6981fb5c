package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/deltamake/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/deltamake/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/deltamake/internal/adapters/terminal" //nolint:depguard // Wired in app layer
	"go.trai.ch/deltamake/internal/core/ports"
	"go.trai.ch/deltamake/internal/engine/scheduler"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			scheduler.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.SolutionLoader](ctx)
			if err != nil {
				return nil, err
			}

			sched, err := graft.Dep[*scheduler.Scheduler](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, sched, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			terminal.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			term, err := graft.Dep[ports.Terminal](ctx)
			if err != nil {
				return nil, err
			}

			return NewComponents(a, log, term), nil
		},
	})
}

func bootstrap() (*Components, error) {
	components, _, err := graft.ExecuteFor[*Components](context.Background())
	return components, err
}
