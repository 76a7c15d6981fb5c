// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/deltamake/internal/adapters/config"
	_ "go.trai.ch/deltamake/internal/adapters/differential"
	_ "go.trai.ch/deltamake/internal/adapters/logger"
	_ "go.trai.ch/deltamake/internal/adapters/terminal"
	// Register app and engine nodes.
	_ "go.trai.ch/deltamake/internal/app"
	_ "go.trai.ch/deltamake/internal/engine/scheduler"
)
