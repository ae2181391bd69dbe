package commands

import (
	"github.com/colonyops/taskpad/internal/core/config"
	"github.com/colonyops/taskpad/internal/core/task"
)

// App is the shared state commands operate on. main populates it in the
// Before hook; commands hold a pointer to the pre-allocated struct.
type App struct {
	Config *config.Config
	Tasks  *task.Store
}
