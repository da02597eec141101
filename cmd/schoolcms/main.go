// Command schoolcms runs the school content management backend.
//
// All lifecycle work (config loading, MongoDB connection, index and seed
// setup, background workers, the HTTP handler, graceful shutdown) is wired
// through the WAFFLE hooks in internal/app/bootstrap.
package main

import (
	"context"

	"github.com/dalemusser/waffle/app"

	"github.com/ydpps/schoolcms/internal/app/bootstrap"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
