// cmd/website/main.go
package main

import (
	"context"

	"github.com/dalemusser/waffle/app"

	"github.com/tanneryworkspace/website/internal/app/bootstrap"
)

func main() {
	app.Run(context.Background(), bootstrap.Hooks)
}
