// cmd/stridedash/main.go
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dalemusser/stridedash/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		fmt.Fprintln(os.Stderr, "stridedash:", err)
		os.Exit(1)
	}
}
