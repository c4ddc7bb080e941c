// Standalone mock endoflife.date API for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/eoltracker serve -c example/config.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/jpalmerr/eoltracker/example/mockapi"
)

func main() {
	addr := flag.String("addr", ":9999", "listen address")
	flap := flag.Bool("flap", true, "alternate between healthy and 503 outage phases")
	flag.Parse()

	fmt.Printf("Mock endoflife.date API starting on %s\n", *addr)
	fmt.Println("Products: ubuntu (22.04, 24.04), nodejs (16, 20)")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	if err := http.ListenAndServe(*addr, mockapi.New(slog.Default(), *flap)); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
