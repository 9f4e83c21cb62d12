package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/MKhiriev/go-sched/internal/manage"
)

func main() {
	log := logger.NewLogger("manage", os.Getenv("APP_DEBUG") == "true")

	if err := manage.NewRootCommand(log).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
