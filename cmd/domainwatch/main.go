package main

import (
	"fmt"
	"os"

	"github.com/jmallek/domainwatch/internal/config"
)

func main() {
	if err := config.InitConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	Execute()
}
