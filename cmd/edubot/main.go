package main

import (
	"os"

	"github.com/edubot/edubot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
