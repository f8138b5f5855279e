package main

import (
	"log"

	"github.com/canopyui/canopy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		log.Fatal(err)
	}
}
