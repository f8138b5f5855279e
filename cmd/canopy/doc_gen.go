//go:build ignore
// +build ignore

package main

import (
	"log"

	canopy "github.com/canopyui/canopy/internal/cli"
	"github.com/spf13/cobra/doc"
)

func main() {
	root := canopy.NewRootCmd()

	if err := doc.GenMarkdownTree(root, "./docs/markdown"); err != nil {
		log.Fatal(err)
	}

	header := &doc.GenManHeader{
		Title:   "CANOPY",
		Section: "1",
	}
	if err := doc.GenManTree(root, header, "./docs/man"); err != nil {
		log.Fatal(err)
	}
}
