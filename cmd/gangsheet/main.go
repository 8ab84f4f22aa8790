// GangSheet - DTF Gang Sheet Builder
//
// Trims, scales and packs artwork onto a DTF film roll and writes a layout
// proof, cut labels, a DXF cut file and a placement manifest.
//
// Build:
//   go build -o gangsheet ./cmd/gangsheet
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o gangsheet.exe ./cmd/gangsheet
//   GOOS=darwin  GOARCH=arm64 go build -o gangsheet-darwin ./cmd/gangsheet

package main

import (
	"os"

	"github.com/piwi3910/GangSheet/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
