package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/driftscan/driftscan/cmd/driftscan/commands"
	drifterrors "github.com/driftscan/driftscan/internal/errors"
)

func main() {
	code, err := commands.Execute()
	if err != nil {
		var de *drifterrors.DriftError
		if errors.As(err, &de) {
			fmt.Fprint(os.Stderr, de.Display())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(2)
	}
	os.Exit(code)
}
