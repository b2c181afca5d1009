// Command nwdi-cobertura generates Cobertura coverage build files for the
// development components of an NWDI workspace.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/weigo/NWDI-Cobertura-Plugin/internal/cmd"
	oerrors "github.com/weigo/NWDI-Cobertura-Plugin/internal/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cmd.NewRootCmd().Execute()
	if err == nil {
		return oerrors.ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Printed {
		fmt.Fprintln(os.Stderr, err)
	}
	return oerrors.ExitCodeFromError(err)
}
