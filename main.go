// DatLe survey insights API.
package main

import (
	"fmt"
	"os"

	"github.com/datle/datle-api/internal/bootstrap"
)

func main() {
	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
