// censusflat flattens nested census exports into simple record/person JSON
package main

import (
	"fmt"
	"os"

	"github.com/ppiankov/censusflat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
