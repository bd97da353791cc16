// Command polyform canonicalizes polynomial equations.
//
// Usage:
//
//	polyform simplify "x^2 + 3.5xy + y = y^2 - xy + y"
//	polyform repl
//	polyform file equations.txt [--watch]
//	polyform serve --addr :8080
package main

import (
	"os"

	"github.com/njchilds90/gopoly/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
