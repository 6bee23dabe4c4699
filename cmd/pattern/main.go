// pattern prints quantum random strings following a pattern of digit (D) and
// letter (L) slots, e.g. DDL -> 42q.
package main

import (
	"os"

	"github.com/alan-christopher/qrng/go/internal/cli"
	"github.com/alan-christopher/qrng/go/qrng"
)

func main() {
	c := cli.Command{
		Name:   "pattern",
		Mode:   qrng.ModePattern,
		Rotate: true,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(c.Main(os.Args[1:]))
}
