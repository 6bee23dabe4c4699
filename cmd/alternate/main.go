// alternate prints a quantum random string of alternating digits and letters,
// e.g. 3k9a0z.
package main

import (
	"os"

	"github.com/alan-christopher/qrng/go/internal/cli"
	"github.com/alan-christopher/qrng/go/qrng"
)

func main() {
	c := cli.Command{
		Name:   "alternate",
		Mode:   qrng.ModeAlternating,
		Rotate: false,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(c.Main(os.Args[1:]))
}
