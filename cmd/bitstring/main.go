// bitstring prints a quantum random bitstring and, optionally, a histogram of
// many such draws.
package main

import (
	"os"

	"github.com/alan-christopher/qrng/go/internal/cli"
	"github.com/alan-christopher/qrng/go/qrng"
)

func main() {
	c := cli.Command{
		Name:   "bitstring",
		Mode:   qrng.ModeBitstring,
		Rotate: false,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(c.Main(os.Args[1:]))
}
