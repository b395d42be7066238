package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/xyproto/env/v2"

	"loomrt/internal/emit"
)

// Seams for tests.
var (
	exitFn     = os.Exit
	assembleFn = emit.Assemble
)

func main() {
	exitFn(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

// runCLI generates the runtime assembly per the given arguments and returns
// a process exit code. Defaults honor the LOOMRT_OUT, LOOMRT_OBJ and
// LOOMRT_PREFIX environment variables.
func runCLI(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("loomrt", flag.ContinueOnError)
	fs.SetOutput(stderr)
	outPath := fs.String("o", env.Str("LOOMRT_OUT", "loom_rt.s"), "assembly output path")
	objPath := fs.String("obj", env.Str("LOOMRT_OBJ", ""), "also assemble into this object file")
	prefix := fs.String("prefix", env.Str("LOOMRT_PREFIX", emit.DefaultPrefix), "exported symbol prefix")
	toStdout := fs.Bool("stdout", false, "write the assembly to stdout instead of a file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(stderr, "Usage: loomrt [-o FILE] [-obj FILE] [-prefix P] [-stdout]\n")
		return 2
	}
	if !emit.ValidPrefix(*prefix) {
		fmt.Fprintf(stderr, "Error: invalid symbol prefix %q\n", *prefix)
		return 1
	}

	asm := emit.NewWithPrefix(*prefix).Generate()

	if *toStdout {
		fmt.Fprint(stdout, asm)
	} else {
		if err := os.WriteFile(*outPath, []byte(asm), 0o644); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote runtime to: %s\n", *outPath)
	}

	if *objPath != "" {
		if err := assembleFn(asm, *objPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Assembled to: %s\n", *objPath)
	}
	return 0
}
