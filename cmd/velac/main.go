// Command velac is the minimal CLI front end over pkg/vela: read a
// source file, analyze it, print diagnostics, exit non-zero on error.
// Follows funvibe/funxy's cmd/funxy → pkg/cli delegation shape — all
// real logic lives in internal/*, this file only wires flags and I/O.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/velalang/vela/internal/config"
	"github.com/velalang/vela/pkg/vela"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, "usage: velac [-config vela.yaml] <file>")
		return 2
	}

	cfgPath := ""
	var fileArgs []string
	for i := 0; i < len(args); i++ {
		if args[i] == "-config" && i+1 < len(args) {
			cfgPath = args[i+1]
			i++
			continue
		}
		fileArgs = append(fileArgs, args[i])
	}
	if len(fileArgs) != 1 {
		fmt.Fprintln(stderr, "usage: velac [-config vela.yaml] <file>")
		return 2
	}
	fileName := fileArgs[0]

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(stderr, "velac: loading %s: %v\n", cfgPath, err)
			return 2
		}
		cfg = loaded
	}

	src, err := os.ReadFile(fileName)
	if err != nil {
		fmt.Fprintf(stderr, "velac: %v\n", err)
		return 2
	}

	unit := vela.AnalyzeWithConfig(string(src), fileName, cfg)
	unit.Diagnostics.Print(stdout)
	fmt.Fprintln(stdout, unit.Diagnostics.Summary())

	if unit.Diagnostics.HasErrors() || unit.TypedModule == nil {
		return 1
	}
	return 0
}
