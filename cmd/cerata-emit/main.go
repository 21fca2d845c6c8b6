// Command cerata-emit builds the demo pipeline design and writes its
// generated VHDL, one file per unique component, to an output directory
// (or to stdout when none is given).
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	core "cerata/cerata"
	"cerata/examples"
	"cerata/vhdl"
)

func main() {
	outDir := flag.String("out", "", "directory to write <component>.gen.vhd files into (default: stdout)")
	entity := flag.Bool("entity", true, "render the top component as an entity rather than a component")
	flag.Parse()

	ctx := core.NewContext()
	top, err := examples.BuildPipeline(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "build design:", err)
		os.Exit(1)
	}

	cfg := vhdl.DefaultConfig()
	cfg.EntityMode = *entity
	reg := vhdl.NewTypeRegistry()

	files, err := vhdl.Design(ctx, top, cfg, reg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "emit VHDL:", err)
		os.Exit(1)
	}

	if *outDir == "" {
		for name, text := range files {
			fmt.Printf("-- %s.gen.vhd\n%s\n", name, text)
		}
		return
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "create output dir:", err)
		os.Exit(1)
	}
	for name, text := range files {
		path := filepath.Join(*outDir, name+".gen.vhd")
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "write", path, ":", err)
			os.Exit(1)
		}
	}
}
