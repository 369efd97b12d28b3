// Command sdlayout prints the binary layout of the SDF text pipeline records
// and the matching WGSL declaration.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/gogpu/sdfont/layout"
	"github.com/gogpu/sdfont/sdf"
	"github.com/gogpu/sdfont/shader"
	"github.com/gogpu/sdfont/uniform"
	"github.com/gogpu/sdfont/vertex"
)

func main() {
	var (
		wgsl  = flag.Bool("wgsl", false, "print the WGSL declaration")
		spirv = flag.Bool("spirv", false, "compile the WGSL declaration and report the SPIR-V size")
	)
	flag.Parse()

	records := []layout.Record{vertex.Record, uniform.InstanceRecord, uniform.SceneRecord, sdf.Record}
	if err := layout.ValidateAll(records...); err != nil {
		log.Fatalf("Invalid layout: %v", err)
	}

	if err := printRecords(os.Stdout, records); err != nil {
		log.Fatalf("Failed to print: %v", err)
	}
	printFunctions(os.Stdout)

	if *wgsl {
		fmt.Println()
		fmt.Print(shader.Source())
	}
	if *spirv {
		words, err := shader.CompileSPIRV()
		if err != nil {
			log.Fatalf("Failed to compile: %v", err)
		}
		log.Printf("SPIR-V: %d words\n", len(words))
	}
}

func printRecords(w io.Writer, records []layout.Record) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, r := range records {
		fmt.Fprintf(tw, "%s\tsize %d\tstride %d\talign %d\n", r.Name, r.Size, r.Stride, r.Align)
		for _, f := range r.Fields {
			fmt.Fprintf(tw, "  %s\t@%d\t%d bytes\talign %d\n", f.Name, f.Offset, f.Size, f.Align)
		}
		for _, s := range r.Reserved {
			fmt.Fprintf(tw, "  (reserved)\t@%d\t%d bytes\t\n", s.Offset, s.Size)
		}
	}
	return tw.Flush()
}

func printFunctions(w io.Writer) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SDFontFunctionType")
	for _, f := range sdf.FunctionTypes() {
		fmt.Fprintf(w, "  %d %s\n", int32(f), f)
	}
}
