package main

import (
	"flag"
	"os"

	"github.com/plan-systems/klog"
)

func main() {

	flag.Set("logtostderr", "true")
	flag.Set("v", "2")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	graphsPath := flag.String("graphs", "", "JSON graph collection to batch process")
	fieldName := flag.String("field", "", "coefficient field, q or 2 (prompts when empty)")
	reduce := flag.Bool("reduce", false, "reduce each graph by neighborhood domination first")
	catalogPath := flag.String("catalog", "", "catalog db for reusing and recording results")
	outPath := flag.String("out", "", "write the report to this file instead of stdout")

	flag.Parse()

	if *graphsPath != "" {
		code := runBatch(*graphsPath, *fieldName, *reduce, *catalogPath, *outPath)
		klog.Flush()
		os.Exit(code)
	}

	pathname := flag.Arg(0)
	go_gpython(pathname)

	klog.Flush()
}
