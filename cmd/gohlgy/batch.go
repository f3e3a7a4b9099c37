package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/plan-systems/klog"

	"github.com/hlgy-systems/gohlgy/gohlgy"
	"github.com/hlgy-systems/gohlgy/libhlgy"
	"github.com/hlgy-systems/gohlgy/libhlgy/catalog"
)

// runBatch loads a JSON graph collection and reports (H0, H1, H2) for
// every graph in it.  A graph that fails to compute is reported in its
// block and counted, but does not stop the batch.
func runBatch(graphsPath, fieldName string, reduce bool, catalogPath, outPath string) int {
	field, err := pickField(fieldName)
	if err != nil {
		klog.Errorf("%v", err)
		return 1
	}

	var (
		catCtx gohlgy.CatalogContext
		cat    libhlgy.Catalog
	)
	if catalogPath != "" {
		catCtx = gohlgy.NewCatalogContext()
		cat, err = catalog.OpenCatalog(catCtx, gohlgy.CatalogOpts{
			DbPathName: catalogPath,
		})
		if err != nil {
			klog.Errorf("failed to open catalog: %v", err)
			return 1
		}
	}

	stream, err := libhlgy.StreamCollection(graphsPath, libhlgy.GraphOpts{})
	if err != nil {
		klog.Errorf("failed to load %q: %v", graphsPath, err)
		return 1
	}

	out := &echoToWriter{
		stdout: os.Stdout,
	}
	if outPath != "" {
		file, err := os.OpenFile(outPath, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			klog.Errorf("failed to open %q: %v", outPath, err)
			return 1
		}
		out.to = file
	}

	if reduce {
		stream = stream.Reduce()
	}
	stream = stream.ComputeHomology(field, cat)
	if cat != nil && !cat.IsReadOnly() {
		stream = stream.AddTo(cat)
	}

	opts := libhlgy.DefaultPrintOpts
	opts.Field = field
	stream = stream.Print(out, opts)

	numGraphs := 0
	numFailed := 0
	for X := stream.PullGraph(); X != nil; X = stream.PullGraph() {
		numGraphs++
		if X.HomologyErr() != nil {
			numFailed++
		}
		X.Reclaim()
	}

	if catCtx != nil {
		catCtx.Close()
		<-catCtx.Done()
	}

	klog.Infof("processed %d graphs over %v, %d failed", numGraphs, field, numFailed)
	if numFailed > 0 {
		return 1
	}
	return 0
}

func pickField(fieldName string) (gohlgy.Field, error) {
	if fieldName == "" {
		fmt.Print("Compute homology over Q or Z/2? (q/2): ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return gohlgy.Rational, err
		}
		// only an explicit "2" answer selects Z/2
		if strings.TrimSpace(line) == "2" {
			return gohlgy.GF2, nil
		}
		return gohlgy.Rational, nil
	}
	field, err := gohlgy.ParseField(fieldName)
	if err != nil {
		return field, fmt.Errorf("unknown coefficient field %q", fieldName)
	}
	return field, nil
}

type echoToWriter struct {
	stdout *os.File
	to     io.WriteCloser
}

func (echo *echoToWriter) Write(buf []byte) (int, error) {
	if echo.to == nil {
		return echo.stdout.Write(buf)
	}
	return echo.to.Write(buf)
}

func (echo *echoToWriter) Close() error {
	if echo.to != nil {
		return echo.to.Close()
	}
	return nil
}
