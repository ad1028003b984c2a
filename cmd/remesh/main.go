package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"rematching/pkg/config"
	"rematching/pkg/mesh"
	"rematching/pkg/remesh"
	"rematching/pkg/sparse"
)

func main() {
	output := flag.String("output", "", "Output mesh path (default: input base name in the working directory)")
	doResample := flag.Bool("resample", false, "Upsample sparse inputs before remeshing")
	doEvaluate := flag.Bool("evaluate", false, "Report Hausdorff/Chamfer and triangle statistics")
	cfgPath := flag.String("config", "", "YAML config file (flags override its values)")
	flag.Usage = usage
	flag.Parse()

	cfg := &config.Remesh{}
	if *cfgPath != "" {
		loaded, err := config.LoadRemesh(*cfgPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if flag.NArg() > 0 {
		cfg.InputMesh = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		n, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatalf("Invalid sample count %q", flag.Arg(1))
		}
		cfg.NumSamples = n
	}
	if *output != "" {
		cfg.OutMesh = *output
	}
	if *doResample {
		cfg.Resampling = true
	}
	if *doEvaluate {
		cfg.Evaluate = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}
	if cfg.OutMesh == "" {
		cfg.OutMesh = filepath.Base(cfg.InputMesh)
	}

	start := time.Now()

	log.Printf("Loading mesh %s...", cfg.InputMesh)
	m, err := mesh.Load(cfg.InputMesh)
	if err != nil {
		log.Fatalf("Cannot load mesh: %v", err)
	}
	log.Printf("Loaded %d vertices, %d triangles", m.NumVertices(), m.NumTriangles())

	log.Printf("Remeshing to %d vertices...", cfg.NumSamples)
	res, err := remesh.Remesh(m, remesh.Options{
		Samples:  cfg.NumSamples,
		Resample: cfg.Resampling,
		Evaluate: cfg.Evaluate,
	})
	if err != nil {
		log.Fatalf("Remeshing failed: %v", err)
	}
	if cfg.Resampling {
		log.Printf("Resampled input to %d vertices", res.ResampledVertices)
	}
	log.Printf("Connected components: %d", res.NumComponents)
	if res.Unreachable > 0 {
		log.Printf("Unreachable vertices: %d", res.Unreachable)
	}
	log.Printf("Low-res mesh: %d vertices, %d triangles", res.Low.NumVertices(), res.Low.NumTriangles())
	if res.Low.NumTriangles() == 0 {
		log.Printf("Sampling density not enough to capture any face; maybe too many connected components?")
	}

	log.Printf("Exporting mesh to %s...", cfg.OutMesh)
	if err := mesh.Save(cfg.OutMesh, res.Low); err != nil {
		log.Fatalf("Cannot write mesh: %v", err)
	}

	wmapPath := stripExt(cfg.OutMesh) + ".mtx"
	log.Printf("Exporting weight map to %s...", wmapPath)
	if err := writeWeightMap(wmapPath, res.Weights); err != nil {
		log.Fatalf("Cannot write weight map: %v", err)
	}
	if err := sparse.WriteBinary(stripExt(cfg.OutMesh)+".bin", res.Weights); err != nil {
		log.Fatalf("Cannot write binary weight map: %v", err)
	}

	if res.Metrics != nil {
		mt := res.Metrics
		log.Printf("Hausdorff distance: %g", mt.Hausdorff)
		log.Printf("Chamfer distance:   %g", mt.Chamfer)
		log.Printf("Triangle area: min %g max %g avg %g std %g", mt.MinArea, mt.MaxArea, mt.AvgArea, mt.StdArea)
		log.Printf("Triangle quality: min %g max %g avg %g std %g", mt.MinQuality, mt.MaxQuality, mt.AvgQuality, mt.StdQuality)
	}

	log.Printf("Done in %s", time.Since(start).Round(time.Millisecond))
}

func writeWeightMap(path string, w *sparse.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sparse.WriteMatrixMarket(f, w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func stripExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, `
%s usage:

	%s [flags] input_mesh num_samples
	%s -config config.yaml

Arguments:
	input_mesh   mesh file to process (.obj, .off or .stl)
	num_samples  target size of the output mesh

Flags:
`, prog, prog, prog)
	flag.PrintDefaults()
}
