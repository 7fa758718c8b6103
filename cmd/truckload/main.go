// Truckload — Truck Loading Optimizer Core CLI demonstrator
//
// A thin command-line wrapper around the truckload library: it loads a
// manifest (JSON, CSV, or Excel), runs Optimize, and writes the export
// artifacts into the -out directory. It exists to exercise the library end to end; the
// library itself has no CLI, file, or network surface (see the root
// package doc).
//
// Build:
//   go build -o truckload ./cmd/truckload
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fleetpack/truckload/internal/export"
	"github.com/fleetpack/truckload/internal/manifest"
	"github.com/fleetpack/truckload/internal/model"

	truckload "github.com/fleetpack/truckload"
)

// manifestFile is the on-disk JSON shape accepted directly by -manifest
// when it ends in .json: a truck plus its boxes in one file.
type manifestFile struct {
	Truck model.TruckDimensions `json:"truck"`
	Boxes []model.Box           `json:"boxes"`
}

type consoleProgress struct{}

func (consoleProgress) OnProgress(fraction float64, placedCount int) {
	fmt.Fprintf(os.Stderr, "\rpacking: %3.0f%% (%d placed)", fraction*100, placedCount)
}

func main() {
	manifestPath := flag.String("manifest", "", "path to a manifest file (.json, .csv, or .xlsx)")
	outDir := flag.String("out", ".", "directory to write export artifacts into")
	configPath := flag.String("config", "", "optional OptimizerConfig JSON file (defaults applied otherwise)")
	truckFlag := flag.String("truck", "", "truck dimensions as width,length,height (required for .csv/.xlsx manifests, which carry no truck block)")
	quiet := flag.Bool("quiet", false, "suppress progress output")
	flag.Parse()

	if *manifestPath == "" {
		log.Fatal("missing -manifest")
	}

	truck, boxes, err := loadManifest(*manifestPath)
	if err != nil {
		log.Fatalf("load manifest: %v", err)
	}

	if truck == (model.TruckDimensions{}) {
		if *truckFlag == "" {
			log.Fatalf("manifest %q carries no truck dimensions; pass -truck width,length,height", *manifestPath)
		}
		truck, err = parseTruckFlag(*truckFlag)
		if err != nil {
			log.Fatalf("parse -truck: %v", err)
		}
	}

	cfg := model.DefaultConfig()
	if *configPath != "" {
		cfg, err = loadConfig(*configPath, cfg)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
	}
	if !*quiet {
		cfg.Observer = consoleProgress{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	start := time.Now()
	result, err := truckload.Optimize(ctx, boxes, truck, cfg)
	if !*quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		log.Fatalf("optimize: %v", err)
	}

	fmt.Printf("placed %d/%d boxes in %s (stability=%.0f safety=%.0f utilization=%.0f)\n",
		len(result.Placed), len(result.Placed)+len(result.Unplaced), time.Since(start),
		result.Scores.Stability, result.Scores.Safety, result.Scores.Utilization)

	if err := writeArtifacts(*outDir, result, truck); err != nil {
		log.Fatalf("write artifacts: %v", err)
	}
}

func loadManifest(path string) (model.TruckDimensions, []model.Box, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return model.TruckDimensions{}, nil, err
		}
		var mf manifestFile
		if err := json.Unmarshal(data, &mf); err != nil {
			return model.TruckDimensions{}, nil, err
		}
		return mf.Truck, mf.Boxes, nil
	case ".csv":
		result := manifest.ImportCSV(path)
		return model.TruckDimensions{}, result.Boxes, firstError(result.Errors)
	case ".xlsx":
		result := manifest.ImportExcel(path)
		return model.TruckDimensions{}, result.Boxes, firstError(result.Errors)
	default:
		return model.TruckDimensions{}, nil, fmt.Errorf("unsupported manifest extension %q", filepath.Ext(path))
	}
}

// parseTruckFlag parses the -truck flag's "width,length,height" form.
func parseTruckFlag(s string) (model.TruckDimensions, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return model.TruckDimensions{}, fmt.Errorf("expected width,length,height, got %q", s)
	}
	dims := make([]float64, 3)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return model.TruckDimensions{}, fmt.Errorf("invalid dimension %q: %w", p, err)
		}
		dims[i] = v
	}
	return model.TruckDimensions{Width: dims[0], Length: dims[1], Height: dims[2]}, nil
}

func firstError(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(errs, "; "))
}

func loadConfig(path string, fallback model.OptimizerConfig) (model.OptimizerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fallback, err
	}
	cfg := fallback
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fallback, err
	}
	return cfg, nil
}

func writeArtifacts(dir string, result model.PlacementResult, truck model.TruckDimensions) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := export.ManifestPDF(filepath.Join(dir, "manifest.pdf"), result, truck); err != nil {
		return fmt.Errorf("manifest pdf: %w", err)
	}
	if len(result.Placed) > 0 {
		if err := export.BoxLabels(filepath.Join(dir, "labels.pdf"), result.Placed); err != nil {
			return fmt.Errorf("box labels: %w", err)
		}
	}
	if err := export.LoadSequenceWorkbook(filepath.Join(dir, "sequence.xlsx"), result.LoadingSequence); err != nil {
		return fmt.Errorf("sequence workbook: %w", err)
	}
	if err := export.FloorPlanDXF(filepath.Join(dir, "floorplan.dxf"), result.Placed, truck); err != nil {
		return fmt.Errorf("floor plan dxf: %w", err)
	}
	return nil
}
