package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmorell/slidegrid/pkg/pipeline"
	"github.com/tmorell/slidegrid/pkg/slide"
)

// batchCommand creates the batch command for laying out a whole deck.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		outDir  string
		workers int
		noCache bool
	)
	opts := c.engineOptions()

	cmd := &cobra.Command{
		Use:   "batch [input-dir | input.json...]",
		Short: "Compute layouts for a whole deck in parallel",
		Long: `Compute layouts for a whole deck in parallel.

The batch command takes a directory (every *.json input file in it) or an
explicit list of input files, lays out each slide independently with a
bounded worker pool, and writes one <name>.layout.json per input. Slides
that fail are reported but do not stop the batch.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args, opts, outDir, workers, noCache)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "output directory (default: alongside inputs)")
	cmd.Flags().IntVarP(&workers, "workers", "w", pipeline.DefaultBatchWorkers, "parallel layout workers")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	registerEngineFlags(cmd, &opts)

	return cmd
}

// runBatch discovers inputs, runs them through the worker pool, and writes
// the resulting layouts.
func (c *CLI) runBatch(ctx context.Context, args []string, base pipeline.Options, outDir string, workers int, noCache bool) error {
	inputs, err := collectInputs(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files in %s", strings.Join(args, " "))
	}

	optsList := make([]pipeline.Options, 0, len(inputs))
	for _, path := range inputs {
		in, err := slide.ReadInputFile(path)
		if err != nil {
			return err
		}
		opts := base
		opts.Input = in
		opts.Logger = c.Logger
		optsList = append(optsList, opts)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p := newProgress(c.Logger)
	results := runner.Batch(withLogger(ctx, c.Logger), optsList, workers)

	failures := 0
	for _, br := range results {
		path := inputs[br.Index]
		if br.Err != nil {
			failures++
			printError("%s: %v", filepath.Base(path), br.Err)
			continue
		}

		outputPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".layout.json"
		if outDir != "" {
			outputPath = filepath.Join(outDir, filepath.Base(outputPath))
		}
		if err := slide.WriteLayoutFile(br.Result.Layout, outputPath); err != nil {
			failures++
			printError("%s: %v", filepath.Base(path), err)
			continue
		}
		printFile(outputPath)
	}

	p.done(fmt.Sprintf("Laid out %d of %d slides", len(results)-failures, len(results)))
	if failures > 0 {
		return fmt.Errorf("%d of %d slides failed", failures, len(results))
	}
	printSuccess("Batch complete")
	return nil
}

// collectInputs expands directory arguments into their *.json files and keeps
// file arguments as-is. Layout outputs are never picked up as inputs.
func collectInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			inputs = append(inputs, arg)
			continue
		}
		paths, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", arg, err)
		}
		for _, p := range paths {
			if !strings.HasSuffix(p, ".layout.json") {
				inputs = append(inputs, p)
			}
		}
	}
	sort.Strings(inputs)
	return inputs, nil
}
