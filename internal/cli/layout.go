package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tmorell/slidegrid/pkg/pipeline"
	"github.com/tmorell/slidegrid/pkg/slide"
)

// layoutCommand creates the layout command for computing one slide layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := c.engineOptions()

	cmd := &cobra.Command{
		Use:   "layout [input.json]",
		Short: "Compute a layout for one slide input document",
		Long: `Compute a layout for one slide input document.

The layout command takes a slide input file (containers, flow, groupings)
and places every container on the 160x90 grid. The output is a layout.json
document with final positions, quality scores, and generation metrics.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	registerEngineFlags(cmd, &opts)

	return cmd
}

// runLayout loads the input, runs the pipeline, and writes the layout file.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	in, err := slide.ReadInputFile(input)
	if err != nil {
		return err
	}
	opts.Input = in
	opts.Logger = c.Logger

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	sp := newSpinner(ctx, fmt.Sprintf("Laying out %s...", in.SlideID))
	sp.Start()

	result, cacheHit, err := runner.LayoutWithCacheInfo(withLogger(ctx, c.Logger), opts)
	if err != nil {
		sp.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	sp.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := slide.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if result.Layout.Valid {
		printSuccess("Layout complete")
	} else {
		printWarning("Layout finalized with unresolved issues")
	}
	printFile(outputPath)
	printLayoutStats(result.Stats.ContainerCount, result.Stats.Iterations, result.Layout.Pattern, cacheHit)
	printNewline()
	printNextStep("Inspect", "slidegrid show "+outputPath)

	return nil
}
