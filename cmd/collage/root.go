package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"collage/compose"
	"collage/config"
	"collage/discover"
)

func newRootCommand() *cobra.Command {
	var (
		configPath  string
		inputDir    string
		outputFile  string
		cellSize    int
		workers     int
		memoryLimit int64
	)

	cmd := &cobra.Command{
		Use:   "collage",
		Short: "Build a grid collage from folders of images",
		Long: "Collage scans the subfolders of an input directory for webp and jpeg\n" +
			"images and lays them out on a square grid, one image per cell,\n" +
			"aspect-preserved, then writes a lossless webp or png file.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			// Explicit flags win over config file values.
			if cmd.Flags().Changed("input") {
				cfg.InputDir = inputDir
			}
			if cmd.Flags().Changed("output") {
				cfg.OutputFile = outputFile
			}
			if cmd.Flags().Changed("cell-size") {
				cfg.CellSize = cellSize
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}
			if cmd.Flags().Changed("memory-limit") {
				cfg.MemoryLimit = memoryLimit
			}

			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Configuration file path (TOML)")
	cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Root directory containing subfolders with images")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output collage file (e.g. collage.webp)")
	cmd.Flags().IntVar(&cellSize, "cell-size", config.DefaultCellSize, "Size in pixels for each cell")
	cmd.Flags().IntVar(&workers, "workers", config.Default().Workers, "Number of images processed in parallel")
	cmd.Flags().Int64Var(&memoryLimit, "memory-limit", config.DefaultMemoryLimit, "Canvas bytes above which a disk-backed canvas is used")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	listing, err := discover.Scan(cfg.InputDir)
	if err != nil {
		return err
	}

	fmt.Println("Image counts per folder:")
	fmt.Println(renderFolderTable(listing.Folders))
	fmt.Printf("\nTotal images found: %d\n", listing.Total())

	if listing.Total() == 0 {
		fmt.Println("No .webp or .jpg images found in the provided folders.")
		return nil
	}

	comp := compose.Compositor{
		CellSize:    cfg.CellSize,
		MemoryLimit: cfg.MemoryLimit,
		Workers:     cfg.Workers,
	}
	result, err := comp.Compose(ctx, listing, cfg.OutputFile)
	if err != nil {
		return err
	}

	if n := len(result.Skipped); n > 0 {
		fmt.Printf("Skipped %d image(s); their cells were left blank.\n", n)
	}
	fmt.Printf("Collage saved to '%s' (%dx%d, %d columns x %d rows)\n",
		result.OutputFile, result.Geometry.Width, result.Geometry.Height,
		result.Geometry.Columns, result.Geometry.Rows)
	return nil
}
