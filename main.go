package main

import (
	"log"
	"os"
	"runtime"
	"time"

	"github.com/joho/godotenv"
	"github.com/rm-hull/voronoi-fragments/cmd"
	"github.com/rm-hull/voronoi-fragments/internal"
	"github.com/rm-hull/voronoi-fragments/internal/fragment"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	var configPath string
	var outDir string
	var poolSize int

	var pieces, fragments, workers, maxSize int
	var background, index string
	var invert, preview bool
	var seed int64

	var rootPath string
	var port int
	var retention time.Duration
	var debug bool

	var output, filter string
	var target, replace string
	var tolerance float64

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	rootCmd := &cobra.Command{
		Use:  "voronoi-fragments",
		Long: `Split, merge, invert and recolor images`,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("FRAGMENTS_CONFIG"), "Path to TOML file with split defaults")

	// loadConfig reads the config file, then applies any split flag that was
	// given explicitly on the command line.
	loadConfig := func(flags *pflag.FlagSet) (internal.Config, error) {
		cfg, err := internal.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		if flags.Changed("pieces") {
			cfg.Pieces = pieces
		}
		if flags.Changed("fragments") {
			cfg.Fragments = fragments
		}
		if flags.Changed("background") {
			if cfg.Background, err = fragment.ParseBackground(background); err != nil {
				return cfg, err
			}
		}
		if flags.Changed("invert") {
			cfg.Invert = invert
		}
		if flags.Changed("index") {
			if cfg.Index, err = fragment.ParseIndex(index); err != nil {
				return cfg, err
			}
		}
		if flags.Changed("seed") {
			cfg.Seed = seed
		}
		if flags.Changed("workers") {
			cfg.Workers = workers
		}
		if flags.Changed("max-size") {
			cfg.MaxSize = maxSize
		}
		return cfg, nil
	}

	splitFlags := func(c *cobra.Command) {
		defaults := internal.DefaultConfig()
		c.Flags().IntVar(&pieces, "pieces", defaults.Pieces, "Number of output images")
		c.Flags().IntVar(&fragments, "fragments", defaults.Fragments, "Total number of fragments to cut the image into")
		c.Flags().StringVar(&background, "background", defaults.Background.String(), "Background color: white, black or transparent")
		c.Flags().BoolVar(&invert, "invert", false, "Invert the colors of the fragments")
		c.Flags().StringVar(&index, "index", defaults.Index.String(), "Nearest-seed search: brute or kdtree")
		c.Flags().Int64Var(&seed, "seed", 0, "Random seed for reproducible output (0 = random)")
		c.Flags().IntVar(&workers, "workers", 0, "Pieces composited concurrently (0 = one per CPU)")
		c.Flags().IntVar(&maxSize, "max-size", 0, "Downscale images whose longest side exceeds this (0 = never)")
	}

	splitCmd := &cobra.Command{
		Use:   "split <file|dir>... [--pieces <n>] [--fragments <n>] [--background <color>] [--invert]",
		Short: "Split images into pieces made of random Voronoi fragments",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			cfg, err := loadConfig(c.Flags())
			if err != nil {
				log.Fatal(err)
			}
			err = cmd.Split(args, cmd.SplitArgs{
				Config:   cfg,
				OutDir:   outDir,
				Preview:  preview,
				PoolSize: poolSize,
			})
			if err != nil {
				log.Fatal(err)
			}
		},
	}
	splitFlags(splitCmd)
	splitCmd.Flags().BoolVar(&preview, "preview", false, "Also write an animated PNG cycling through the pieces")

	invertCmd := &cobra.Command{
		Use:   "invert <file|dir>...",
		Short: "Invert the RGB channels of images, keeping alpha",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := cmd.Invert(args, outDir, poolSize); err != nil {
				log.Fatal(err)
			}
		},
	}

	replaceCmd := &cobra.Command{
		Use:   "replace-color <file|dir>... [--from <color>] [--to <color>] [--tolerance <dist>]",
		Short: "Replace one pixel color with another, writing <name>_b.png",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := cmd.ReplaceColor(args, outDir, target, replace, tolerance, poolSize); err != nil {
				log.Fatal(err)
			}
		},
	}
	replaceCmd.Flags().StringVar(&target, "from", "white", "Color to replace (name or hex)")
	replaceCmd.Flags().StringVar(&replace, "to", "black", "Replacement color (name or hex)")
	replaceCmd.Flags().Float64Var(&tolerance, "tolerance", 0, "Maximum RGB distance from --from that still matches")

	mergeCmd := &cobra.Command{
		Use:   "merge <file|dir>... [--output <file>] [--filter <color>] [--invert]",
		Short: "Stack images, skipping transparent pixels and the filter color",
		Args:  cobra.MinimumNArgs(1),
		Run: func(_ *cobra.Command, args []string) {
			if err := cmd.Merge(args, output, filter, invert); err != nil {
				log.Fatal(err)
			}
		},
	}
	mergeCmd.Flags().StringVar(&output, "output", "merged.png", "Output file")
	mergeCmd.Flags().StringVar(&filter, "filter", "white", "Pixels of this color are not copied")
	mergeCmd.Flags().BoolVar(&invert, "invert", false, "Invert the merged result")

	for _, c := range []*cobra.Command{splitCmd, invertCmd, replaceCmd} {
		c.Flags().StringVar(&outDir, "out", "", "Output directory (defaults to each input's directory)")
		c.Flags().IntVar(&poolSize, "pool", runtime.NumCPU(), "Number of files processed concurrently")
	}

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--root <path>] [--port <port>] [--retention <duration>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(c *cobra.Command, _ []string) {
			cfg, err := loadConfig(c.Flags())
			if err != nil {
				log.Fatal(err)
			}
			cmd.ApiServer(rootPath, port, retention, debug, cfg)
		},
	}
	splitFlags(apiServerCmd)
	apiServerCmd.Flags().StringVar(&rootPath, "root", "./data/fragments", "Path to root folder for split output")
	apiServerCmd.Flags().IntVar(&port, "port", 8080, "Port to run HTTP server on")
	apiServerCmd.Flags().DurationVar(&retention, "retention", 24*time.Hour, "How long split output is kept")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	rootCmd.AddCommand(splitCmd, invertCmd, replaceCmd, mergeCmd, apiServerCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
