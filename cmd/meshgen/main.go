// Command meshgen generates character meshes for the game's asset tree.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"survivor-meshgen/internal/batch"
	"survivor-meshgen/internal/config"
	"survivor-meshgen/internal/humanoid"
	"survivor-meshgen/internal/logging"
	"survivor-meshgen/internal/termstyle"
)

var (
	configFile string
	verbose    bool
	flags      config.Flags

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "meshgen",
	Short: "Procedural character mesh generator",
	Long: `meshgen builds character meshes and writes them as OBJ, glTF or GLB,
with an optional preview image next to each model.

Settings come from a YAML file (--config) with flags taking priority.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return err
		}
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}
		return cfg.Resolve(flags)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var (
	humanoidHeight float64
	humanoidGender string
	humanoidSubdiv int
	humanoidName   string
)

var humanoidCmd = &cobra.Command{
	Use:   "humanoid",
	Short: "Generate the parametric humanoid base mesh",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := config.Variant{Kind: config.KindHumanoid, Name: humanoidName}
		if cmd.Flags().Changed("height") {
			v.Height = &humanoidHeight
		}
		if cmd.Flags().Changed("gender") {
			g, err := humanoid.ParseGender(humanoidGender)
			if err != nil {
				return err
			}
			v.Gender = &g
		}
		if cmd.Flags().Changed("subdivisions") {
			v.Subdivisions = &humanoidSubdiv
		}
		return generateOne(v)
	},
}

var (
	placeholderHeight float64
	placeholderName   string
)

var placeholderCmd = &cobra.Command{
	Use:   "placeholder",
	Short: "Assemble the primitive-based player placeholder",
	RunE: func(cmd *cobra.Command, args []string) error {
		v := config.Variant{Kind: config.KindPlaceholder, Name: placeholderName}
		if cmd.Flags().Changed("height") {
			v.Height = &placeholderHeight
		}
		return generateOne(v)
	},
}

var manifestPath string

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate every variant listed in the config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Variants) == 0 {
			return fmt.Errorf("no variants configured (add a variants: list to %s)", displayConfig())
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		termstyle.Header(out, "Batch: %d variants, %d workers", len(cfg.Variants), cfg.Workers)
		fmt.Fprintf(out, "Output: %s (%s, %s-up)\n", cfg.OutputDir, cfg.Format, cfg.UpAxis)

		results, runErr := batch.Run(ctx, cfg, cfg.Variants, logger)
		failed := 0
		for _, r := range results {
			if r.Success {
				termstyle.OK(out, "%-24s %5d verts %5d faces  %s", r.Name, r.Vertices, r.Faces, termstyle.Dim(r.Output))
				continue
			}
			failed++
			termstyle.Fail(out, "%-24s %s", r.Name, r.Error)
		}

		path := manifestPath
		if path == "" {
			path = filepath.Join(cfg.OutputDir, "manifest.json")
		}
		if err := batch.WriteManifest(path, results); err != nil {
			return err
		}
		fmt.Fprintf(out, "Manifest: %s\n", path)

		if runErr != nil {
			return runErr
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d variants failed", failed, len(results))
		}
		return nil
	},
}

func generateOne(v config.Variant) error {
	res := batch.Process(cfg, v, logger)
	out := rootCmd.OutOrStdout()
	if !res.Success {
		termstyle.Fail(out, "%s: %s", res.Name, res.Error)
		return fmt.Errorf("generate %s failed", res.Name)
	}
	termstyle.OK(out, "%s: %d vertices, %d faces", res.Name, res.Vertices, res.Faces)
	fmt.Fprintf(out, "  model:   %s\n", res.Output)
	if res.Preview != "" {
		fmt.Fprintf(out, "  preview: %s\n", res.Preview)
	}
	return nil
}

func displayConfig() string {
	if configFile == "" {
		return "a --config file"
	}
	return configFile
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configFile, "config", "c", "", "YAML config file")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVarP(&flags.OutputDir, "output", "o", "", "Output directory")
	pf.StringVarP(&flags.Format, "format", "f", "", "Model format: obj, gltf or glb")
	pf.StringVar(&flags.UpAxis, "up-axis", "", "Exported up axis: y or z")
	pf.IntVarP(&flags.Workers, "workers", "w", 0, "Batch worker count (default: NumCPU)")
	pf.IntVar(&flags.PreviewSize, "preview-size", 0, "Preview edge in pixels")
	pf.StringVar(&flags.PreviewFormat, "preview-format", "", "Preview format: webp, tga or png")
	pf.BoolVar(&flags.NoPreview, "no-preview", false, "Skip preview rendering")
	pf.BoolVar(&flags.NoModifiers, "no-modifiers", false, "Export the control mesh without subdivision")

	def := humanoid.DefaultParams()
	hf := humanoidCmd.Flags()
	hf.Float64Var(&humanoidHeight, "height", def.Height, "Total height in metres")
	hf.StringVar(&humanoidGender, "gender", def.Gender.String(), "Body type: male or female")
	hf.IntVar(&humanoidSubdiv, "subdivisions", def.Subdivisions, "Subdivision level (0 low, 1 medium, 2 high)")
	hf.StringVar(&humanoidName, "name", "", "Object name (default from config)")

	placeholderCmd.Flags().Float64Var(&placeholderHeight, "height", 1.75, "Total height in metres")
	placeholderCmd.Flags().StringVar(&placeholderName, "name", "", "Root object name (default from config)")

	batchCmd.Flags().StringVar(&manifestPath, "manifest", "", "Manifest path (default: <output>/manifest.json)")

	rootCmd.AddCommand(humanoidCmd, placeholderCmd, batchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
