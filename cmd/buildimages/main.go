// Command buildimages builds the high-scores Docker images.
//
//	buildimages [environment] [version]
//
// environment defaults to "local", version to "latest". Any environment
// other than local tags images under $ACR_REGISTRY.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"survivor-meshgen/internal/dockerbuild"
	"survivor-meshgen/internal/logging"
	"survivor-meshgen/internal/termstyle"
)

var (
	root    string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:          "buildimages [environment] [version]",
	Short:        "Build the backend and frontend Docker images",
	Args:         cobra.MaximumNArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, version := "", ""
		if len(args) > 0 {
			env = args[0]
		}
		if len(args) > 1 {
			version = args[1]
		}

		plan, err := dockerbuild.NewPlan(env, version, os.Getenv(dockerbuild.RegistryEnv))
		if errors.Is(err, dockerbuild.ErrRegistryRequired) {
			errOut := cmd.ErrOrStderr()
			termstyle.Fail(errOut, "Error: %s environment variable not set", dockerbuild.RegistryEnv)
			fmt.Fprintln(errOut, "Example: set ACR_REGISTRY=myregistry.azurecr.io (Windows)")
			fmt.Fprintln(errOut, "Example: export ACR_REGISTRY=myregistry.azurecr.io (Mac/Linux)")
			return err
		}
		if err != nil {
			return err
		}

		logger, err := logging.New(verbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		b := &dockerbuild.Builder{
			Root:   root,
			Runner: dockerbuild.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr()},
			Out:    cmd.OutOrStdout(),
			Log:    logger,
		}
		return b.Run(ctx, plan)
	},
}

func init() {
	rootCmd.Flags().StringVar(&root, "root", ".", "Project root containing the image directories")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
