// Command apitest runs the high-scores API smoke test against a running server.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"survivor-meshgen/internal/logging"
	"survivor-meshgen/internal/smoketest"
	"survivor-meshgen/internal/termstyle"
)

var (
	baseURL string
	strict  bool
	verbose bool
)

var errServerDown = errors.New("server is not running")

var rootCmd = &cobra.Command{
	Use:          "apitest",
	Short:        "Smoke-test the high-scores HTTP API",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := logging.New(verbose)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		out := cmd.OutOrStdout()
		r := &smoketest.Runner{BaseURL: baseURL, Client: &http.Client{}, Out: out, Log: logger}

		termstyle.Header(out, "API Test Runner")
		fmt.Fprintln(out, strings.Repeat("=", 34))
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Checking if server is running...")
		if !r.CheckServer(cmd.Context()) {
			termstyle.Fail(out, "Server is not running or not accessible at %s", baseURL)
			if runtime.GOOS == "windows" {
				fmt.Fprintln(out, "   Please start the server with: gradlew.bat bootRun")
			} else {
				fmt.Fprintln(out, "   Please start the server with: ./gradlew bootRun")
			}
			return errServerDown
		}
		termstyle.OK(out, "Server is running at %s", baseURL)
		fmt.Fprintln(out)

		outcomes := r.Run(cmd.Context(), smoketest.DefaultChecks())
		failed := smoketest.Failed(outcomes)

		termstyle.Header(out, "API Testing Complete!")
		fmt.Fprintf(out, "%d checks, %d failed\n", len(outcomes), failed)
		if strict && failed > 0 {
			return fmt.Errorf("%d checks failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&baseURL, "base-url", smoketest.DefaultBaseURL, "API base URL")
	rootCmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero when any check fails")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
