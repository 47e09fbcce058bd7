package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/caas-team/healthprobe/pkg/config"
	"github.com/caas-team/healthprobe/pkg/probe"
	"github.com/caas-team/healthprobe/pkg/watch"
)

// ExitError carries the exit code of a finished run
type ExitError struct {
	Code int
}

func (e ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// NewCmdRoot creates a new root command
func NewCmdRoot(version string) *cobra.Command {
	fm := config.RunFlagsNameMapping{
		URL:        "url",
		Timeout:    "timeout",
		Watch:      "watch",
		Interval:   "interval",
		Count:      "count",
		JSON:       "json",
		Quiet:      "quiet",
		ApiAddress: "metrics-address",
	}

	rootCmd := &cobra.Command{
		Use:   "healthprobe",
		Short: "Healthprobe, the website health checker",
		Long: "Healthprobe checks whether a website is reachable and healthy.\n" +
			"It reports the http status, the response time and the remaining validity of the TLS certificate,\n" +
			"either once or continuously in watch mode.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          run(&fm, version),
	}

	NewFlag(fm.URL, "url").StringP("u").Bind(rootCmd, probe.DefaultURL, "URL to check")
	NewFlag(fm.Timeout, "timeout").IntP("t").Bind(rootCmd, int(probe.DefaultTimeout.Seconds()), "Request timeout in seconds")
	NewFlag(fm.Watch, "watch").BoolP("w").Bind(rootCmd, false, "Continuously monitor the URL")
	NewFlag(fm.Interval, "interval").IntP("i").Bind(rootCmd, int(watch.DefaultInterval.Seconds()), "Check interval in seconds for watch mode")
	NewFlag(fm.Count, "count").IntP("c").Bind(rootCmd, 0, "Number of checks in watch mode, 0 runs until interrupted")
	NewFlag(fm.JSON, "json").BoolP("j").Bind(rootCmd, false, "Output the result as JSON")
	NewFlag(fm.Quiet, "quiet").BoolP("q").Bind(rootCmd, false, "Output a single compact line")
	NewFlag(fm.ApiAddress, "metrics-address").String().Bind(rootCmd, "",
		"Address to serve prometheus metrics and the latest result on in watch mode, e.g. :9090")

	return rootCmd
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdSchema())
	cmd.AddCommand(NewCmdGenDocs(cmd))

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		var exitErr ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
