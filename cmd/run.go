package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caas-team/healthprobe/internal/logger"
	"github.com/caas-team/healthprobe/pkg/config"
	"github.com/caas-team/healthprobe/pkg/monitor"
	"github.com/caas-team/healthprobe/pkg/probe"
	"github.com/caas-team/healthprobe/pkg/report"
)

// run is the entry point of a single probe or the continuous monitoring
func run(fm *config.RunFlagsNameMapping, version string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		log := logger.NewLogger()
		ctx := logger.IntoContext(cmd.Context(), log)

		cfg := config.NewConfig()
		cfg.SetVersion(version)
		cfg.SetURL(viper.GetString(fm.URL))
		cfg.SetTimeout(viper.GetInt(fm.Timeout))
		cfg.SetWatch(viper.GetBool(fm.Watch))
		cfg.SetInterval(viper.GetInt(fm.Interval))
		cfg.SetCount(viper.GetInt(fm.Count))
		cfg.SetJSON(viper.GetBool(fm.JSON))
		cfg.SetQuiet(viper.GetBool(fm.Quiet))
		cfg.SetApiAddress(viper.GetString(fm.ApiAddress))

		if err := cfg.Validate(ctx, fm); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		r, err := report.New(cfg.Format())
		if err != nil {
			return err
		}
		p := probe.New(cfg.ProberConfig())

		if cfg.Watch.Enabled {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			m, err := monitor.New(cfg, p, r, cmd.OutOrStdout(), version)
			if err != nil {
				return err
			}
			log.Debug("Starting monitoring", "target", p.Target(), "interval", cfg.Watch.Interval.String())
			return m.Run(ctx)
		}

		res := p.Probe(ctx)
		out, err := r.Render(res)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)

		if !res.IsUp {
			return ExitError{Code: 1}
		}
		return nil
	}
}
