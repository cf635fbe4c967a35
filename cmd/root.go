package cmd

import (
	"fmt"
	"os"

	"debt-planner/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "debt-planner.yaml"

// app holds state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
}

// NewRootCmd builds the debt-planner command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "debt-planner",
		Short: "Debt payoff simulation and financial health scoring",
		Long: `debt-planner simulates month-by-month debt payoff under the avalanche,
snowball and hybrid strategies, estimates payoff horizons and scores
debt-to-income health.

Configuration is read from a YAML file (missing is fine) and then from
environment variables such as DATABASE_URL, REDIS_ADDR and LOG_LEVEL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := cfg.Logging.Apply(); err != nil {
				return err
			}
			a.cfg = cfg
			log.WithField("config", a.configPath).Debug("configuration loaded")
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", defaultConfigPath, "Path to the YAML config file")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newSimulateCmd(a))
	root.AddCommand(newMigrateCmd(a))
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
