package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/komsit37/fscore/pkg/fscore/config"
)

func main() {
	var (
		cfgPath string
		cfg     *config.Config
	)

	rootCmd := &cobra.Command{
		Use:           "fscore",
		Short:         "Score a listed company's fundamentals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			if err := config.InitLogger(c.Log); err != nil {
				return err
			}
			cfg = c
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ./fscore.yaml)")

	conf := func() *config.Config { return cfg }
	rootCmd.AddCommand(newScoreCmd(conf), newServeCmd(conf))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
