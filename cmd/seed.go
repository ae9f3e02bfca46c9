package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample candidates into an empty database",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck

		uc, closeAll, err := openUsecase(cfg, logger)
		if err != nil {
			return err
		}
		defer closeAll()

		n, err := uc.Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d candidates\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
