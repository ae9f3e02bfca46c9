package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"talent-pipeline/client"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print the pipeline board of a running server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		sync, err := connectBoard(cmd)
		if err != nil {
			return err
		}
		printBoard(cmd.OutOrStdout(), sync)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(boardCmd)
	addAPIFlags(boardCmd)
}

func addAPIFlags(cmd *cobra.Command) {
	cmd.Flags().String("api", "", "server base URL (default http://localhost:8080)")
	cmd.Flags().String("email", "", "recruiter email used for the mock login")
}

// connectBoard logs in against the configured server and loads its board.
// Flags are bound here because board and move share the config keys.
func connectBoard(cmd *cobra.Command) (*client.BoardSync, error) {
	_ = v.BindPFlag("api.url", cmd.Flags().Lookup("api"))
	_ = v.BindPFlag("api.email", cmd.Flags().Lookup("email"))

	ctx := cmd.Context()
	cfg, logger, err := setup()
	if err != nil {
		return nil, err
	}

	c := client.New(cfg.API.URL, "", logger)
	if err := c.Login(ctx, cfg.API.Email); err != nil {
		return nil, fmt.Errorf("logging in as %s: %w", cfg.API.Email, err)
	}
	sync := client.NewBoardSync(c)
	if err := sync.Refresh(ctx); err != nil {
		return nil, err
	}
	return sync, nil
}

func printBoard(out io.Writer, sync *client.BoardSync) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, col := range sync.Board().Columns() {
		fmt.Fprintf(w, "%s\t(%d)\n", col.Stage.Title(), len(col.CandidateIDs))
		for _, id := range col.CandidateIDs {
			fmt.Fprintf(w, "\t%s\t%s\n", id, sync.Name(id))
		}
	}
	_ = w.Flush()
}
