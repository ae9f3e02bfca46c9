package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"talent-pipeline/infrastructure"
	"talent-pipeline/screening"
)

var screenCmd = &cobra.Command{
	Use:   "screen [resume-file]",
	Short: "Screen a resume from a .txt/.md file or stdin and print the result",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readResume(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(screening.Screen(text))
	},
}

func init() {
	rootCmd.AddCommand(screenCmd)
}

func readResume(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(io.LimitReader(stdin, infrastructure.MaxResumeBytes))
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return "", err
	}
	defer f.Close()
	return infrastructure.ExtractText(f, args[0])
}
