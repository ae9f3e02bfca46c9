package main

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"talent-pipeline/pipeline"
)

var moveCmd = &cobra.Command{
	Use:   "move <candidate-id> [stage]",
	Short: "Move a candidate to another pipeline stage",
	Long:  "Move a candidate to another pipeline stage. Without a stage argument the stage is picked interactively.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		var to pipeline.Stage
		if len(args) == 2 {
			stage, err := pipeline.ParseStage(args[1])
			if err != nil {
				return err
			}
			to = stage
		} else {
			stage, err := pickStage()
			if err != nil {
				return err
			}
			to = stage
		}

		sync, err := connectBoard(cmd)
		if err != nil {
			return err
		}

		shown, err := sync.Move(cmd.Context(), id, to)
		if err != nil {
			return fmt.Errorf("moving %s to %s failed, kept in %s: %w", sync.Name(id), to, shown, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now in %s\n", sync.Name(id), shown.Title())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(moveCmd)
	addAPIFlags(moveCmd)
}

func pickStage() (pipeline.Stage, error) {
	items := make([]string, len(pipeline.Stages))
	for i, s := range pipeline.Stages {
		items[i] = s.Title()
	}
	prompt := promptui.Select{
		Label: "Choose a stage and press ENTER",
		Items: items,
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", err
	}
	return pipeline.Stages[i], nil
}
