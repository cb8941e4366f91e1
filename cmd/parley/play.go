package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fenwick-games/parley/internal/cli"
)

var playCmd = &cobra.Command{
	Use:   "play [tree]",
	Short: "Play a conversation in the terminal",
	Long: `Starts an interactive session. With --dir, conversations load from YAML
files in that directory; without it a built-in sample scene runs.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")

		var tree string
		if len(args) > 0 {
			tree = args[0]
		}

		err := cli.Play(cli.PlayOptions{
			Dir:    dir,
			Tree:   tree,
			Logger: loggerFromFlags(cmd),
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
}
