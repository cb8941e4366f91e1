package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fenwick-games/parley/internal/cli"
	"github.com/fenwick-games/parley/internal/presentation/graph"
	"github.com/fenwick-games/parley/pkg/adapters/yamlfile"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [tree]",
	Short: "Export a conversation graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of a tree's reachable nodes and transitions.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		logger := loggerFromFlags(cmd)

		if dir == "" {
			fmt.Print(graph.GenerateMermaid(cli.SampleTree(logger)))
			return
		}

		loader := yamlfile.NewLoader(dir, yamlfile.WithLogger(logger))
		name := ""
		if len(args) > 0 {
			name = args[0]
		} else {
			names, err := loader.ListTrees()
			if err != nil || len(names) == 0 {
				fmt.Printf("Error listing trees: %v\n", err)
				os.Exit(1)
			}
			name = names[0]
		}

		tree, err := loader.LoadTree(name)
		if err != nil {
			fmt.Printf("Error loading tree: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(graph.GenerateMermaid(tree))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
