package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fenwick-games/parley/pkg/adapters/yamlfile"
	"github.com/fenwick-games/parley/pkg/dialog"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check dialog trees for consistency",
	Long:  `Loads every tree in the content directory and reports structural problems: missing starts, duplicate names and dangling choice targets.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if dir == "" && len(args) > 0 {
			dir = args[0]
		}
		if dir == "" {
			dir = "."
		}

		failed, err := runValidate(dir, loggerFromFlags(cmd))
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if failed {
			os.Exit(1)
		}
		fmt.Println("All trees are valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(dir string, logger *slog.Logger) (failed bool, err error) {
	loader := yamlfile.NewLoader(dir, yamlfile.WithLogger(logger))
	names, err := loader.ListTrees()
	if err != nil {
		return false, err
	}
	if len(names) == 0 {
		return false, fmt.Errorf("no trees in %s", dir)
	}

	for _, name := range names {
		tree, err := loader.LoadTree(name)
		if err != nil {
			fmt.Printf("%s: %v\n", name, err)
			failed = true
			continue
		}
		for _, p := range tree.Validate() {
			fmt.Printf("%s: %s\n", name, p)
			if p.Severity == dialog.SeverityError {
				failed = true
			}
		}
	}
	return failed, nil
}
