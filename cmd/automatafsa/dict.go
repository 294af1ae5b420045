package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/borospeti/automata/fsa"
)

var dictFile string

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Enumerate every key accepted by a packed .fsa file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if dictFile == "" {
			return fmt.Errorf("automatafsa dict: --fsa is required")
		}

		f, err := fsa.Open(dictFile)
		if err != nil {
			return fmt.Errorf("automatafsa dict: %w", err)
		}
		defer f.Close()

		return f.Dump(cmd.OutOrStdout())
	},
}

func init() {
	dictCmd.Flags().StringVar(&dictFile, "fsa", "", "path to a packed .fsa file")
}
