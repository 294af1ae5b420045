package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/borospeti/automata/fsa"
)

var lookupFile string

var lookupCmd = &cobra.Command{
	Use:   "lookup [keys...]",
	Short: "Report membership of one or more keys in a packed .fsa file",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if lookupFile == "" {
			return fmt.Errorf("automatafsa lookup: --fsa is required")
		}

		f, err := fsa.Open(lookupFile)
		if err != nil {
			return fmt.Errorf("automatafsa lookup: %w", err)
		}
		defer f.Close()

		miss := false
		for _, key := range args {
			ok, err := f.Lookup([]byte(key))
			if err != nil {
				return fmt.Errorf("automatafsa lookup: %q: %w", key, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\t%s\n", ok, key)
			if !ok {
				miss = true
			}
		}
		if miss {
			cmd.SilenceUsage = true
		}
		return nil
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupFile, "fsa", "", "path to a packed .fsa file")
}
