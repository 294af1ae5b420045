// Command automatafsa is a thin CLI front end over the automata
// library: it builds a packed .fsa file from a sorted word list and
// queries one back, exercising the builder/packer/fsaio/fsa packages
// end to end without duplicating any of their logic.
package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/borospeti/automata/internal/diag"
)

var (
	verbose bool
	log     *diag.Logger
)

var rootCmd = &cobra.Command{
	Use:   "automatafsa",
	Short: "Build and query minimal acyclic DFA (.fsa) files",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			log = diag.Nop()
			return nil
		}
		z, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		log = diag.New(z)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable structured construction/pack logging")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(dictCmd)
}

// Execute runs the command tree; main's only job is to call this and
// translate a non-nil error into a process exit code.
func Execute() error {
	return rootCmd.Execute()
}
