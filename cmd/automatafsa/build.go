package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/borospeti/automata/builder"
	"github.com/borospeti/automata/fsaio"
)

var (
	buildInput  string
	buildOutput string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a packed .fsa file from a sorted newline-delimited word list",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := os.Stdin
		if buildInput != "" && buildInput != "-" {
			f, err := os.Open(buildInput)
			if err != nil {
				return fmt.Errorf("automatafsa build: %w", err)
			}
			defer f.Close()
			in = f
		}
		if buildOutput == "" {
			return fmt.Errorf("automatafsa build: --output is required")
		}

		b := builder.New(builder.WithLogger(log))
		scanner := bufio.NewScanner(in)
		var n int
		for scanner.Scan() {
			n++
			line := scanner.Text()
			if line == "" {
				continue
			}
			if err := b.InsertSortedString(line); err != nil {
				return fmt.Errorf("automatafsa build: line %d (%q): %w", n, line, err)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("automatafsa build: reading input: %w", err)
		}

		f, err := b.BuildFSA()
		if err != nil {
			return fmt.Errorf("automatafsa build: %w", err)
		}

		out, err := os.Create(buildOutput)
		if err != nil {
			return fmt.Errorf("automatafsa build: %w", err)
		}
		defer out.Close()

		sym, nxt, start := f.Arrays()
		if _, err := fsaio.Write(out, sym, nxt, start); err != nil {
			return fmt.Errorf("automatafsa build: %w", err)
		}

		stats := b.Stats()
		fmt.Fprintf(cmd.OutOrStdout(), "built %s: %d keys, %d states registered\n", buildOutput, stats.KeysInserted, stats.StatesRegistered)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildInput, "input", "i", "-", "sorted word list file (default: stdin)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "path to write the packed .fsa file")
}
