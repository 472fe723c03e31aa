package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// newDocsCmd builds the hidden gen-docs command, which writes man pages or
// markdown for the whole command tree.
func newDocsCmd() *cobra.Command {
	var (
		dir    string
		format string
	)

	cmd := &cobra.Command{
		Use:    "gen-docs",
		Short:  "Generate reference documentation",
		Hidden: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}

			switch format {
			case "man":
				header := &doc.GenManHeader{
					Title:   "DIRDIFF",
					Section: "1",
					Source:  "dirdiff " + version,
				}
				return doc.GenManTree(cmd.Root(), header, dir)
			case "markdown":
				return doc.GenMarkdownTree(cmd.Root(), dir)
			default:
				return fmt.Errorf("unknown format %q (use man or markdown)", format)
			}
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "docs", "output directory")
	cmd.Flags().StringVar(&format, "format", "man", "output format (man or markdown)")
	return cmd
}
