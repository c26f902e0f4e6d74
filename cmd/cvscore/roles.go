package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "List the job roles and their keywords",
	RunE: func(cmd *cobra.Command, _ []string) error {
		analyzer, _, err := newAnalyzer()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, r := range analyzer.Roles() {
			fmt.Fprintf(out, "%s: %s\n", r.Title, strings.Join(r.Keywords, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolesCmd)
}
