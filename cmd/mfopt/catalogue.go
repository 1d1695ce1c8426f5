package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/modelfree/models"
)

func newCatalogueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogue",
		Short: "List the model-free models m0-m39 and tm0-tm39",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, name := range models.Names() {
				m, err := models.Select(name)
				if err != nil {
					return err
				}
				params := make([]string, len(m.Params))
				for i, p := range m.Params {
					params[i] = string(p)
				}
				fmt.Fprintf(w, "%-5s %-8s {%s}\n", m.Name, m.Equation, strings.Join(params, ", "))
			}

			return nil
		},
	}
}
