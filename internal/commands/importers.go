package commands

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerline-dev/ledgerline/internal/config"
)

func newImportersCommand() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "importers",
		Short: "List configured importers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context(), filepath.Join(dir, config.FileName))
			if err != nil {
				return err
			}

			if len(cfg.Importers) == 0 {
				cmd.Println("No importers configured.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPROVIDER\tACCOUNT\tSYMBOL")
			for _, imp := range cfg.Importers {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					imp.ID, imp.Name, imp.Provider, imp.AccountID, cfg.SymbolFor(imp))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "ledger root directory")

	return cmd
}
