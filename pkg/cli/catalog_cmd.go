package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"datasync-console/internal/domain"
)

func newHealthCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check DataSync API health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			h, err := s.backend().Health(ctx)
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), h)
			}
			printSuccess(cmd.OutOrStdout(), "%s: %s", s.host, h.Status)
			return nil
		},
	}
}

func newSyncCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Synchronize catalog metadata from all data sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			resp, err := s.backend().SyncMetadata(ctx)
			if err != nil {
				return fmt.Errorf("metadata sync failed: %w", err)
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			printSuccess(cmd.OutOrStdout(), domain.SyncSuccessMessage)
			return nil
		},
	}
}

func newCatalogsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogs",
		Short: "Inspect physical catalogs",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			catalogs, err := s.backend().ListCatalogs(ctx)
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), catalogs)
			}
			rows := make([][]string, 0, len(catalogs))
			for _, c := range catalogs {
				rows = append(rows, []string{c.Name, metadataSummary(c.Metadata)})
			}
			printTable(cmd.OutOrStdout(), []string{"NAME", "METADATA"}, rows)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <catalog>",
		Short: "Show a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			c, err := s.backend().GetCatalog(ctx, args[0])
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), c)
			}
			rows := [][]string{{"Name", c.Name}}
			for _, k := range sortedKeys(c.Metadata) {
				rows = append(rows, []string{k, c.Metadata[k]})
			}
			printTable(cmd.OutOrStdout(), []string{"FIELD", "VALUE"}, rows)
			return nil
		},
	})
	return cmd
}

func newSchemasCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "schemas <catalog>",
		Short: "List the schemas of a catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			schemas, err := s.backend().ListSchemas(ctx, args[0])
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), schemas)
			}
			rows := make([][]string, 0, len(schemas))
			for _, sc := range schemas {
				rows = append(rows, []string{sc.Name, sc.CatalogName})
			}
			printTable(cmd.OutOrStdout(), []string{"NAME", "CATALOG"}, rows)
			return nil
		},
	}
}

func newTablesCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "tables <catalog> <schema>",
		Short: "Discover the tables of a schema",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			tables, err := s.backend().DiscoverTables(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), tables)
			}
			rows := make([][]string, 0, len(tables))
			for _, t := range tables {
				rows = append(rows, []string{t.Name})
			}
			printTable(cmd.OutOrStdout(), []string{"TABLE"}, rows)
			return nil
		},
	}
}

func newColumnsCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "columns <catalog> <schema> <table>",
		Short: "Discover the columns of a table",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			cols, err := s.studio().TableColumns(ctx, domain.TableRef{Catalog: args[0], Schema: args[1], Table: args[2]})
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), cols)
			}
			rows := make([][]string, 0, len(cols))
			for _, c := range cols {
				rows = append(rows, []string{c.Name, c.DataType, fmt.Sprintf("%t", c.Nullable)})
			}
			printTable(cmd.OutOrStdout(), []string{"COLUMN", "TYPE", "NULLABLE"}, rows)
			return nil
		},
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func metadataSummary(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, k+"="+m[k])
	}
	return strings.Join(parts, ", ")
}
