package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"datasync-console/internal/domain"
)

func newGlobalCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "global",
		Short: "Manage the global schema and its mappings",
	}
	cmd.AddCommand(newGlobalTablesCmd(s))
	cmd.AddCommand(newGlobalColumnsCmd(s))
	cmd.AddCommand(newTableMappingsCmd(s))
	cmd.AddCommand(newColumnMappingsCmd(s))
	return cmd
}

func newGlobalTablesCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Manage global tables",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List global tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			tables, err := s.backend().ListGlobalTables(ctx)
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), tables)
			}
			rows := make([][]string, 0, len(tables))
			for _, t := range tables {
				rows = append(rows, []string{t.Name, t.Description})
			}
			printTable(cmd.OutOrStdout(), []string{"NAME", "DESCRIPTION"}, rows)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <name>",
		Short: "Show a global table with its columns and mappings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			v, err := s.studio().GlobalTable(ctx, args[0])
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), map[string]interface{}{
					"table":    v.Table,
					"columns":  v.Columns,
					"mappings": v.Mappings,
				})
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s\n", v.Table.Name)
			if v.Table.Description != "" {
				printMuted(out, "%s", v.Table.Description)
			}
			rows := make([][]string, 0, len(v.Columns)+len(v.Mappings))
			for _, c := range v.Columns {
				rows = append(rows, []string{"column", c.Name, c.DataType})
			}
			for _, m := range v.Mappings {
				rows = append(rows, []string{"mapping", m.Ref().String(), ""})
			}
			printTable(out, []string{"KIND", "NAME", "TYPE"}, rows)
			return nil
		},
	})

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a global table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t := domain.GlobalTable{Name: args[0], Description: description}
			if err := domain.ValidateGlobalTable(t); err != nil {
				return err
			}
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.backend().CreateGlobalTable(ctx, t); err != nil {
				return err
			}
			return s.printDone(cmd, "Global table %q created", t.Name)
		},
	}
	create.Flags().StringVar(&description, "description", "", "Table description")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a global table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.backend().DeleteGlobalTable(ctx, args[0]); err != nil {
				return err
			}
			return s.printDone(cmd, "Global table %q deleted", args[0])
		},
	})
	return cmd
}

func newGlobalColumnsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns",
		Short: "Manage the columns of a global table",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <table>",
		Short: "List global columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			cols, err := s.backend().ListGlobalColumns(ctx, args[0])
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), cols)
			}
			rows := make([][]string, 0, len(cols))
			for _, c := range cols {
				rows = append(rows, []string{c.Name, c.DataType, c.Description})
			}
			printTable(cmd.OutOrStdout(), []string{"COLUMN", "TYPE", "DESCRIPTION"}, rows)
			return nil
		},
	})

	var dataType, description string
	create := &cobra.Command{
		Use:   "create <table> <column>",
		Short: "Add a column to a global table",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col := domain.GlobalColumn{
				GlobalTableName: args[0],
				Name:            args[1],
				DataType:        dataType,
				Description:     description,
			}
			if err := domain.ValidateGlobalColumn(col); err != nil {
				return err
			}
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.backend().CreateGlobalColumn(ctx, col); err != nil {
				return err
			}
			return s.printDone(cmd, "Global column %s.%s created", col.GlobalTableName, col.Name)
		},
	}
	create.Flags().StringVar(&dataType, "type", "", "Column data type (required)")
	create.Flags().StringVar(&description, "description", "", "Column description")
	_ = create.MarkFlagRequired("type")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <table> <column>",
		Short: "Delete a global column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.backend().DeleteGlobalColumn(ctx, args[0], args[1]); err != nil {
				return err
			}
			return s.printDone(cmd, "Global column %s.%s deleted", args[0], args[1])
		},
	})
	return cmd
}

func newTableMappingsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table-mappings",
		Short: "Map physical tables to a global table",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <table>",
		Short: "List the physical tables mapped to a global table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			mappings, err := s.backend().ListTableMappings(ctx, args[0])
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), mappings)
			}
			rows := make([][]string, 0, len(mappings))
			for _, m := range mappings {
				rows = append(rows, []string{m.GlobalTableName, m.Ref().String()})
			}
			printTable(cmd.OutOrStdout(), []string{"GLOBAL TABLE", "PHYSICAL TABLE"}, rows)
			return nil
		},
	})

	mapping := func(args []string) domain.TableMapping {
		return domain.TableMapping{
			GlobalTableName: args[0],
			CatalogName:     args[1],
			SchemaName:      args[2],
			TableName:       args[3],
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <global-table> <catalog> <schema> <table>",
		Short: "Map a physical table",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapping(args)
			if err := domain.ValidateTableMapping(m); err != nil {
				return err
			}
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.backend().CreateTableMapping(ctx, m); err != nil {
				return err
			}
			return s.printDone(cmd, "Mapped %s to %s", m.Ref(), m.GlobalTableName)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <global-table> <catalog> <schema> <table>",
		Short: "Remove a table mapping",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapping(args)
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.backend().DeleteTableMapping(ctx, m); err != nil {
				return err
			}
			return s.printDone(cmd, "Unmapped %s from %s", m.Ref(), m.GlobalTableName)
		},
	})
	return cmd
}

func newColumnMappingsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "column-mappings",
		Short: "Map physical columns to a global column",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <table> <column>",
		Short: "List the physical columns mapped to a global column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			mappings, err := s.backend().ListColumnMappings(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), mappings)
			}
			rows := make([][]string, 0, len(mappings))
			for _, m := range mappings {
				rows = append(rows, []string{
					m.GlobalTableName + "." + m.GlobalColumnName,
					m.CatalogName + "." + m.SchemaName + "." + m.TableName + "." + m.ColumnName,
				})
			}
			printTable(cmd.OutOrStdout(), []string{"GLOBAL COLUMN", "PHYSICAL COLUMN"}, rows)
			return nil
		},
	})

	mapping := func(args []string) domain.ColumnMapping {
		return domain.ColumnMapping{
			GlobalTableName:  args[0],
			GlobalColumnName: args[1],
			CatalogName:      args[2],
			SchemaName:       args[3],
			TableName:        args[4],
			ColumnName:       args[5],
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <global-table> <global-column> <catalog> <schema> <table> <column>",
		Short: "Map a physical column",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapping(args)
			if err := domain.ValidateColumnMapping(m); err != nil {
				return err
			}
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.backend().CreateColumnMapping(ctx, m); err != nil {
				return err
			}
			return s.printDone(cmd, "Mapped column %s to %s.%s", m.ColumnName, m.GlobalTableName, m.GlobalColumnName)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <global-table> <global-column> <catalog> <schema> <table> <column>",
		Short: "Remove a column mapping",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mapping(args)
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.backend().DeleteColumnMapping(ctx, m); err != nil {
				return err
			}
			return s.printDone(cmd, "Unmapped column %s from %s.%s", m.ColumnName, m.GlobalTableName, m.GlobalColumnName)
		},
	})
	return cmd
}

// printDone reports a successful mutation.
func (s *session) printDone(cmd *cobra.Command, format string, args ...interface{}) error {
	if s.jsonOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]string{"status": "ok"})
	}
	printSuccess(cmd.OutOrStdout(), format, args...)
	return nil
}
