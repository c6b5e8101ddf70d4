package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"datasync-console/internal/domain"
	"datasync-console/internal/service/studio"
)

func (s *session) studio() *studio.Service {
	c := s.backend()
	return studio.NewService(c, c, c, slog.New(slog.DiscardHandler))
}

// parseSource reads a relation source written as catalog.schema.table or
// relation:<id>.
func parseSource(v string) (domain.TableSource, error) {
	if id, ok := strings.CutPrefix(v, "relation:"); ok {
		if id == "" {
			return domain.TableSource{}, domain.ErrValidation("relation source %q has no id", v)
		}
		return domain.TableSource{Type: domain.SourceRelation, RelationID: id}, nil
	}
	parts := strings.Split(v, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return domain.TableSource{}, domain.ErrValidation("source %q must be catalog.schema.table or relation:<id>", v)
	}
	return domain.TableSource{Type: domain.SourcePhysical, Catalog: parts[0], Schema: parts[1], Table: parts[2]}, nil
}

// parseEndpoint reads a column written as catalog.schema.table.column.
func parseEndpoint(v string) (domain.ColumnEndpoint, error) {
	parts := strings.Split(v, ".")
	if len(parts) != 4 {
		return domain.ColumnEndpoint{}, domain.ErrValidation("column %q must be catalog.schema.table.column", v)
	}
	return domain.ColumnEndpoint{Catalog: parts[0], Schema: parts[1], Table: parts[2], Column: parts[3]}, nil
}

func newRelationsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relations",
		Short: "Manage table relations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List table relations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			views, err := s.studio().Relations(ctx)
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				rels := make([]domain.TableRelation, len(views))
				for i, v := range views {
					rels[i] = v.Relation
				}
				return printJSON(cmd.OutOrStdout(), rels)
			}
			rows := make([][]string, 0, len(views))
			for _, v := range views {
				rows = append(rows, []string{v.Relation.ID, v.Relation.Name, v.Relation.RelationType, v.LeftLabel, v.RightLabel, joinLabel(v.Relation.JoinColumn)})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "TYPE", "LEFT", "RIGHT", "JOIN"}, rows)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a relation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			d, err := s.studio().Relation(ctx, args[0])
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), d.Relation)
			}
			rows := [][]string{
				{"ID", d.Relation.ID},
				{"Name", d.Relation.Name},
				{"Type", d.Relation.RelationType},
				{"Left", d.LeftLabel},
				{"Right", d.RightLabel},
			}
			if jc := d.Relation.JoinColumn; jc != nil {
				rows = append(rows,
					[]string{"Left column", typedColumn(jc.Left, d.LeftJoinType)},
					[]string{"Right column", typedColumn(jc.Right, d.RightJoinType)},
				)
			}
			if d.Relation.Description != "" {
				rows = append(rows, []string{"Description", d.Relation.Description})
			}
			for _, u := range d.UsedBy {
				rows = append(rows, []string{"Used by", u.Relation.Name})
			}
			printTable(cmd.OutOrStdout(), []string{"FIELD", "VALUE"}, rows)
			return nil
		},
	})

	cmd.AddCommand(newRelationCreateCmd(s))

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a relation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.studio().DeleteRelation(ctx, args[0]); err != nil {
				return err
			}
			return s.printDone(cmd, "Relation %s deleted", args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "auto-match",
		Short: "Ask the backend to suggest and create relations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			resp, err := s.studio().AutoMatch(ctx)
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), resp)
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Suggestions: %d\n", len(resp.Suggestions))
			printSuccess(out, "Relations created: %d", len(resp.CreatedRelations))
			if len(resp.Errors) > 0 {
				printFailure(out, "Errors: %d", len(resp.Errors))
				for _, e := range resp.Errors {
					printMuted(out, "  %s", e)
				}
			}
			return nil
		},
	})
	return cmd
}

func newRelationCreateCmd(s *session) *cobra.Command {
	var (
		name, description, relationType string
		left, right                      string
		leftColumn, rightColumn          string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a JOIN or UNION relation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := parseSource(left)
			if err != nil {
				return err
			}
			r, err := parseSource(right)
			if err != nil {
				return err
			}

			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			created, err := s.studio().CreateRelation(ctx, domain.RelationDraft{
				Name:         name,
				Description:  description,
				RelationType: strings.ToUpper(relationType),
				Left:         l,
				Right:        r,
				LeftColumn:   leftColumn,
				RightColumn:  rightColumn,
			})
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), created)
			}
			printSuccess(cmd.OutOrStdout(), "Relation %q created (%s)", created.Name, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Relation name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Relation description")
	cmd.Flags().StringVar(&relationType, "type", domain.RelationJoin, "Relation type (JOIN or UNION)")
	cmd.Flags().StringVar(&left, "left", "", "Left source: catalog.schema.table or relation:<id>")
	cmd.Flags().StringVar(&right, "right", "", "Right source: catalog.schema.table or relation:<id>")
	cmd.Flags().StringVar(&leftColumn, "left-column", "", "Left join column")
	cmd.Flags().StringVar(&rightColumn, "right-column", "", "Right join column")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("left")
	_ = cmd.MarkFlagRequired("right")
	return cmd
}

func newRelationshipsCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relationships",
		Short: "Manage column relationships",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List column relationships",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			rels, err := s.studio().Relationships(ctx)
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), rels)
			}
			rows := make([][]string, 0, len(rels))
			for _, r := range rels {
				rows = append(rows, []string{r.ID, r.Left.String(), r.Right.String(), r.RelationshipType, r.Description})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "LEFT", "RIGHT", "TYPE", "DESCRIPTION"}, rows)
			return nil
		},
	})

	var relType, description string
	create := &cobra.Command{
		Use:   "create <left-column> <right-column>",
		Short: "Link two physical columns",
		Long:  "Link two physical columns, each written as catalog.schema.table.column.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := parseEndpoint(args[0])
			if err != nil {
				return err
			}
			r, err := parseEndpoint(args[1])
			if err != nil {
				return err
			}

			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			created, err := s.studio().CreateRelationship(ctx, domain.ColumnRelationship{
				Left:             l,
				Right:            r,
				RelationshipType: relType,
				Description:      description,
			})
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(cmd.OutOrStdout(), created)
			}
			printSuccess(cmd.OutOrStdout(), "Relationship %s created", created.ID)
			return nil
		},
	}
	create.Flags().StringVar(&relType, "type", "", "Relationship type, e.g. one_to_many (required)")
	create.Flags().StringVar(&description, "description", "", "Relationship description")
	_ = create.MarkFlagRequired("type")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a column relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			if err := s.studio().DeleteRelationship(ctx, args[0]); err != nil {
				return err
			}
			return s.printDone(cmd, "Relationship %s deleted", args[0])
		},
	})
	return cmd
}

func joinLabel(jc *domain.JoinColumn) string {
	if jc == nil {
		return ""
	}
	return jc.Left + " = " + jc.Right
}

func typedColumn(name, dataType string) string {
	if dataType == "" {
		return name
	}
	return name + " (" + dataType + ")"
}
