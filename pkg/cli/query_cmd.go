package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"datasync-console/internal/datasync"
	"datasync-console/internal/domain"
	"datasync-console/internal/service/query"
)

func (s *session) queries() *query.Service {
	c := s.backend()
	return query.NewService(c, c, nil, slog.New(slog.DiscardHandler))
}

// readSQL takes SQL from --file, the positional argument or stdin, in that order.
func readSQL(cmd *cobra.Command, file string, args []string) (string, error) {
	switch {
	case file == "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read sql file: %w", err)
		}
		return string(data), nil
	case len(args) > 0:
		return strings.Join(args, " "), nil
	default:
		return "", domain.ErrValidation("no SQL given: pass it as an argument or with --file")
	}
}

func newQueryCmd(s *session) *cobra.Command {
	var (
		file   string
		global bool
		asCSV  bool
	)

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Run SQL against the physical or the federated endpoint",
		Example: `  datasync query "SELECT * FROM postgres.public.customers LIMIT 10"
  datasync query --global "SELECT * FROM customers"
  datasync query --file report.sql --csv > report.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sql, err := readSQL(cmd, file, args)
			if err != nil {
				return err
			}
			target := domain.TargetPhysical
			if global {
				target = domain.TargetGlobal
			}

			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			run, err := s.queries().Execute(ctx, target, sql)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case asCSV:
				return query.WriteCSV(out, run.Result)
			case s.jsonOutput():
				return printJSON(out, run.Result)
			}
			printResult(out, run.Result)
			if run.Result.GeneratedSQL != "" {
				printMuted(out, "Generated SQL: %s", run.Result.GeneratedSQL)
			}
			printMuted(out, "Time: %s", run.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read SQL from a file (- for stdin)")
	cmd.Flags().BoolVar(&global, "global", false, "Query the federated global schema")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "Write the result set as CSV")

	cmd.AddCommand(newGenerateCmd(s))
	return cmd
}

func newGenerateCmd(s *session) *cobra.Command {
	var run, global bool

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Ask the assistant to draft SQL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := s.commandContext(cmd)
			defer cancel()

			svc := s.queries()
			resp, err := svc.Generate(ctx, strings.Join(args, " "), nil)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !run {
				if s.jsonOutput() {
					return printJSON(out, resp)
				}
				if resp.Message != "" {
					_, _ = fmt.Fprintln(out, resp.Message)
				}
				_, _ = fmt.Fprintln(out, resp.GeneratedSQL)
				return nil
			}

			if strings.TrimSpace(resp.GeneratedSQL) == "" {
				return domain.ErrValidation("the assistant returned no SQL")
			}
			target := domain.TargetPhysical
			if global {
				target = domain.TargetGlobal
			}
			qr, err := svc.Execute(ctx, target, resp.GeneratedSQL)
			if err != nil {
				return err
			}
			if s.jsonOutput() {
				return printJSON(out, qr.Result)
			}
			printMuted(out, "%s", resp.GeneratedSQL)
			printResult(out, qr.Result)
			return nil
		},
	}
	cmd.Flags().BoolVar(&run, "run", false, "Execute the generated SQL")
	cmd.Flags().BoolVar(&global, "global", false, "Execute against the federated endpoint")
	return cmd
}

func newChatCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "chat [message]",
		Short: "Talk to the data assistant",
		Long:  "Send one message, or start an interactive session when no message is given and stdin is a terminal.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) > 0 {
				ctx, cancel := s.commandContext(cmd)
				defer cancel()
				resp, err := s.backend().SendChatMessage(ctx, strings.Join(args, " "), nil)
				if err != nil {
					return err
				}
				if s.jsonOutput() {
					return printJSON(out, resp)
				}
				printChatResponse(out, resp)
				return nil
			}
			if !isInteractive() && cmd.InOrStdin() == os.Stdin {
				return domain.ErrValidation("no message given and stdin is not a terminal")
			}
			return s.chatLoop(cmd, cmd.InOrStdin(), out)
		},
	}
}

// chatLoop reads one message per line and keeps the conversation history in
// memory for the session.
func (s *session) chatLoop(cmd *cobra.Command, in io.Reader, out io.Writer) error {
	var history []domain.ChatMessage
	printMuted(out, "Type a message, or /exit to quit.")
	for _, sugg := range domain.ChatSuggestions {
		printMuted(out, "  e.g. %s", sugg)
	}

	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return scanner.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		switch text {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		}

		ctx, cancel := s.commandContext(cmd)
		resp, err := s.backend().SendChatMessage(ctx, text, history)
		cancel()

		history = append(history, domain.ChatMessage{Role: domain.RoleUser, Content: text})
		if err != nil {
			printFailure(out, "%s", domain.ChatFailureReply)
			printMuted(out, "%v", err)
			history = append(history, domain.ChatMessage{Role: domain.RoleAssistant, Content: domain.ChatFailureReply})
			continue
		}
		history = append(history, domain.ChatMessage{Role: domain.RoleAssistant, Content: resp.Message})
		printChatResponse(out, resp)
	}
}

func printChatResponse(out io.Writer, resp *domain.ChatResponse) {
	_, _ = fmt.Fprintln(out, resp.Message)
	for _, tr := range resp.ToolResults {
		printMuted(out, "[%s]", tr.ToolName)
		if datasync.HasRows(tr.Data) {
			if res, err := datasync.ParseQueryResult(tr.Data); err == nil {
				printResult(out, res)
				continue
			}
		}
		_, _ = fmt.Fprintln(out, string(tr.Data))
	}
}
