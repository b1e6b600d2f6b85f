package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"fathom/internal/bootstrap"
	journaldto "fathom/internal/modules/journal/dto"
)

func newJournalCmd(opts *rootOptions) *cobra.Command {
	journal := &cobra.Command{Use: "journal", Short: "Journal entries and the daily question"}

	var title, purpose, role, file string
	write := &cobra.Command{
		Use:   "write [text]",
		Short: "Write a journal entry from the argument, --file or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := entryContent(cmd, args, file)
			if err != nil {
				return err
			}
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.Write(ctx, journaldto.CreateEntryInput{Title: title, Content: content, Purpose: purpose, Role: role})
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "entry saved: %s note=%s\n", out.ID, out.NotePath)
					printOutcomes(w, out.Outcomes)
				})
			})
		},
	}
	write.Flags().StringVar(&title, "title", "", "entry title")
	write.Flags().StringVar(&purpose, "purpose", "", "daily-reflection|event-reflection|reading-resource")
	write.Flags().StringVar(&role, "role", "", "beginner|amateur|pro")
	write.Flags().StringVar(&file, "file", "", "read the entry from a file")
	journal.AddCommand(write)

	journal.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				entries, err := app.JournalCLI.List(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, entries, func(w io.Writer) {
					if len(entries) == 0 {
						_, _ = fmt.Fprintln(w, "no entries")
						return
					}
					for _, e := range entries {
						_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", e.ID, e.Date, entryHeadline(e))
					}
				})
			})
		},
	})

	journal.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				e, err := app.JournalCLI.Show(ctx, args[0])
				if err != nil {
					return err
				}
				return emit(cmd, opts, e, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "id: %s\ndate: %s\npurpose: %s\nrole: %s\nnote: %s\n\n%s\n", e.ID, e.Date, e.Purpose, e.Role, e.NotePath, e.Content)
				})
			})
		},
	})

	var limit int
	search := &cobra.Command{
		Use:   "search <query>",
		Short: "Search entries through the local index",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				hits, err := app.JournalCLI.Search(ctx, strings.Join(args, " "), limit)
				if err != nil {
					return err
				}
				return emit(cmd, opts, hits, func(w io.Writer) {
					if len(hits) == 0 {
						_, _ = fmt.Fprintln(w, "no matches")
						return
					}
					for _, h := range hits {
						_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", h.ID, h.Date, h.Snippet)
					}
				})
			})
		},
	}
	search.Flags().IntVar(&limit, "limit", 20, "maximum hits")
	journal.AddCommand(search)

	journal.AddCommand(&cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search index from the vault",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.JournalCLI.Reindex(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
				return nil
			})
		},
	})

	var frequency string
	prompts := &cobra.Command{
		Use:   "prompts",
		Short: "Show writing prompts for a role or journaling frequency, plus those of owned materials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.Prompts(ctx, role, frequency)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "role: %s\n", out.Role)
					for _, p := range out.Prompts {
						tag := p.Difficulty
						if p.Material != "" {
							tag = p.Material
						}
						_, _ = fmt.Fprintf(w, "  [%s] %s\n", tag, p.Text)
					}
				})
			})
		},
	}
	prompts.Flags().StringVar(&role, "role", "", "beginner|amateur|pro")
	prompts.Flags().StringVar(&frequency, "frequency", "", "once-a-week|every-2-days|everyday, picks the role when --role is empty")
	journal.AddCommand(prompts)

	var suggestRole string
	suggest := &cobra.Command{
		Use:   "suggest <draft>",
		Short: "Suggest follow-up questions for a draft entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				suggestions, err := app.JournalCLI.Suggestions(ctx, strings.Join(args, " "), suggestRole)
				if err != nil {
					return err
				}
				return emit(cmd, opts, suggestions, func(w io.Writer) {
					for _, s := range suggestions {
						_, _ = fmt.Fprintln(w, "- "+s)
					}
				})
			})
		},
	}
	suggest.Flags().StringVar(&suggestRole, "role", "", "beginner|amateur|pro")
	journal.AddCommand(suggest)

	journal.AddCommand(newQuestionCmd(opts))
	return journal
}

func newQuestionCmd(opts *rootOptions) *cobra.Command {
	question := &cobra.Command{Use: "question", Short: "The daily question"}

	question.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show today's question",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				q, err := app.JournalCLI.Question(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, q, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "%s  %s\n", q.Date, q.Question)
					if q.Answered {
						_, _ = fmt.Fprintf(w, "answered: %s\n", q.Answer)
					}
				})
			})
		},
	})

	question.AddCommand(&cobra.Command{
		Use:   "answer <text>",
		Short: "Answer today's question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.JournalCLI.Answer(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "answer saved for %s\n", out.Question.Date)
					printOutcomes(w, out.Outcomes)
				})
			})
		},
	})
	return question
}

func entryContent(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read entry file: %w", err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
}

func entryHeadline(e journaldto.EntryOutput) string {
	if e.Title != "" {
		return e.Title
	}
	line, _, _ := strings.Cut(strings.TrimSpace(e.Content), "\n")
	if runes := []rune(line); len(runes) > 60 {
		return string(runes[:60]) + "…"
	}
	return line
}
