package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"fathom/internal/bootstrap"
	chatdto "fathom/internal/modules/chat/dto"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	chat := &cobra.Command{Use: "chat", Short: "Supportive chat sessions"}

	chat.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Start a chat session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ChatCLI.Start(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "chat started: %s\n\n%s\n", out.ID, out.Greeting.Content)
					printOutcomes(w, out.Outcomes)
				})
			})
		},
	})

	chat.AddCommand(&cobra.Command{
		Use:   "send <text>",
		Short: "Send a message to the active chat",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ChatCLI.Send(ctx, strings.Join(args, " "))
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintln(w, out.Reply.Content)
					printOutcomes(w, out.Outcomes)
				})
			})
		},
	})

	chat.AddCommand(&cobra.Command{
		Use:   "active",
		Short: "Show the active chat transcript",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ChatCLI.Active(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					_, _ = fmt.Fprintf(w, "chat %s started %s\n\n", out.ID, out.StartedAt.Local().Format("2006-01-02 15:04"))
					printTranscript(w, out.Messages)
				})
			})
		},
	})

	chat.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "End the active chat and save its summary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.ChatCLI.End(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, out, func(w io.Writer) {
					printSession(w, out.Session)
					printOutcomes(w, out.Outcomes)
				})
			})
		},
	})

	chat.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved chat sessions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				sessions, err := app.ChatCLI.List(ctx)
				if err != nil {
					return err
				}
				return emit(cmd, opts, sessions, func(w io.Writer) {
					if len(sessions) == 0 {
						_, _ = fmt.Fprintln(w, "no sessions")
						return
					}
					for _, s := range sessions {
						_, _ = fmt.Fprintf(w, "%s\t%s\t%d msgs\t%d min\n", s.ID, s.EndedAt.Local().Format("2006-01-02 15:04"), s.MessageCount, s.DurationMinutes)
					}
				})
			})
		},
	})

	chat.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved chat session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(opts, func(ctx context.Context, app *bootstrap.App) error {
				s, err := app.ChatCLI.Show(ctx, args[0])
				if err != nil {
					return err
				}
				return emit(cmd, opts, s, func(w io.Writer) {
					printSession(w, s)
					_, _ = fmt.Fprintln(w)
					printTranscript(w, s.Messages)
				})
			})
		},
	})
	return chat
}

func printSession(w io.Writer, s chatdto.SessionOutput) {
	_, _ = fmt.Fprintf(w, "session %s  %d messages  %d min\n", s.ID, s.MessageCount, s.DurationMinutes)
	_, _ = fmt.Fprintf(w, "summary: %s\n", s.Summary)
	for _, insight := range s.KeyInsights {
		_, _ = fmt.Fprintln(w, "  • "+insight)
	}
	if s.NotePath != "" {
		_, _ = fmt.Fprintf(w, "note: %s\n", s.NotePath)
	}
}

func printTranscript(w io.Writer, messages []chatdto.MessageDTO) {
	for _, m := range messages {
		_, _ = fmt.Fprintf(w, "[%s] %s\n", m.Role, m.Content)
	}
}
