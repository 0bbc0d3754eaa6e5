package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/edubot/edubot/internal/export"
	"github.com/edubot/edubot/internal/store"
	"github.com/edubot/edubot/internal/ui/theme"
)

var sessionsCmd = &cobra.Command{
	Use:     "sessions",
	Aliases: []string{"session"},
	Short:   "Inspect stored chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		userID, _ := cmd.Flags().GetString("user")

		b, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		sessions, err := b.SessionRepo().List(cmd.Context(), store.SessionFilter{UserID: userID, Limit: limit})
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions found.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-7s  %5s  %-7s  %s\n",
			"Session", "Updated", "Mode", "Msgs", "Quiz", "Title")
		fmt.Println(theme.Rule(110))
		for _, s := range sessions {
			quiz := "-"
			if st := s.MCQState; st != nil && st.Total > 0 {
				quiz = fmt.Sprintf("%d/%d", st.Score, st.Total)
			}
			fmt.Printf("%-36s  %-19s  %-7s  %5d  %-7s  %s\n",
				truncate(s.SessionID, 36),
				s.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
				s.Mode,
				len(s.Messages),
				quiz,
				s.DisplayTitle(),
			)
		}
		return nil
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a session transcript",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		s, err := b.SessionRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get session %s: %w", args[0], err)
		}

		fmt.Println(theme.Title.Render(s.DisplayTitle()))
		fmt.Println(theme.Field("Session", s.SessionID))
		if s.UserID != "" {
			fmt.Println(theme.Field("User", s.UserID))
		}
		fmt.Println(theme.Field("Mode", string(s.Mode)))
		if st := s.MCQState; st != nil {
			fmt.Println(theme.Field("Quiz", fmt.Sprintf("%d/%d (active: %v)", st.Score, st.Total, st.Active)))
		}
		if s.CurrentTopic != "" {
			fmt.Println(theme.Field("Topic", s.CurrentTopic))
		}
		fmt.Println(theme.Field("Updated", s.UpdatedAt.Local().Format(time.RFC1123)))
		fmt.Println(theme.Rule(60))

		for _, m := range s.Messages {
			who := theme.Student.Render("Student")
			if m.Role == store.RoleBot {
				who = theme.Bot.Render("EduBot")
			}
			fmt.Printf("%s %s\n%s\n\n", who, theme.Hint.Render(m.Timestamp.Local().Format("15:04:05")), m.Text)
		}
		return nil
	},
}

var sessionsExportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session as json, jsonl, yaml or md",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		out, _ := cmd.Flags().GetString("out")

		exp, err := export.New(format)
		if err != nil {
			return err
		}

		b, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		s, err := b.SessionRepo().Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("get session %s: %w", args[0], err)
		}

		if out == "" {
			return exp.Export(s, os.Stdout)
		}
		if info, err := os.Stat(out); err == nil && info.IsDir() {
			out = filepath.Join(out, s.SessionID+"."+exp.Extension())
		}
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		if err := exp.Export(s, f); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "%s wrote %s\n", theme.Mark(true), out)
		return nil
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>...",
	Short: "Delete sessions",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer b.Close()

		var failed []string
		for _, id := range args {
			if err := b.SessionRepo().Delete(cmd.Context(), id); err != nil {
				fmt.Printf("%s %s: %v\n", theme.Mark(false), id, err)
				failed = append(failed, id)
				continue
			}
			fmt.Printf("%s deleted %s\n", theme.Mark(true), id)
		}
		if len(failed) > 0 {
			return fmt.Errorf("could not delete: %s", strings.Join(failed, ", "))
		}
		return nil
	},
}

func init() {
	sessionsListCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
	sessionsListCmd.Flags().StringP("user", "u", "", "Only sessions of this user id")

	sessionsExportCmd.Flags().StringP("format", "f", "md", "Export format: "+strings.Join(export.Formats, ", "))
	sessionsExportCmd.Flags().StringP("out", "o", "", "Output file or directory (default: stdout)")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsExportCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
}
