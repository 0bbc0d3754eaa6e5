package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/edubot/edubot/internal/chat"
	"github.com/edubot/edubot/internal/locale"
	"github.com/edubot/edubot/internal/logger"
	"github.com/edubot/edubot/internal/ui/theme"
)

var askCmd = &cobra.Command{
	Use:   "ask <message...>",
	Short: "Send one chat turn and print the reply",
	Long: "Runs a single turn through the same controller as the HTTP API. Pass --session\n" +
		"to continue a conversation (including an MCQ quiz) across invocations.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		log := logger.Nop()
		if verbose {
			if log, err = logger.NewWithOptions(cfg.LogOptions()); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()
		}

		sessionID, _ := cmd.Flags().GetString("session")
		newSession := sessionID == ""
		if newSession {
			sessionID = uuid.NewString()
		}
		lang, _ := cmd.Flags().GetString("lang")
		userID, _ := cmd.Flags().GetString("user")

		svc, err := buildServices(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer svc.Close()

		reply, err := svc.chat.Handle(cmd.Context(), chat.Request{
			SessionID: sessionID,
			UserID:    userID,
			Message:   strings.Join(args, " "),
			Language:  locale.Parse(lang),
		})
		if err != nil {
			return err
		}

		fmt.Println(theme.Bot.Render("EduBot:"))
		fmt.Println(theme.Body.Render(reply))
		if newSession {
			fmt.Println()
			fmt.Println(theme.Hint.Render("continue with --session " + sessionID))
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringP("session", "s", "", "Session id to continue (default: a new session)")
	askCmd.Flags().StringP("lang", "l", "english", "Reply language: english, sinhala or tamil")
	askCmd.Flags().StringP("user", "u", "", "User id to attach to a new session")
	askCmd.Flags().BoolP("verbose", "v", false, "Log model calls to stderr")
}
