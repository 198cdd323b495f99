package cmd

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/schoolhelper/internal/store"
	"github.com/abhisek/schoolhelper/internal/trophies"
	"github.com/abhisek/schoolhelper/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent rounds",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		p, err := env.lookupPlayer(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		sessions, err := env.repo.RecentSessions(cmd.Context(), p.ID, limit)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Title.Render(p.Name+"'s recent rounds"))
		if len(sessions) == 0 {
			lipgloss.Fprintln(w, theme.Hint.Render("No rounds played yet."))
			return nil
		}
		for _, s := range sessions {
			tier := trophies.TierFor(s.Score, s.TotalQuestions)
			fmt.Fprintf(w, "  %s  %-18s %2d/%-2d %3d%%  %6s  %s\n",
				s.CreatedAt.Local().Format("2006-01-02 15:04"),
				sessionLabel(s),
				s.Score, s.TotalQuestions,
				trophies.Percent(s.Score, s.TotalQuestions),
				(time.Duration(s.TimeSeconds) * time.Second).String(),
				tier.Icon())
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("player", "", "Player name (default: the last player)")
	historyCmd.Flags().Int("limit", 10, "Number of rounds to show (0 for all)")
}

// sessionLabel names the game and its difficulty or mode.
func sessionLabel(s store.Session) string {
	switch {
	case s.Difficulty != "":
		return fmt.Sprintf("%s (%s)", s.GameType, s.Difficulty)
	case s.Mode != "":
		return fmt.Sprintf("%s (%s)", s.GameType, s.Mode)
	}
	return string(s.GameType)
}
