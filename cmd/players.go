package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/schoolhelper/internal/ui/theme"
)

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List players",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		players, err := env.repo.Players(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(players) == 0 {
			lipgloss.Fprintln(w, theme.Hint.Render("No players yet. Start with: schoolhelper play math --player NAME"))
			return nil
		}

		last := env.pref(ctx, prefLastPlayer)
		lipgloss.Fprintln(w, theme.Title.Render("Players"))
		for _, p := range players {
			line := fmt.Sprintf("  %-20s joined %s", p.Name, p.CreatedAt.Local().Format("2006-01-02"))
			if p.Name == last {
				line += theme.Hint.Render("  (last played)")
			}
			lipgloss.Fprintln(w, line)
		}
		return nil
	},
}
