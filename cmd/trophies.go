package cmd

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abhisek/schoolhelper/internal/store"
	"github.com/abhisek/schoolhelper/internal/trophies"
	"github.com/abhisek/schoolhelper/internal/ui/theme"
)

var trophiesCmd = &cobra.Command{
	Use:   "trophies",
	Short: "Show a player's trophy case",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		p, err := env.lookupPlayer(cmd)
		if err != nil {
			return err
		}

		list := trophies.NewService(env.repo, env.log).List(ctx, p.ID)
		w := cmd.OutOrStdout()
		lipgloss.Fprintln(w, theme.Title.Render(p.Name+"'s trophies"))
		if len(list) == 0 {
			lipgloss.Fprintln(w, theme.Hint.Render("No trophies yet. Score 50% or more in a round to earn one!"))
			return nil
		}

		title := cases.Title(language.English)
		for _, t := range list {
			tier := trophies.Tier(t.TrophyType)
			line := fmt.Sprintf("  %s %-7s %-8s %s", tier.Icon(), tier.DisplayName(),
				title.String(string(t.GameType)), t.EarnedAt.Local().Format("2006-01-02"))
			lipgloss.Fprintln(w, theme.TierStyle(t.TrophyType).Render(line))
		}

		counts := trophies.Counts(list)
		var parts []string
		for _, tier := range trophies.AllTiers() {
			parts = append(parts, fmt.Sprintf("%s %d", tier.Icon(), counts[tier]))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+strings.Join(parts, "   "))
		return nil
	},
}

func init() {
	trophiesCmd.Flags().String("player", "", "Player name (default: the last player)")
}

// lookupPlayer finds an existing player from --player or the last player.
func (e *appEnv) lookupPlayer(cmd *cobra.Command) (store.Player, error) {
	name, _ := cmd.Flags().GetString("player")
	if name == "" {
		name = e.pref(cmd.Context(), prefLastPlayer)
	}
	if name == "" {
		return store.Player{}, errors.New("no player yet; pass --player NAME")
	}
	p, err := e.repo.PlayerByName(cmd.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		return store.Player{}, fmt.Errorf("no player named %q", name)
	}
	if err != nil {
		return store.Player{}, fmt.Errorf("find player: %w", err)
	}
	return p, nil
}
