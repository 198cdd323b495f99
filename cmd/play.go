package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/schoolhelper/internal/problemgen"
	"github.com/abhisek/schoolhelper/internal/round"
	"github.com/abhisek/schoolhelper/internal/screens/play"
	"github.com/abhisek/schoolhelper/internal/speech"
	"github.com/abhisek/schoolhelper/internal/store"
	"github.com/abhisek/schoolhelper/internal/trophies"
	"github.com/abhisek/schoolhelper/internal/ui/theme"
	"github.com/abhisek/schoolhelper/internal/vocab"
)

// defaultPlayer is used when no --player is given and nobody played before.
const defaultPlayer = "Player 1"

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round of a game",
	Long: `Play a round of questions. Answer with the choice's number.
To type the answer itself, start with "=" (for example =12).

While a question is open, type "?" to hear it again or "quit" to stop.`,
}

var playMathCmd = &cobra.Command{
	Use:   "math",
	Short: "Arithmetic drill",
	RunE: func(cmd *cobra.Command, args []string) error {
		val, _ := cmd.Flags().GetString("difficulty")
		d, err := problemgen.ParseDifficulty(val)
		if err != nil {
			return err
		}
		return runRound(cmd, round.Game{Type: store.GameMath, Difficulty: d})
	},
}

var playNumbersCmd = &cobra.Command{
	Use:   "numbers",
	Short: "Number games: recognize, compare, count",
	RunE: func(cmd *cobra.Command, args []string) error {
		val, _ := cmd.Flags().GetString("mode")
		m, err := problemgen.ParseMode(val)
		if err != nil {
			return err
		}
		return runRound(cmd, round.Game{Type: store.GameNumbers, Mode: m})
	},
}

var playWordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Sight words: hear a word, find it",
	RunE: func(cmd *cobra.Command, args []string) error {
		words, err := loadVocabulary(cmd)
		if err != nil {
			return err
		}
		return runRound(cmd, round.Game{Type: store.GameWords, Vocabulary: words})
	},
}

func init() {
	playCmd.PersistentFlags().String("player", "", "Player name (default: the last player)")
	playCmd.PersistentFlags().Int("questions", 0, "Questions per round (default from config)")
	playCmd.PersistentFlags().Bool("mute", false, "Never play audio; show words on screen instead")

	playMathCmd.Flags().String("difficulty", string(problemgen.Easy), "Difficulty: easy, medium or hard")
	playNumbersCmd.Flags().String("mode", string(problemgen.ModeRecognize), "Mode: recognize, compare or count")
	playWordsCmd.Flags().String("vocab", "", "YAML word list (default from config, else built-in)")

	playCmd.AddCommand(playMathCmd)
	playCmd.AddCommand(playNumbersCmd)
	playCmd.AddCommand(playWordsCmd)
}

// loadVocabulary resolves --vocab, then vocab.file, then the built-in list.
func loadVocabulary(cmd *cobra.Command) ([]string, error) {
	path, _ := cmd.Flags().GetString("vocab")
	if path == "" {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return nil, err
		}
		path = cfg.Vocab.File
	}
	if path == "" {
		return vocab.Default(), nil
	}
	list, err := vocab.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return list.Words, nil
}

func runRound(cmd *cobra.Command, game round.Game) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Validate before touching the database or audio devices.
	src, err := round.NewSource(problemgen.NewRandom(), game)
	if err != nil {
		return err
	}

	env, err := openPlayEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	questions, _ := cmd.Flags().GetInt("questions")
	if questions <= 0 {
		questions = env.cfg.Round.Questions
	}
	mute, _ := cmd.Flags().GetBool("mute")
	name, _ := cmd.Flags().GetString("player")

	out := cmd.OutOrStdout()
	player := env.player(ctx, name)

	r := round.New(game, src, round.Config{
		Questions:    questions,
		CorrectDelay: env.cfg.Round.CorrectDelay,
		WrongDelay:   env.cfg.Round.WrongDelay,
	})
	recorder := round.NewRecorder(env.repo, env.log)

	var presenter *speech.Presenter
	sc := play.Config{
		Round:  r,
		Record: func() round.Result { return recorder.Finish(ctx, player.ID, r) },
	}
	if spoken(game) {
		sc.Speak = func(text string) { presenter.Present(ctx, text) }
	}
	screen := play.New(sc)
	p := tea.NewProgram(screen, programOptions(ctx, cmd.InOrStdin(), out)...)

	if spoken(game) {
		resolver, capability := env.readAloud(ctx, mute, screenDisplay{p: p})
		if capability != nil {
			go func() {
				state := capability.Check(ctx)
				env.log.Debug("speech capability", zap.Stringer("state", state))
			}()
		}
		presenter = speech.NewPresenter(resolver, env.cfg.Round.SpeakDelay, func(text string, res speech.Result, err error) {
			if err != nil {
				env.log.Debug("presentation failed", zap.String("text", text), zap.Error(err))
			} else {
				env.log.Debug("presented", zap.String("text", text), zap.String("strategy", res.Strategy))
			}
			p.Send(play.PresentedMsg{Text: text, Strategy: res.Strategy, Err: err})
		})
		defer presenter.Wait()
		defer presenter.Stop()
	}

	lipgloss.Fprintln(out, theme.Title.Render(game.Title())+theme.Subtitle.Render("  — "+player.Name))
	fmt.Fprintln(out)

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrInterrupted) {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("run round: %w", err)
	}
	if err := screen.Err(); err != nil {
		return err
	}

	res := screen.Result()
	if res == nil {
		fmt.Fprintln(out, "See you next time!")
		return nil
	}
	showResult(out, r, *res)
	return nil
}

// programOptions runs the play screen on the command's streams.
func programOptions(ctx context.Context, in io.Reader, out io.Writer) []tea.ProgramOption {
	if !isTerminal(in) {
		in = &eofAsKey{r: in}
	}
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	}
	if !isTerminal(out) {
		opts = append(opts, tea.WithWindowSize(80, 24))
	}
	return opts
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(f.Fd())
}

// eofAsKey ends piped input with a ctrl+d key press, which the play
// screen reads as "no more answers". The program itself ignores EOF.
type eofAsKey struct {
	r    io.Reader
	sent bool
}

func (e *eofAsKey) Read(p []byte) (int, error) {
	if e.sent {
		return 0, io.EOF
	}
	n, err := e.r.Read(p)
	if !errors.Is(err, io.EOF) {
		return n, err
	}
	if n < len(p) {
		p[n] = 0x04
		e.sent = true
		n++
	}
	return n, nil
}

// spoken reports whether the game reads its questions aloud.
func spoken(game round.Game) bool {
	return game.Type == store.GameWords ||
		(game.Type == store.GameNumbers && game.Mode == problemgen.ModeRecognize)
}

// player resolves the player by name, the last player, or the default.
// Storage failures leave the player unsaved so the round still runs.
func (e *appEnv) player(ctx context.Context, name string) store.Player {
	if name == "" {
		name = e.pref(ctx, prefLastPlayer)
	}
	if name == "" {
		name = defaultPlayer
	}
	if e.repo == nil {
		return store.Player{Name: name}
	}
	p, err := e.repo.GetOrCreatePlayer(ctx, name)
	if err != nil {
		e.log.Warn("load player", zap.String("name", name), zap.Error(err))
		return store.Player{Name: name}
	}
	if err := e.repo.SetPref(ctx, prefLastPlayer, p.Name); err != nil {
		e.log.Warn("save last player", zap.Error(err))
	}
	return p
}

func showResult(w io.Writer, r *round.Round, res round.Result) {
	sum := res.Summary
	fmt.Fprintf(w, "── Round over: %d/%d (%d%%) ──\n", sum.Score, sum.Total, trophies.Percent(sum.Score, sum.Total))
	fmt.Fprintf(w, "Best streak: %d   Time: %s\n", sum.BestStreak, sum.Duration.Round(time.Second))

	if res.Award.Earned() {
		tier := res.Award.Tier
		msg := fmt.Sprintf("%s %s trophy!", tier.Icon(), tier.DisplayName())
		if res.Saved && !res.Award.New {
			msg += " (already in your collection)"
		}
		lipgloss.Fprintln(w, theme.TierStyle(string(tier)).Render(msg))
	} else {
		lipgloss.Fprintln(w, theme.Hint.Render("Keep practicing to earn a trophy!"))
	}

	var missed []round.Answered
	for _, a := range r.Answered() {
		if !a.Correct {
			missed = append(missed, a)
		}
	}
	if len(missed) > 0 {
		fmt.Fprintln(w, "\nLet's look again:")
		for _, a := range missed {
			fmt.Fprintf(w, "  %s  you said %s, answer %s\n", a.Prompt, a.Picked, a.Answer)
		}
	}
	if !res.Saved {
		lipgloss.Fprintln(w, theme.Hint.Render("This round was not saved."))
	}
}
