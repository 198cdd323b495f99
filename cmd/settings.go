package cmd

import (
	"errors"
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/schoolhelper/internal/speech"
	"github.com/abhisek/schoolhelper/internal/ui/theme"
)

// sampleSentence is read by "settings say" when no text is given.
const sampleSentence = "Hello! I will read words for you!"

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Voice and audio settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		w := cmd.OutOrStdout()
		show := func(label, v string) {
			if v == "" {
				v = theme.Hint.Render("(default)")
			}
			lipgloss.Fprintln(w, fmt.Sprintf("  %-14s %s", label, v))
		}
		lipgloss.Fprintln(w, theme.Title.Render("Settings"))
		show("Speech voice", env.pref(ctx, prefSpeechVoice))
		show("Audio voice", env.pref(ctx, prefAudioVoice))
		show("Audio format", env.cfg.Audio.PreferredFormat)
		show("Speech engine", env.cfg.Speech.Engine)
		show("Last player", env.pref(ctx, prefLastPlayer))
		return nil
	},
}

var settingsVoicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the English speech voices on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		ctx := cmd.Context()
		dev := env.speechDevices(false)
		if dev.synth == nil {
			return errors.New("no speech engine found; install espeak-ng or set speech.engine")
		}
		voices, err := dev.synth.Voices(ctx)
		if err != nil {
			return fmt.Errorf("list voices: %w", err)
		}

		english := speech.EnglishVoices(voices)
		if len(english) == 0 {
			english = voices
		}
		chosen, _ := speech.PreferredVoice(english, env.pref(ctx, prefSpeechVoice))

		w := cmd.OutOrStdout()
		for _, v := range english {
			line := fmt.Sprintf("  %-28s %-6s %s", v.Name, v.Lang, v.Gender)
			if v.Name == chosen.Name {
				line = theme.Correct.Render("* " + strings.TrimPrefix(line, "  "))
			}
			lipgloss.Fprintln(w, line)
		}
		return nil
	},
}

var settingsVoiceCmd = &cobra.Command{
	Use:   "voice NAME",
	Short: "Choose the speech synthesis voice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPref(cmd, prefSpeechVoice, args[0], "Speech voice")
	},
}

var settingsAudioVoiceCmd = &cobra.Command{
	Use:   "audio-voice ID",
	Short: "Choose the recorded audio voice folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setPref(cmd, prefAudioVoice, args[0], "Audio voice")
	},
}

var settingsSayCmd = &cobra.Command{
	Use:   "say [TEXT]",
	Short: "Read a sentence aloud to try the current voice",
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			text = sampleSentence
		}

		env, err := openPlayEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		mute, _ := cmd.Flags().GetBool("mute")
		out := cmd.OutOrStdout()
		resolver, _ := env.readAloud(cmd.Context(), mute, termDisplay{w: out})

		res, err := resolver.Resolve(cmd.Context(), text)
		if err != nil {
			return fmt.Errorf("read aloud: %w", err)
		}
		lipgloss.Fprintln(out, theme.Hint.Render("via "+res.Strategy))
		return nil
	},
}

func init() {
	settingsSayCmd.Flags().Bool("mute", false, "Skip audio and show the text")

	settingsCmd.AddCommand(settingsVoicesCmd)
	settingsCmd.AddCommand(settingsVoiceCmd)
	settingsCmd.AddCommand(settingsAudioVoiceCmd)
	settingsCmd.AddCommand(settingsSayCmd)
}

func setPref(cmd *cobra.Command, key, value, label string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%s must not be empty", strings.ToLower(label))
	}
	env, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.repo.SetPref(cmd.Context(), key, value); err != nil {
		return fmt.Errorf("save %s: %w", strings.ToLower(label), err)
	}
	lipgloss.Fprintln(cmd.OutOrStdout(), theme.Correct.Render(fmt.Sprintf("%s set to %s", label, value)))
	return nil
}
