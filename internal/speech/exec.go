package speech

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// DefaultPlayerCommand plays a file and exits; it fails when the file is
// missing or undecodable.
const DefaultPlayerCommand = "ffplay -nodisp -autoexit -loglevel quiet"

// ExecPlayer plays audio files with an external command. The file path is
// appended as the last argument.
type ExecPlayer struct {
	bin  string
	args []string
}

// NewExecPlayer parses a command line such as DefaultPlayerCommand and
// checks that the program exists.
func NewExecPlayer(commandLine string) (*ExecPlayer, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, errors.New("empty player command")
	}
	bin, err := exec.LookPath(fields[0])
	if err != nil {
		return nil, fmt.Errorf("audio player: %w", err)
	}
	return &ExecPlayer{bin: bin, args: fields[1:]}, nil
}

func (p *ExecPlayer) Play(ctx context.Context, path string) error {
	args := append(slices.Clone(p.args), path)
	out, err := exec.CommandContext(ctx, p.bin, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("play %s: %w: %s", path, err, msg)
		}
		return fmt.Errorf("play %s: %w", path, err)
	}
	return nil
}

// Engine names a command-line synthesis engine.
type Engine string

const (
	EngineAuto   Engine = "auto"
	EngineSay    Engine = "say"
	EngineEspeak Engine = "espeak-ng"
	EngineNone   Engine = "none"
)

// ResolveEngine maps "auto" to the usual engine for goos.
func ResolveEngine(e Engine, goos string) Engine {
	if e != EngineAuto && e != "" {
		return e
	}
	if goos == "darwin" {
		return EngineSay
	}
	return EngineEspeak
}

// Words per minute at rate 1.0 for both engines.
const baseWPM = 175

// ExecSynthesizer speaks through `say` (macOS) or `espeak-ng`.
type ExecSynthesizer struct {
	engine Engine
	bin    string

	mu      sync.Mutex
	current *utterance
}

// utterance is one engine process. killed is set under the synthesizer's
// mutex when Cancel stops it.
type utterance struct {
	cmd    *exec.Cmd
	killed bool
}

// NewExecSynthesizer locates the engine's binary.
func NewExecSynthesizer(engine Engine) (*ExecSynthesizer, error) {
	switch engine {
	case EngineSay, EngineEspeak:
	default:
		return nil, fmt.Errorf("unsupported speech engine %q", engine)
	}
	bin, err := exec.LookPath(string(engine))
	if err != nil {
		return nil, fmt.Errorf("speech engine: %w", err)
	}
	return &ExecSynthesizer{engine: engine, bin: bin}, nil
}

// Engine returns the engine this synthesizer drives.
func (s *ExecSynthesizer) Engine() Engine { return s.engine }

func (s *ExecSynthesizer) Speak(ctx context.Context, u Utterance) error {
	cmd := exec.CommandContext(ctx, s.bin, engineArgs(s.engine, u)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.engine, err)
	}

	cur := &utterance{cmd: cmd}
	s.mu.Lock()
	s.current = cur
	s.mu.Unlock()

	err := cmd.Wait()

	s.mu.Lock()
	if s.current == cur {
		s.current = nil
	}
	killed := cur.killed
	s.mu.Unlock()

	if killed {
		return fmt.Errorf("%s: %w", s.engine, ErrInterrupted)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", s.engine, err)
	}
	return nil
}

func (s *ExecSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.killed = true
		_ = s.current.cmd.Process.Kill()
		s.current = nil
	}
}

func (s *ExecSynthesizer) Voices(ctx context.Context) ([]Voice, error) {
	var args []string
	switch s.engine {
	case EngineSay:
		args = []string{"-v", "?"}
	case EngineEspeak:
		args = []string{"--voices"}
	}
	out, err := exec.CommandContext(ctx, s.bin, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("list %s voices: %w", s.engine, err)
	}
	if s.engine == EngineSay {
		return parseSayVoices(string(out)), nil
	}
	return parseEspeakVoices(string(out)), nil
}

// engineArgs translates an utterance into command-line arguments.
func engineArgs(e Engine, u Utterance) []string {
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	wpm := strconv.Itoa(int(math.Round(baseWPM * rate)))

	switch e {
	case EngineSay:
		var args []string
		if u.Voice != "" {
			args = append(args, "-v", u.Voice)
		}
		text := u.Text
		if u.Volume <= 0 {
			text = "[[volm 0]] " + text
		}
		return append(args, "-r", wpm, text)

	default:
		pitch := u.Pitch
		if pitch <= 0 {
			pitch = 1
		}
		args := []string{
			"-a", strconv.Itoa(clamp(int(math.Round(100*u.Volume)), 0, 200)),
			"-s", wpm,
			"-p", strconv.Itoa(clamp(int(math.Round(50*pitch)), 0, 99)),
		}
		if u.Voice != "" {
			args = append(args, "-v", u.Voice)
		}
		return append(args, u.Text)
	}
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
