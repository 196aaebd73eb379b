// Package feedback plays sound effects in response to input events.
package feedback

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/spf13/afero"
	"github.com/user-none/padnav/input"
)

// SampleRate is the rate sound effects are decoded and played at.
const SampleRate = 48000

// Subscriber is the part of input.Coordinator the player listens on.
type Subscriber interface {
	Subscribe(kind input.EventKind, h input.Handler) (unsubscribe func())
}

// player is the part of *audio.Player used for one-shot effects.
type player interface {
	SetVolume(volume float64)
	Play()
}

// Options selects the clip played for each event kind. Kinds without a path
// are silent.
type Options struct {
	Clips  map[input.EventKind]string
	Volume float64
	Muted  bool
}

// SFX plays a short clip per event. Clips are decoded once at load time
// into 16-bit stereo PCM.
type SFX struct {
	clips     map[input.EventKind][]byte
	volume    float64
	muted     bool
	newPlayer func([]byte) player
	logger    *slog.Logger
}

// Load decodes the configured clips from fs for playback on ctx. A clip that
// fails to load is logged and skipped; sound is never required for input to
// work.
func Load(ctx *audio.Context, fs afero.Fs, opts Options, logger *slog.Logger) *SFX {
	s := newSFX(opts, func(b []byte) player { return ctx.NewPlayerFromBytes(b) }, logger)
	for kind, path := range opts.Clips {
		if path == "" {
			continue
		}
		pcm, err := loadClip(fs, path, ctx.SampleRate())
		if err != nil {
			s.logger.Warn("failed to load sound effect", "event", kind, "path", path, "error", err)
			continue
		}
		s.clips[kind] = pcm
	}
	return s
}

func newSFX(opts Options, newPlayer func([]byte) player, logger *slog.Logger) *SFX {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SFX{
		clips:     make(map[input.EventKind][]byte),
		volume:    opts.Volume,
		muted:     opts.Muted,
		newPlayer: newPlayer,
		logger:    logger,
	}
}

// Attach subscribes the player to every event kind it has a clip for. The
// returned func detaches it.
func (s *SFX) Attach(sub Subscriber) (detach func()) {
	var unsubs []func()
	for kind := range s.clips {
		unsubs = append(unsubs, sub.Subscribe(kind, s.handle))
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}

// SetMuted mutes or unmutes playback.
func (s *SFX) SetMuted(muted bool) {
	s.muted = muted
}

func (s *SFX) handle(e input.Event) {
	// Repeats would machine-gun the nav clip at the repeat rate.
	if e.Kind == input.EventNav && e.Mode == input.ModeRepeat {
		return
	}
	s.Play(e.Kind)
}

// Play starts the clip for kind, if any. Playback does not block.
func (s *SFX) Play(kind input.EventKind) {
	pcm, ok := s.clips[kind]
	if !ok || s.muted {
		return
	}
	p := s.newPlayer(pcm)
	p.SetVolume(s.volume)
	p.Play()
}

// loadClip reads and decodes a wav or mp3 file into raw PCM.
func loadClip(fs afero.Fs, path string, sampleRate int) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decodeClip(path, bytes.NewReader(data), sampleRate)
}

func decodeClip(name string, r io.Reader, sampleRate int) ([]byte, error) {
	var stream io.Reader
	var err error
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(sampleRate, r)
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(sampleRate, r)
	default:
		return nil, fmt.Errorf("unsupported sound format %q", filepath.Ext(name))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return pcm, nil
}
