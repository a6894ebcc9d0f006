// Package sound plays each player's engine cues through Ebitengine's audio
// context.
package sound

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"

	"split-racer/internal/player"
)

const SampleRate = 44100

// Voice is one playable sound. *audio.Player satisfies it.
type Voice interface {
	Play()
	Pause()
	IsPlaying() bool
	SetPosition(offset time.Duration) error
	SetVolume(volume float64)
	Close() error
}

// Looping cues repeat until the car's state changes.
func Looping(c player.Cue) bool {
	return c == player.CueIdle || c == player.CueMoving
}

// Clip is a decoded 16-bit stereo wav at SampleRate.
type Clip struct {
	Name string
	PCM  []byte
}

// LoadClip decodes the wav at path.
func LoadClip(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sound %s: %w", path, err)
	}
	defer f.Close()

	s, err := wav.DecodeWithSampleRate(SampleRate, f)
	if err != nil {
		return nil, fmt.Errorf("decode sound %s: %w", path, err)
	}
	pcm, err := io.ReadAll(s)
	if err != nil {
		return nil, fmt.Errorf("read sound %s: %w", path, err)
	}
	return &Clip{Name: path, PCM: pcm}, nil
}

// Bank holds the decoded clip and volume of each cue.
type Bank struct {
	ctx     *audio.Context
	clips   map[player.Cue]*Clip
	volumes map[player.Cue]float64
}

// NewBank loads one clip per cue. Any missing file fails the whole bank.
func NewBank(ctx *audio.Context, paths map[player.Cue]string, volumes map[player.Cue]float64) (*Bank, error) {
	b := &Bank{
		ctx:     ctx,
		clips:   make(map[player.Cue]*Clip, len(paths)),
		volumes: volumes,
	}
	for cue, path := range paths {
		clip, err := LoadClip(path)
		if err != nil {
			return nil, fmt.Errorf("%s cue: %w", cue, err)
		}
		b.clips[cue] = clip
	}
	return b, nil
}

// NewChannel creates the voices for one player.
func (b *Bank) NewChannel() (*Channel, error) {
	voices := make(map[player.Cue]Voice, len(b.clips))
	for cue, clip := range b.clips {
		var (
			p   *audio.Player
			err error
		)
		if Looping(cue) {
			p, err = b.ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(clip.PCM), int64(len(clip.PCM))))
		} else {
			p = b.ctx.NewPlayerFromBytes(clip.PCM)
		}
		if err != nil {
			return nil, fmt.Errorf("%s cue: %w", cue, err)
		}
		voices[cue] = p
	}
	return NewChannel(voices, b.volumes), nil
}

// Channel plays one player's cues. Only one of idle, moving and collision
// sounds at a time; the start cue plays over them.
type Channel struct {
	voices  map[player.Cue]Voice
	current player.Cue
}

// NewChannel wraps already created voices. Cues without a voice are silent.
func NewChannel(voices map[player.Cue]Voice, volumes map[player.Cue]float64) *Channel {
	for cue, v := range voices {
		if vol, ok := volumes[cue]; ok {
			v.SetVolume(vol)
		}
	}
	return &Channel{voices: voices}
}

// Silent returns a channel that plays nothing.
func Silent() *Channel {
	return &Channel{voices: map[player.Cue]Voice{}}
}

func (c *Channel) Current() player.Cue { return c.current }

// PlayStart plays the engine start cue from the beginning.
func (c *Channel) PlayStart() {
	if v, ok := c.voices[player.CueStart]; ok {
		_ = v.SetPosition(0)
		v.Play()
	}
}

// Set switches to cue. Asking for the cue already playing does nothing, so
// loops are not restarted every frame.
func (c *Channel) Set(cue player.Cue) {
	if cue == c.current || cue == player.CueStart {
		return
	}
	if v, ok := c.voices[c.current]; ok {
		v.Pause()
		_ = v.SetPosition(0)
	}
	c.current = cue
	if v, ok := c.voices[cue]; ok {
		v.Play()
	}
}

// Close stops and releases every voice.
func (c *Channel) Close() error {
	var errs []error
	for cue, v := range c.voices {
		v.Pause()
		if err := v.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s cue: %w", cue, err))
		}
	}
	c.voices = map[player.Cue]Voice{}
	c.current = player.CueNone
	return errors.Join(errs...)
}
