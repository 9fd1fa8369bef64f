package main

import (
	"encoding/binary"
	"fmt"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

const (
	beepSampleRate = 44100
	beepFrequency  = 440
	beepAmplitude  = 0x1000
)

// OtoSpeaker is a square wave buzzer. The cpu switches it on and off and
// oto pulls samples from it on its own goroutine.
type OtoSpeaker struct {
	ctx    *oto.Context
	player *oto.Player

	on    atomic.Bool
	phase int
}

// NewOtoSpeaker opens the default audio device and starts a silent player.
func NewOtoSpeaker() (*OtoSpeaker, error) {
	op := &oto.NewContextOptions{
		SampleRate:   beepSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	s := &OtoSpeaker{ctx: ctx}
	s.player = ctx.NewPlayer(s)
	s.player.Play()
	return s, nil
}

// StartSound turns the tone on.
func (s *OtoSpeaker) StartSound() {
	s.on.Store(true)
}

// StopSound turns the tone off.
func (s *OtoSpeaker) StopSound() {
	s.on.Store(false)
}

// Read implements io.Reader for the oto player.
func (s *OtoSpeaker) Read(p []byte) (int, error) {
	on := s.on.Load()
	period := beepSampleRate / beepFrequency

	n := len(p) / 2 * 2
	for i := 0; i < n; i += 2 {
		var sample int16
		if on {
			sample = beepAmplitude
			if s.phase >= period/2 {
				sample = -beepAmplitude
			}
		}
		binary.LittleEndian.PutUint16(p[i:], uint16(sample))
		s.phase = (s.phase + 1) % period
	}
	return n, nil
}

// Close stops the player.
func (s *OtoSpeaker) Close() {
	s.StopSound()
	_ = s.player.Close()
}
