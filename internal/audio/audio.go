// Package audio loops the alarm sound through whatever command-line player
// the host has. No Go audio library is involved: a child process keeps the
// binary free of audio-stack cgo and matches how the sound is used: start
// on alarm entry, kill on exit.
package audio

import (
	"os/exec"
	"sync"

	"github.com/qenapp/qen/internal/logger"
)

// players are probed in order on first use. Each must accept a file path and
// exit when killed.
var players = [][]string{
	{"paplay"},
	{"aplay", "-q"},
	{"afplay"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
}

type Player struct {
	soundPath string

	mu      sync.Mutex
	playing bool
	cmd     *exec.Cmd
	binary  []string
	probed  bool
}

func New(soundPath string) *Player {
	return &Player{soundPath: soundPath}
}

// Start begins looping the alarm sound. Playback failure is logged and
// otherwise ignored; the alarm overlay is presented regardless.
func (p *Player) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing {
		return
	}
	p.playing = true

	if !p.probed {
		p.probed = true
		for _, candidate := range players {
			if _, err := exec.LookPath(candidate[0]); err == nil {
				p.binary = candidate
				break
			}
		}
		if p.binary == nil {
			logger.Warn("No audio player found, alarms will be silent")
		}
	}

	if p.binary == nil || p.soundPath == "" {
		return
	}

	go p.loop()
}

func (p *Player) loop() {
	for {
		p.mu.Lock()
		if !p.playing {
			p.mu.Unlock()
			return
		}
		args := append(p.binary[1:], p.soundPath)
		cmd := exec.Command(p.binary[0], args...)
		p.cmd = cmd
		p.mu.Unlock()

		if err := cmd.Start(); err != nil {
			logger.Warn("Alarm sound playback failed", "error", err)
			return
		}
		cmd.Wait()
	}
}

// Stop halts playback and kills the player process if one is running.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return
	}
	p.playing = false
	if p.cmd != nil && p.cmd.Process != nil {
		p.cmd.Process.Kill()
	}
	p.cmd = nil
}
