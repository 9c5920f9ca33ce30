// Package alert implements the sound and desktop-notification side
// effects of phase transitions. Every failure here is logged and
// swallowed: reminders are not worth crashing over.
package alert

import (
	"log"
	"sync"

	"github.com/gen2brain/beeep"
)

// Tones for the two phase alerts.
const (
	workEndFreq = 523.25 // C5
	restEndFreq = 659.25 // E5
	toneMillis  = 400
)

// Beeper plays phase-end tones through the system beep facility.
type Beeper struct {
	mu      sync.Mutex
	enabled bool
	prime   sync.Once
}

func NewBeeper(enabled bool) *Beeper {
	return &Beeper{enabled: enabled}
}

// SetEnabled toggles sound at runtime (settings view).
func (b *Beeper) SetEnabled(on bool) {
	b.mu.Lock()
	b.enabled = on
	b.mu.Unlock()
}

func (b *Beeper) on() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Prime exercises the audio path once so a broken backend is logged
// at session start instead of at the first phase end. Idempotent.
func (b *Beeper) Prime() {
	if !b.on() {
		return
	}
	b.prime.Do(func() {
		if err := beeep.Beep(beeep.DefaultFreq, 0); err != nil {
			log.Printf("alert: audio unavailable: %v", err)
		}
	})
}

func (b *Beeper) WorkEnd() {
	if !b.on() {
		return
	}
	if err := beeep.Beep(workEndFreq, toneMillis); err != nil {
		log.Printf("alert: work-end beep: %v", err)
	}
}

func (b *Beeper) RestEnd() {
	if !b.on() {
		return
	}
	if err := beeep.Beep(restEndFreq, toneMillis); err != nil {
		log.Printf("alert: rest-end beep: %v", err)
	}
}

// Silence is a no-op for system beeps, which are short and cannot be
// interrupted; the method exists so a richer playback backend can
// honor the stop-current-sound contract.
func (b *Beeper) Silence() {}

// Notifier shows desktop notifications when enabled.
type Notifier struct {
	mu      sync.Mutex
	enabled bool
}

func NewNotifier(enabled bool) *Notifier {
	return &Notifier{enabled: enabled}
}

func (n *Notifier) SetEnabled(on bool) {
	n.mu.Lock()
	n.enabled = on
	n.mu.Unlock()
}

func (n *Notifier) Notify(title, body string) {
	n.mu.Lock()
	on := n.enabled
	n.mu.Unlock()
	if !on {
		return
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		log.Printf("alert: notify: %v", err)
	}
}
