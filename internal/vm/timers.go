package vm

// TickTimers decrements the delay and sound timers by one, stopping at zero.
// The driver calls it at TimerFrequency, independent of the instruction rate.
func (m *Machine) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// DelayTimer returns the current value of the delay timer.
func (m *Machine) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the current value of the sound timer.
func (m *Machine) SoundTimer() uint8 {
	return m.soundTimer
}

// SoundActive returns whether the buzzer should sound.
func (m *Machine) SoundActive() bool {
	return m.soundTimer > 0
}
