package constants

import "time"

// Sandbox Presentation
const (
	// StatsLogInterval is how often the sandboxes log pass statistics in debug mode
	StatsLogInterval = 5 * time.Second

	// ImpactCooldown is the minimum gap between two impact sounds
	ImpactCooldown = 60 * time.Millisecond

	// ImpactToneHz is the base pitch of the impact cue
	ImpactToneHz = 660.0

	// ImpactDuration is the length of one impact cue
	ImpactDuration = 35 * time.Millisecond

	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 48000
)

// Logging
const (
	// LogDir holds sandbox log files, relative to the working directory
	LogDir = "logs"

	// LogFileName is the active log file inside LogDir
	LogFileName = "collide.log"

	// MaxLogSize triggers rotation of the active log file (10 MB)
	MaxLogSize = 10 * 1024 * 1024
)
