package core

// RuntimeConfig is what the platform tells a mode about the terminal it
// renders into and how often it will be stepped.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Steps per second
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a mode reports back to the platform.
type GameState struct {
	Score    int  // Current score
	Ticks    int  // Simulation ticks run so far
	GameOver bool // Whether the run has ended
	Paused   bool
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State    GameState
	CaughtBy string // Name of the mover that ended the run, if any
}
