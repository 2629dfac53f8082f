package core

// RuntimeConfig carries what the platform knows when a game starts.
type RuntimeConfig struct {
	ScreenW int   // Screen width in characters
	ScreenH int   // Screen height in characters
	Seed    int64 // RNG seed; 0 asks the platform to pick one
}

// DefaultConfig returns an 80x24 config with no fixed seed.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
	}
}
