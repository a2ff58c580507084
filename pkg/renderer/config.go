package renderer

// Config controls how a render is split up and scheduled.
// Camera and sampling parameters live in the scene's CameraConfig.
type Config struct {
	NumWorkers int   // Parallel workers (0 = one per logical CPU)
	TileSize   int   // Edge length of each square tile in pixels
	Seed       int64 // Base seed; each tile derives its own generator from it
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		NumWorkers: 0,
		TileSize:   32,
		Seed:       42,
	}
}

// withDefaults fills zero fields from DefaultConfig and resolves the worker count
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.TileSize <= 0 {
		c.TileSize = defaults.TileSize
	}
	if c.NumWorkers <= 0 {
		c.NumWorkers = DefaultWorkerCount()
	}
	return c
}
