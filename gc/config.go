package gc

// Config defines the heap geometry and collection policy for a Collector.
type Config struct {
	// Name for this configuration (for benchmarking and stats output).
	Name string

	// HeapSize is the fixed arena size in bytes. The arena never grows.
	HeapSize uintptr

	// Threshold is the heap-occupancy fraction above which an allocation
	// triggers a proactive collection first. Must be in (0, 1].
	Threshold float64

	// Alignment is the allocation granularity. Requested sizes are rounded
	// up to it and returned payloads are aligned to it. Must be a power of
	// two and at least the machine word size.
	Alignment uintptr

	// StackBottom is the cold boundary for conservative stack scans,
	// captured with machine.StackBottom at the top of the goroutine that
	// will own the collector. Frames deeper than this address are scanned
	// during collection. When zero, New captures a boundary in its own
	// frame, which only covers calls made below the function that called
	// New.
	StackBottom uintptr
}

// Predefined configurations.
var (
	// DefaultConfig matches the collector's historical defaults: 1 MiB
	// arena, collect at 80% occupancy, 8-byte alignment.
	DefaultConfig = Config{
		Name:      "Default",
		HeapSize:  1 << 20,
		Threshold: 0.8,
		Alignment: 8,
	}

	// ConfigSmall is sized for tests and short-lived tools.
	ConfigSmall = Config{
		Name:      "Small",
		HeapSize:  64 << 10,
		Threshold: 0.8,
		Alignment: 8,
	}

	// ConfigLarge trades memory for fewer collection cycles.
	ConfigLarge = Config{
		Name:      "Large",
		HeapSize:  16 << 20,
		Threshold: 0.9,
		Alignment: 8,
	}
)

// minHeapSize is the smallest arena that can hold a free-block header plus
// at least one object.
const minHeapSize = 4096

func (cfg *Config) validate() error {
	if cfg.HeapSize < minHeapSize {
		return ErrBadConfig
	}
	if cfg.Threshold <= 0 || cfg.Threshold > 1 {
		return ErrBadConfig
	}
	if cfg.Alignment < wordSize || cfg.Alignment&(cfg.Alignment-1) != 0 {
		return ErrBadConfig
	}
	return nil
}
