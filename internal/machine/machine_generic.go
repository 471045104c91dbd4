//go:build !amd64 && !arm64

package machine

// No spill primitive on this architecture. Live values still reach the
// scanner through their stack spill slots, matching the stack-only fallback
// of conservative collectors on unsupported targets.
const spillWords = 0

func spillRegisters(*spillBuf) {}
