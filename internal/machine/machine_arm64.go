package machine

// Callee-saved registers on arm64: R19-R28.
const spillWords = 10

// spillRegisters stores the callee-saved registers into buf.
// Implemented in machine_arm64.s.
//
//go:noescape
func spillRegisters(buf *spillBuf)
