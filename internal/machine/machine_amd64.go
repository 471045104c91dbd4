package machine

// Callee-saved registers on amd64: BX, BP, R12-R15.
const spillWords = 6

// spillRegisters stores the callee-saved registers into buf.
// Implemented in machine_amd64.s.
//
//go:noescape
func spillRegisters(buf *spillBuf)
