package gc

import (
	"fmt"
	"os"
)

// Debug flag - set to true to enable verbose logging (compile-time toggle).
const debugGC = false

// Runtime debug flag for collection logging - controlled by GCHEAP_LOG env var.
var logGC = os.Getenv("GCHEAP_LOG") != ""

func debugLogf(format string, args ...any) {
	if !debugGC && !logGC {
		return
	}
	fmt.Fprintf(os.Stderr, "[gc] "+format+"\n", args...)
}
