//go:build !unix && !windows

package mem

import "fmt"

// Map allocates the region from the Go heap when anonymous mapping is not
// available. The region never moves once returned.
func Map(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mem: invalid mapping size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
