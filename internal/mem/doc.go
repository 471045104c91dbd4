// Package mem reserves the fixed heap arena directly from the operating
// system: anonymous mappings on unix and windows, with a Go-heap fallback
// elsewhere. The returned region never moves and is released through the
// accompanying cleanup function.
package mem
