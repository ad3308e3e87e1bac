package repository

import (
	"os"
	"strconv"
)

// timestampLayout is RFC3339 with a fixed nine-digit fraction. The
// repositories compare timestamps as strings, and a variable-width fraction
// breaks lexicographic order within a second ('Z' sorts after '.').
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func mergeNames(a, b map[string]string) map[string]string {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(map[string]string, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
