// Package stacktrace condenses raw goroutine stacks for log output.
package stacktrace

import "strings"

// InternalPaths extracts the internal/ source locations from a raw
// debug.Stack() dump, so panic logs carry short paths like
// internal/auth/usecase/usecase.go:120 instead of the full trace.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines))

	// Frames come in pairs: function name on one line, file path on the
	// next. Only the file-path lines matter here.
	for i := 0; i < len(lines)-1; i++ {
		line := strings.TrimSpace(lines[i+1])
		if !strings.Contains(line, "/internal/") || !strings.Contains(line, ".go") {
			continue
		}

		idx := strings.Index(line, ".go:")
		if idx == -1 {
			continue
		}

		end := strings.Index(line[idx:], " ")
		if end == -1 {
			end = len(line)
		} else {
			end += idx
		}

		shortPath := line[:end]
		if internalIdx := strings.Index(shortPath, "/internal/"); internalIdx != -1 {
			paths = append(paths, shortPath[internalIdx+1:])
		}
	}
	return paths
}
