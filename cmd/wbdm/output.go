package main

import (
	"fmt"
	"io"
	"os"
	"slices"
)

// openOutput returns stdout, or the created file when path is set. The
// returned close function must always be called.
func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, f.Close, nil
}

func checkFormat(format string, valid []string) error {
	if !slices.Contains(valid, format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", format, valid)
	}
	return nil
}

// documentFormat returns flag, or the configured default when it is empty.
func documentFormat(flag string, d *Deps) string {
	if flag != "" {
		return flag
	}
	return d.Config.Output.Format
}
