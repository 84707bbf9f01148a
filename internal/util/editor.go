package util

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// OpenEditor runs editor on filePath attached to the current terminal.
// The editor string may carry arguments, e.g. "code --wait".
func OpenEditor(editor, filePath string) error {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return fmt.Errorf("no editor configured")
	}
	c := exec.Command(fields[0], append(fields[1:], filePath)...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return fmt.Errorf("failed to open editor (%s): %w", filePath, err)
	}
	return nil
}

// ComposeInEditor opens editor on a scratch file seeded with initial and
// returns what was saved.
func ComposeInEditor(editor, initial string) (string, error) {
	f, err := os.CreateTemp("", "note-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(initial); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close scratch file: %w", err)
	}

	if err := OpenEditor(editor, path); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch file: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

// ResolveEditor prefers $VISUAL, then $EDITOR, then the configured editor.
func ResolveEditor(configured string) string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return configured
}
