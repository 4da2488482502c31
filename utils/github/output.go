package github

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Output writes a named output for the invoking workflow. Multiline values
// use the heredoc form required by the GITHUB_OUTPUT file format with a
// per-write delimiter: terraform plans routinely embed bare EOF heredoc
// markers, and a fixed delimiter would let plan content terminate the block
// early and inject further output assignments.
func Output(name, value string) error {
	if name == "" || strings.ContainsAny(name, "=\n") {
		return fmt.Errorf("invalid output name %q", name)
	}

	path := os.Getenv("GITHUB_OUTPUT")
	if path == "" {
		// local runs have no output file
		fmt.Printf("::set-output name=%s::%s\n", name, value)
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	var entry string
	if strings.Contains(value, "\n") {
		delimiter := newDelimiter(value)
		entry = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		entry = fmt.Sprintf("%s=%s\n", name, value)
	}
	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	return nil
}

// newDelimiter returns a heredoc marker that does not occur in value, so the
// value can never close its own block.
func newDelimiter(value string) string {
	for {
		delimiter := "ghadelimiter_" + uuid.NewString()
		if !strings.Contains(value, delimiter) {
			return delimiter
		}
	}
}

// Error emits a workflow error annotation.
func Error(message string) {
	fmt.Printf("::error::%s\n", message)
}

// Warning emits a workflow warning annotation.
func Warning(message string) {
	fmt.Printf("::warning::%s\n", message)
}

// Notice emits a workflow notice annotation.
func Notice(message string) {
	fmt.Printf("::notice::%s\n", message)
}
