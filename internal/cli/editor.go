package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrEditAborted is returned when the user leaves the document unchanged
// after an error, or empties it.
var ErrEditAborted = errors.New("edit aborted")

// Editor runs the user's $VISUAL or $EDITOR on a temporary file.
type Editor struct {
	// Command overrides the environment when set, e.g. "code --wait".
	Command string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewEditor returns an Editor attached to the process's terminal.
func NewEditor() *Editor {
	return &Editor{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Edit writes content to a temp file named with suffix (".yaml" for syntax
// highlighting), runs the editor on it and returns what was saved.
func (e *Editor) Edit(ctx context.Context, content []byte, suffix string) ([]byte, error) {
	command := e.Command
	if command == "" {
		command = getEditor()
	}
	if command == "" {
		return nil, fmt.Errorf("EDITOR not set. Set it or pass field flags instead of -i")
	}

	tmpFile, err := os.CreateTemp("", "trips-*"+suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpFile.Write(content); err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := e.run(ctx, command, tmpPath); err != nil {
		return nil, err
	}

	result, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read edited file: %w", err)
	}
	return result, nil
}

// EditUntilValid reopens the editor until apply accepts the document.
// Each retry shows the previous error as a comment at the top of the file.
// Saving the failed document unchanged, or saving an empty one, aborts.
func (e *Editor) EditUntilValid(ctx context.Context, content []byte, suffix string, apply func([]byte) error) error {
	doc := content
	for {
		edited, err := e.Edit(ctx, doc, suffix)
		if err != nil {
			return err
		}
		body := stripErrorHeader(edited)
		if len(bytes.TrimSpace(body)) == 0 {
			return ErrEditAborted
		}

		applyErr := apply(body)
		if applyErr == nil {
			return nil
		}
		if bytes.Equal(edited, doc) {
			return fmt.Errorf("%w: %v", ErrEditAborted, applyErr)
		}
		doc = withErrorHeader(body, applyErr)
	}
}

const errorHeaderPrefix = "# error: "

func withErrorHeader(body []byte, err error) []byte {
	var buf bytes.Buffer
	for _, line := range strings.Split(err.Error(), "\n") {
		buf.WriteString(errorHeaderPrefix + line + "\n")
	}
	buf.WriteString("# Fix the document and save, or save it unchanged to abort.\n")
	buf.Write(body)
	return buf.Bytes()
}

func stripErrorHeader(doc []byte) []byte {
	for bytes.HasPrefix(doc, []byte("# ")) {
		nl := bytes.IndexByte(doc, '\n')
		line := doc
		if nl >= 0 {
			line = doc[:nl]
		}
		if !bytes.HasPrefix(line, []byte(errorHeaderPrefix)) && !bytes.HasPrefix(line, []byte("# Fix the document")) {
			break
		}
		if nl < 0 {
			return nil
		}
		doc = doc[nl+1:]
	}
	return doc
}

// getEditor returns the editor command from environment.
// Checks VISUAL first (for graphical editors), then EDITOR.
func getEditor() string {
	if editor := os.Getenv("VISUAL"); editor != "" {
		return editor
	}
	return os.Getenv("EDITOR")
}

// run executes the editor command, which may carry arguments, on path.
func (e *Editor) run(ctx context.Context, editor, path string) error {
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	args := append(parts[1:], path)
	cmd := exec.CommandContext(ctx, parts[0], args...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("editor exited with status %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to run editor: %w", err)
	}
	return nil
}
