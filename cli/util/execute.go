package util

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"
)

// EditorCommand builds the command that opens path in editor. The editor string
// may carry its own arguments, e.g. "code --wait".
func EditorCommand(editor string, path string) (*exec.Cmd, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return nil, fmt.Errorf("editor is not set")
	}
	args := append(fields[1:], path)
	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// OpenInEditor opens path in editor and waits for it to exit.
func OpenInEditor(editor string, path string) error {
	cmd, err := EditorCommand(editor, path)
	if err != nil {
		return err
	}
	log.Debugf("Run: %s", cmd)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run editor %q: %w", editor, err)
	}
	return nil
}
