// Package keyvalue parses "key=value" definitions into template variables.
package keyvalue

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
)

// Delimiter separates a variable name from its value.
const Delimiter = "="

// VariableMap maps a variable name to its value. Names are compared as is:
// no case folding, no trimming.
type VariableMap map[string]string

// Split splits s into two parts at the first occurrence of delimiter.
// If delimiter is empty or is not found, s is returned unsplit.
func Split(s string, delimiter string) []string {
	if delimiter == "" {
		return []string{s}
	}
	before, after, found := strings.Cut(s, delimiter)
	if !found {
		return []string{s}
	}
	return []string{before, after}
}

// Parse builds a variable map from "key=value" tokens. Tokens without a delimiter
// are dropped. Later definitions of the same key overwrite earlier ones.
func Parse(tokens []string) VariableMap {
	vars := make(VariableMap, len(tokens))
	for _, token := range tokens {
		parts := Split(token, Delimiter)
		if len(parts) != 2 {
			log.Debugf("Ignoring malformed variable definition: %q", token)
			continue
		}
		vars[parts[0]] = parts[1]
	}
	return vars
}

// ParseReader reads "key=value" lines from reader. Empty lines and lines starting
// with '#' are skipped. Line length is not limited.
func ParseReader(reader io.Reader) (VariableMap, error) {
	var tokens []string
	bufReader := bufio.NewReader(reader)
	for {
		line, err := bufReader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			tokens = append(tokens, line)
		}
		if err != nil {
			break
		}
	}
	return Parse(tokens), nil
}

// ParseFile loads variables from the file at path.
func ParseFile(path string) (VariableMap, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vars file loading error: %w", err)
	}
	defer file.Close()

	vars, err := ParseReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load vars from %s: %w", path, err)
	}
	return vars, nil
}

// Merge copies all variables from src to vars, overwriting existing ones.
func (vars VariableMap) Merge(src VariableMap) {
	for name, value := range src {
		vars[name] = value
	}
}
