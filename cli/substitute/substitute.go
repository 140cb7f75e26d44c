// Package substitute replaces delimited variable tokens in text.
//
// A token is prefix + key + suffix. Matching is literal substring search.
// A token whose key has no value is left untouched, and a prefix without
// a following suffix turns the rest of the text into a literal.
package substitute

import (
	"strings"

	"github.com/ctemplate/ct/cli/keyvalue"
)

type scanState int

const (
	outsideToken scanState = iota
	insideToken
)

type segmentKind int

const (
	literalSegment segmentKind = iota
	tokenSegment
)

// segment is a span of the source text. For tokens, raw is the whole
// prefix...suffix span and key is the text between the delimiters.
type segment struct {
	kind segmentKind
	raw  string
	key  string
}

// scan splits text into literal and token segments.
func scan(text, prefix, suffix string) []segment {
	var segments []segment
	state := outsideToken
	cursor := 0
	tokenStart := 0

	for cursor < len(text) {
		switch state {
		case outsideToken:
			idx := strings.Index(text[cursor:], prefix)
			if idx < 0 {
				segments = append(segments, segment{kind: literalSegment, raw: text[cursor:]})
				cursor = len(text)
				continue
			}
			if idx > 0 {
				segments = append(segments,
					segment{kind: literalSegment, raw: text[cursor : cursor+idx]})
			}
			tokenStart = cursor + idx
			cursor = tokenStart + len(prefix)
			state = insideToken
		case insideToken:
			idx := strings.Index(text[cursor:], suffix)
			if idx < 0 {
				segments = append(segments, segment{kind: literalSegment, raw: text[tokenStart:]})
				cursor = len(text)
				state = outsideToken
				continue
			}
			end := cursor + idx + len(suffix)
			segments = append(segments, segment{
				kind: tokenSegment,
				raw:  text[tokenStart:end],
				key:  text[cursor : cursor+idx],
			})
			cursor = end
			state = outsideToken
		}
	}

	// A prefix at the very end of the text has no room for a suffix.
	if state == insideToken {
		segments = append(segments, segment{kind: literalSegment, raw: text[tokenStart:]})
	}

	return segments
}

// Enabled reports whether the delimiter pair can match anything.
func Enabled(prefix, suffix string) bool {
	return prefix != "" && suffix != ""
}

// Substitute replaces every prefix+key+suffix token in text with vars[key].
// Tokens with unknown keys are kept verbatim. Substitution is disabled when
// either delimiter is empty.
func Substitute(text string, vars keyvalue.VariableMap, prefix, suffix string) string {
	if !Enabled(prefix, suffix) || !strings.Contains(text, prefix) {
		return text
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, seg := range scan(text, prefix, suffix) {
		if seg.kind == tokenSegment {
			if value, found := vars[seg.key]; found {
				builder.WriteString(value)
				continue
			}
		}
		builder.WriteString(seg.raw)
	}
	return builder.String()
}

// Keys returns the keys of all complete tokens found in text, in order of appearance.
func Keys(text, prefix, suffix string) []string {
	if !Enabled(prefix, suffix) {
		return nil
	}
	var keys []string
	for _, seg := range scan(text, prefix, suffix) {
		if seg.kind == tokenSegment {
			keys = append(keys, seg.key)
		}
	}
	return keys
}
