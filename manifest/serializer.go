//
//  Copyright 2024 The butl authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package manifest

import (
	"bufio"
	"io"
	"strings"

	"github.com/build2/butl/codec/utf8x"
)

// lineBudget is the maximum number of codepoints a serialized line may
// carry before the serializer wraps it, per spec.md §4.G.
const lineBudget = 77

// SerializeOptions configures a Serializer.
type SerializeOptions struct {
	// LongLines disables the 77-codepoint wrapping and writes every
	// value on a single physical line.
	LongLines bool
}

// Serializer writes a manifest's pairs in the wrapping wire format
// spec.md §4.G describes.
type Serializer struct {
	w    *bufio.Writer
	opts SerializeOptions
	err  error
}

// NewSerializer returns a Serializer writing to w.
func NewSerializer(w io.Writer, opts SerializeOptions) *Serializer {
	return &Serializer{w: bufio.NewWriter(w), opts: opts}
}

// WritePair writes one name/value pair. An empty name writes the
// format-version pair; with an empty value as well it writes a bare ":"
// line, which the parser reads as repeating the previous format
// version. WriteEnd writes the end-of-manifest marker.
func (s *Serializer) WritePair(name, value string) error {
	if s.err != nil {
		return s.err
	}

	if name != "" {
		if err := validateName(name); err != nil {
			s.err = err
			return err
		}
	}

	s.writeString(name)
	s.writeString(":")

	if value == "" {
		s.writeString("\n")
		return s.err
	}

	s.writeString(" ")

	if s.opts.LongLines || !needsWrap(name, value) {
		s.writeString(escapeSingleLineValue(value))
		s.writeString("\n")

		return s.err
	}

	s.writeWrapped(name, value)

	return s.err
}

// WriteEnd writes the blank-line end-of-manifest marker.
func (s *Serializer) WriteEnd() error {
	s.writeString("\n")
	return s.flush()
}

// Flush flushes any buffered output.
func (s *Serializer) Flush() error { return s.flush() }

func (s *Serializer) flush() error {
	if s.err != nil {
		return s.err
	}

	if err := s.w.Flush(); err != nil {
		s.err = err
	}

	return s.err
}

func (s *Serializer) writeString(str string) {
	if s.err != nil {
		return
	}

	if _, err := s.w.WriteString(str); err != nil {
		s.err = err
	}
}

// validateName requires a non-empty sequence of graphic, non-colon,
// non-whitespace codepoints, per spec.md §4.G's name grammar.
func validateName(name string) error {
	if name == "" {
		return &ParseError{Description: "empty name"}
	}

	for _, r := range name {
		if r == ':' || r == ' ' || r == '\t' {
			return &ParseError{Description: "invalid character in name '" + name + "'"}
		}

		if utf8x.Classify(r) != utf8x.Graphic {
			return &ParseError{Description: "invalid character in name '" + name + "'"}
		}
	}

	return nil
}

// escapeSingleLineValue doubles a genuine trailing backslash and
// escapes a literal ';' so the parser's comment-splitting grammar does
// not misread either.
func escapeSingleLineValue(value string) string {
	var b strings.Builder

	for i := 0; i < len(value); i++ {
		if value[i] == ';' {
			b.WriteByte('\\')
		}

		b.WriteByte(value[i])
	}

	if strings.HasSuffix(value, `\`) {
		b.WriteByte('\\')
	}

	return b.String()
}

// needsWrap reports whether value must be serialized as a multi-line
// value: it already contains a newline, or its single-line rendering
// (including the "name: " prefix) would exceed lineBudget codepoints.
func needsWrap(name, value string) bool {
	if strings.ContainsAny(value, "\n") {
		return true
	}

	width := len([]rune(name)) + len(": ") + len([]rune(escapeSingleLineValue(value)))

	return width > lineBudget
}

// writeWrapped writes value as a multi-line value: a lone backslash
// terminates the "name:" line, then one or more word-wrapped content
// lines, then a lone backslash terminator.
//
// Lines are broken only at single spaces, and each soft-wrapped line
// keeps the space it was broken at, so runs of whitespace survive and
// the parser's rejoin restores the value exactly.
func (s *Serializer) writeWrapped(name, value string) {
	s.writeString("\\\n")

	for _, part := range strings.Split(value, "\n") {
		s.writeContentLines(part)
	}

	s.writeString("\\\n")
}

// writeContentLines word-wraps one newline-delimited segment of a
// multi-line value across as many output lines as lineBudget requires,
// soft-wrapping every line but the segment's last with a trailing
// single backslash so the parser rejoins them without an inserted
// "\n".
func (s *Serializer) writeContentLines(segment string) {
	words := strings.Split(segment, " ")

	if len(words) == 0 {
		s.writeString("\n")
		return
	}

	var line []string
	lineLen := 0

	flush := func(last bool) {
		content := strings.Join(line, " ")
		if !last {
			// keep the separating space before the soft wrap
			content += " "
		}
		s.writeContentLine(content, last)
		line = line[:0]
		lineLen = 0
	}

	for i, word := range words {
		w := takeRunes(word)

		for len(w) > lineBudget-1 {
			if len(line) > 0 {
				flush(false)
			}

			s.writeContentLine(string(w[:lineBudget-1]), false)
			w = w[lineBudget-1:]
		}

		wl := len(w)
		extra := wl
		if len(line) > 0 {
			extra++
		}

		if lineLen+extra > lineBudget-1 && len(line) > 0 {
			flush(false)
		}

		line = append(line, string(w))
		lineLen += extra

		if i == len(words)-1 {
			flush(true)
		}
	}
}

// writeContentLine writes one physical content line of a multi-line
// value, soft-wrapping (trailing single backslash) unless last, and
// doubling a line that would otherwise end in a genuine backslash.
func (s *Serializer) writeContentLine(content string, last bool) {
	s.writeString(content)

	if strings.HasSuffix(content, `\`) {
		s.writeString(`\`)
	}

	if !last {
		s.writeString(`\`)
	}

	s.writeString("\n")
}

func takeRunes(s string) []rune { return []rune(s) }
