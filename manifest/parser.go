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
	"io"
	"strings"
)

// FormatVersion is the only format-version value this parser accepts.
const FormatVersion = "1"

// Parser reads a stream of one or more manifests (spec.md §4.G). Next
// is called repeatedly: it returns each pair of the current manifest,
// then the End sentinel pair, then (for a multi-manifest stream) the
// next manifest's format-version pair, and finally io.EOF once the
// underlying stream is exhausted.
//
// Parser reads its entire input up front rather than incrementally:
// manifests are small package-metadata documents in practice, and
// buffering the whole document makes the line-oriented escape grammar
// (soft/hard wraps, multi-line terminators) far simpler to get right
// than a byte-at-a-time state machine would be.
type Parser struct {
	source     string
	lines      []string
	idx        int
	sawVersion bool
	version    string
	ended      bool
	eof        bool
}

// NewParser reads all of r and returns a Parser over it. source names
// the stream for ParseError messages.
func NewParser(r io.Reader, source string) (*Parser, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &Parser{source: source, lines: splitLines(string(data))}, nil
}

// splitLines splits s into physical lines, treating "\n", "\r\n", and
// a bare "\r" all as line terminators. A bare "\r" that is not part of
// a "\r\n" pair is otherwise indistinguishable from a "\n" at this
// layer (see DESIGN.md's resolution of the reference's bare-"\r" open
// question): normalizing it here, before the pair grammar ever sees a
// raw byte, is how this implementation reproduces "\r\n" portability
// without the multi-line value state machine needing to special-case
// "\r" itself.
func splitLines(s string) []string {
	var lines []string

	start := 0

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])

			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}

			start = i + 1
		}
	}

	if start < len(s) {
		lines = append(lines, s[start:])
	}

	return lines
}

func isCommentLine(line string) bool {
	t := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(t, "#")
}

// Next returns the next pair, the End sentinel, or io.EOF.
func (p *Parser) Next() (Pair, error) {
	if p.eof {
		return Pair{}, io.EOF
	}

	for p.idx < len(p.lines) && isCommentLine(p.lines[p.idx]) {
		p.idx++
	}

	if p.idx >= len(p.lines) {
		return p.finish()
	}

	line := p.lines[p.idx]
	lineNo := p.idx + 1

	if strings.TrimSpace(line) == "" {
		p.idx++

		if !p.ended {
			p.ended = true
			return Pair{}, nil
		}

		return p.Next()
	}

	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return Pair{}, &ParseError{Source: p.source, Line: lineNo, Column: len(line) + 1, Description: "':' expected after name"}
	}

	name := strings.TrimSpace(line[:colon])
	rest := strings.TrimLeft(line[colon+1:], " \t")

	if name == "" {
		return p.parseFormatVersion(rest, lineNo)
	}

	value, consumed, err := p.parseValue(rest, lineNo)
	if err != nil {
		return Pair{}, err
	}

	p.idx += consumed

	return Pair{Name: name, Value: value}, nil
}

func (p *Parser) finish() (Pair, error) {
	p.eof = true

	if !p.ended {
		p.ended = true
		return Pair{}, nil
	}

	return Pair{}, io.EOF
}

func (p *Parser) parseFormatVersion(rest string, lineNo int) (Pair, error) {
	value := strings.TrimRight(rest, " \t")

	if value == "" {
		if !p.sawVersion {
			return Pair{}, &ParseError{Source: p.source, Line: lineNo, Column: 1, Description: "format version expected"}
		}

		value = p.version
	} else if value != FormatVersion {
		return Pair{}, &ParseError{Source: p.source, Line: lineNo, Column: 1, Description: "unsupported format version '" + value + "'"}
	}

	p.sawVersion = true
	p.version = value
	p.ended = false
	p.idx++

	return Pair{Name: "", Value: value}, nil
}

// parseValue parses the value starting at rest (the remainder of the
// "name:" line) and returns the decoded value plus the number of
// physical lines (including the first) it consumed.
func (p *Parser) parseValue(rest string, startLine int) (string, int, error) {
	trimmed := strings.TrimRight(rest, " \t")

	if trimmed == "\\" {
		return p.parseMultilineValue(startLine, 1)
	}

	if trimmed == "" && p.idx+1 < len(p.lines) && strings.TrimSpace(p.lines[p.idx+1]) == "\\" {
		return p.parseMultilineValue(startLine, 2)
	}

	return p.parseSingleLineValue(rest, startLine)
}

func (p *Parser) parseSingleLineValue(rest string, startLine int) (string, int, error) {
	var b strings.Builder

	consumed := 1
	cur := rest

	for {
		if strings.HasSuffix(cur, `\\`) {
			b.WriteString(strings.TrimSuffix(cur, `\\`))
			b.WriteByte('\\')

			break
		}

		if strings.HasSuffix(cur, `\`) {
			b.WriteString(strings.TrimSuffix(cur, `\`))

			if p.idx+consumed >= len(p.lines) {
				return "", 0, &ParseError{Source: p.source, Line: startLine, Column: len(cur), Description: "unexpected end of manifest in value continuation"}
			}

			cur = p.lines[p.idx+consumed]
			consumed++

			continue
		}

		b.WriteString(cur)

		break
	}

	value := strings.TrimRight(splitSingleLineComment(b.String()), " \t")

	return value, consumed, nil
}

// splitSingleLineComment strips a trailing ";"-introduced comment from
// a single-line value, honoring "\;" as an escaped literal semicolon.
func splitSingleLineComment(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && s[i+1] == ';' {
			b.WriteByte(';')
			i++

			continue
		}

		if s[i] == ';' {
			break
		}

		b.WriteByte(s[i])
	}

	return b.String()
}

// parseMultilineValue reads raw lines, starting consumed lines after
// p.idx, until a line containing exactly "\" terminates the value. A
// line ending in a single unescaped "\" soft-wraps directly into the
// next line (no "\n" is inserted into the value); "\\" at a line end
// escapes to one literal trailing backslash; a line containing exactly
// ";" splits the value from a trailing multi-line comment.
func (p *Parser) parseMultilineValue(startLine, consumed int) (string, int, error) {
	var b strings.Builder

	pendingNewline := false
	idx := p.idx + consumed

	for {
		if idx >= len(p.lines) {
			return "", 0, &ParseError{Source: p.source, Line: startLine, Column: 1, Description: "unterminated multi-line value"}
		}

		line := p.lines[idx]
		idx++
		consumed++

		if line == `\` {
			break
		}

		if strings.TrimSpace(line) == ";" {
			for idx < len(p.lines) && p.lines[idx] != `\` {
				idx++
				consumed++
			}

			if idx < len(p.lines) {
				idx++
				consumed++
			}

			break
		}

		softWrap := false

		switch {
		case strings.HasSuffix(line, `\\`):
			line = strings.TrimSuffix(line, `\\`) + `\`
		case strings.HasSuffix(line, `\`):
			line = strings.TrimSuffix(line, `\`)
			softWrap = true
		}

		if pendingNewline {
			b.WriteByte('\n')
		}

		b.WriteString(line)
		pendingNewline = !softWrap
	}

	return b.String(), consumed, nil
}

// ParseAll reads one whole manifest (from its format-version pair
// through its End sentinel) and returns its pairs, the sentinel
// excluded. It returns io.EOF if the stream has nothing left at all.
func ParseAll(p *Parser) ([]Pair, error) {
	var pairs []Pair

	for {
		pair, err := p.Next()
		if err != nil {
			if err == io.EOF && len(pairs) == 0 {
				return nil, io.EOF
			}

			return pairs, err
		}

		if pair.End() {
			return pairs, nil
		}

		pairs = append(pairs, pair)
	}
}
