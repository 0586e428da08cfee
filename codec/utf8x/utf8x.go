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

// Package utf8x implements streaming UTF-8 validation with byte-level
// recovery, codepoint classification, and sanitization, on top of
// unicode/utf8 (spec.md §4.B).
package utf8x

import "unicode/utf8"

// Class classifies a decoded codepoint.
type Class int

const (
	Graphic Class = iota
	Control
	Format
	PrivateUse
	NonCharacter
	Reserved
)

// Classify returns the Class of r.
func Classify(r rune) Class {
	switch {
	case r < 0 || r > utf8.MaxRune:
		return Reserved
	case r == 0xFEFF, (r >= 0x200B && r <= 0x200F), (r >= 0x202A && r <= 0x202E), (r >= 0x2060 && r <= 0x2064):
		return Format
	case r <= 0x1F, (r >= 0x7F && r <= 0x9F):
		return Control
	case (r >= 0xE000 && r <= 0xF8FF), (r >= 0xF0000 && r <= 0xFFFFD), (r >= 0x100000 && r <= 0x10FFFD):
		return PrivateUse
	case (r&0xFFFE) == 0xFFFE, (r >= 0xFDD0 && r <= 0xFDEF):
		return NonCharacter
	default:
		return Graphic
	}
}

// TypeSet is a bitmask of Classes, used by Valid's allowed-type filter.
type TypeSet uint8

const (
	SetGraphic TypeSet = 1 << iota
	SetControl
	SetFormat
	SetPrivateUse
	SetNonCharacter
	SetReserved

	SetAll = SetGraphic | SetControl | SetFormat | SetPrivateUse | SetNonCharacter | SetReserved
)

func (c Class) bit() TypeSet {
	return 1 << uint(c)
}

// Validator consumes a byte string one byte at a time, tracking the
// shortest-form UTF-8 decoding state machine. It enforces the
// shortest-form rule, rejects UTF-16 surrogates (U+D800-U+DFFF), and
// rejects codepoints beyond utf8.MaxRune.
type Validator struct {
	need  int    // remaining continuation bytes expected
	got   int    // continuation bytes consumed so far for the in-flight rune
	r     rune   // accumulated rune value
	min   rune   // minimum legal value for the current sequence (shortest-form check)
	first byte   // lead byte of the in-flight sequence, for recovery diagnostics
	buf   []byte // raw bytes of the in-flight sequence, for recovery
}

// NewValidator returns a Validator ready to consume a fresh byte stream.
func NewValidator() *Validator {
	return &Validator{}
}

// Reset returns the Validator to its initial state, as if newly
// constructed.
func (v *Validator) Reset() {
	*v = Validator{}
}

// Step feeds the next byte b. It returns (valid, complete): valid is
// false if b (or the sequence it completes) is malformed; complete is
// true if a codepoint was just finished (valid or not). On an invalid
// byte, the Validator resets so that the SAME byte can be retried by
// the caller as the start of a new sequence (spec.md §4.B: "recovery
// restarts from the same byte, not the next").
func (v *Validator) Step(b byte) (valid bool, complete bool) {
	if v.need == 0 {
		return v.startSequence(b)
	}

	if b&0xC0 != 0x80 {
		// not a continuation byte: abort the in-flight sequence and let
		// the caller retry b as a fresh lead byte.
		v.Reset()
		return false, true
	}

	v.r = v.r<<6 | rune(b&0x3F)
	v.got++

	if v.got < v.need {
		return true, false
	}

	r := v.r
	need := v.need
	v.Reset()

	if r < v.minFor(need) {
		return false, true
	}

	if r >= 0xD800 && r <= 0xDFFF {
		return false, true
	}

	if r > utf8.MaxRune {
		return false, true
	}

	return true, true
}

func (v *Validator) minFor(need int) rune {
	switch need {
	case 1:
		return 0x80
	case 2:
		return 0x800
	case 3:
		return 0x10000
	default:
		return 0
	}
}

func (v *Validator) startSequence(b byte) (valid bool, complete bool) {
	switch {
	case b < 0x80:
		return true, true
	case b&0xE0 == 0xC0:
		v.need, v.got, v.r = 1, 0, rune(b&0x1F)
		if b&0xFE == 0xC0 {
			// C0/C1: always an overlong 2-byte lead.
			v.Reset()
			return false, true
		}

		return true, false
	case b&0xF0 == 0xE0:
		v.need, v.got, v.r = 2, 0, rune(b&0x0F)
		return true, false
	case b&0xF8 == 0xF0:
		v.need, v.got, v.r = 3, 0, rune(b&0x07)
		if b > 0xF4 {
			v.Reset()
			return false, true
		}

		return true, false
	default:
		return false, true
	}
}

// Valid reports whether s is a well-formed UTF-8 string whose every
// codepoint's Class is set in types and, if wl is non-empty, whose every
// codepoint is a member of wl.
func Valid(s string, types TypeSet, wl []rune) bool {
	for i, r := range s {
		if r == utf8.RuneError {
			_, size := utf8.DecodeRuneInString(s[i:])
			if size <= 1 {
				return false
			}
		}

		c := Classify(r)
		if types&c.bit() == 0 {
			return false
		}

		if len(wl) > 0 && !runeIn(r, wl) {
			return false
		}
	}

	return true
}

func runeIn(r rune, set []rune) bool {
	for _, x := range set {
		if x == r {
			return true
		}
	}

	return false
}

// ToUTF8 rewrites s, replacing every invalid byte or disallowed codepoint
// with repl, and replacing an incomplete trailing sequence with repl as
// well. It returns the sanitized string unchanged from s when s already
// satisfies Valid(s, types, wl).
func ToUTF8(s string, repl byte, types TypeSet, wl []rune) string {
	out := make([]byte, 0, len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			out = append(out, repl)
			i++
			continue
		}

		c := Classify(r)
		allowed := types&c.bit() != 0 && (len(wl) == 0 || runeIn(r, wl))
		if !allowed {
			out = append(out, repl)
		} else {
			out = append(out, s[i:i+size]...)
		}

		i += size
	}

	return string(out)
}
