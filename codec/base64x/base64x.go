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

// Package base64x implements base64 and base64url encoding matching
// spec.md §4.B: standard base64 is wrapped at 76 output characters per
// line, base64url emits no padding and no newlines, and decoding of
// either form is newline-tolerant.
package base64x

import (
	"encoding/base64"
	"strings"
)

const lineWidth = 76

// InvalidArgumentError is returned when decoding encounters a byte
// outside the applicable alphabet.
type InvalidArgumentError struct {
	Reason string
}

func (e *InvalidArgumentError) Error() string { return "invalid argument: " + e.Reason }

func (e *InvalidArgumentError) InvalidArgument() bool { return true }

// Encode encodes b as standard base64, inserting a newline every 76
// output characters (including after the final line).
func Encode(b []byte) string {
	s := base64.StdEncoding.EncodeToString(b)
	return wrap(s)
}

func wrap(s string) string {
	var sb strings.Builder

	for len(s) > lineWidth {
		sb.WriteString(s[:lineWidth])
		sb.WriteByte('\n')
		s = s[lineWidth:]
	}

	sb.WriteString(s)
	sb.WriteByte('\n')

	return sb.String()
}

// Decode decodes s, which may be the output of Encode (newline-wrapped)
// or a bare, unwrapped base64 string; newline characters ('\n' and
// '\r') are tolerated and stripped before decoding. Other whitespace is
// rejected as an invalid byte.
func Decode(s string) ([]byte, error) {
	stripped := stripNewlines(s)

	b, err := base64.StdEncoding.DecodeString(stripped)
	if err != nil {
		return nil, &InvalidArgumentError{Reason: err.Error()}
	}

	return b, nil
}

func stripNewlines(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return -1
		}

		return r
	}, s)
}

// EncodeURL encodes b as base64url with no padding and no line wrapping.
func EncodeURL(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeURL decodes s, a base64url string (with or without padding);
// embedded newlines are tolerated and stripped.
func DecodeURL(s string) ([]byte, error) {
	stripped := stripNewlines(s)
	stripped = strings.TrimRight(stripped, "=")

	b, err := base64.RawURLEncoding.DecodeString(stripped)
	if err != nil {
		return nil, &InvalidArgumentError{Reason: err.Error()}
	}

	return b, nil
}
