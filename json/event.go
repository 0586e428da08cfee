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

// Package json implements spec.md §4.H: a streaming, location-tracking
// JSON event parser with an optional multi-value stream mode, layered
// over a small hand-rolled tokenizer rather than encoding/json's
// Decoder (which exposes neither source coordinates nor a one-event
// lookahead buffer).
package json

import (
	"fmt"
	"strconv"
)

// EventKind identifies the shape of an Event.
type EventKind int

const (
	BeginObject EventKind = iota
	EndObject
	BeginArray
	EndArray
	Name
	String
	Number
	Bool
	Null
	EndOfStream
)

func (k EventKind) String() string {
	switch k {
	case BeginObject:
		return "begin-object"
	case EndObject:
		return "end-object"
	case BeginArray:
		return "begin-array"
	case EndArray:
		return "end-array"
	case Name:
		return "name"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Null:
		return "null"
	case EndOfStream:
		return "end-of-stream"
	default:
		return "unknown"
	}
}

// Event is one token of a JSON document: a container boundary, an
// object member's name, or a scalar value. Value carries the decoded
// string for Name and String events, and the literal source text for
// Number and Bool events ("true" or "false"), and "null" for Null
// events; it is empty for every other kind.
type Event struct {
	Kind   EventKind
	Value  string
	Line   int
	Column int
	Byte   int
}

// Bool converts a Bool event's Value to a bool.
func (e Event) Bool() (bool, error) {
	switch e.Value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean literal %q", e.Value)
	}
}

// Float64 converts a Number event's Value to a float64.
func (e Event) Float64() (float64, error) {
	f, err := strconv.ParseFloat(e.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number literal %q", e.Value)
	}

	return f, nil
}

// Int64 converts a Number event's Value to an int64, failing if the
// literal carries a fractional or exponent part.
func (e Event) Int64() (int64, error) {
	n, err := strconv.ParseInt(e.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", e.Value)
	}

	return n, nil
}

// ParseError carries the source name, 1-based line and column, the
// 0-based byte offset, and a description, per spec.md §7's JSON
// parsing-error class.
type ParseError struct {
	Source      string
	Line        int
	Column      int
	Byte        int
	Description string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.Source, e.Line, e.Column, e.Description)
}
