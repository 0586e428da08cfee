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

package lz4frame

import "encoding/binary"

const (
	minMatch = 4

	// hashLog/hashShift size the match-finder hash table the way
	// LZ4_compress_default does at its default LZ4_MEMORY_USAGE
	// (LZ4_HASHLOG = 12, i.e. a 4096-entry table hashed from the
	// high bits of a 4-byte little-endian read).
	hashLog   = 12
	hashShift = 32 - hashLog

	// wildcopyLength, lastLiterals and mfLimit mirror the reference
	// block format's parsing restriction: the final lastLiterals
	// bytes of a block are never part of a match, and the match
	// finder stops searching mfLimit bytes before the end so every
	// encoded match has room for its copy.
	wildcopyLength = 8
	lastLiterals   = 5
	mfLimit        = wildcopyLength + minMatch

	// skipTrigger is LZ4_skipTrigger: the match finder's search step
	// grows the longer a run goes without finding a match, trading
	// thoroughness for speed on incompressible data exactly as
	// LZ4_compress_default's acceleration=1 fast path does.
	skipTrigger = 6

	// maxDistance is LZ4_DISTANCE_MAX: a match's offset must fit in
	// the block format's 16-bit little-endian offset field.
	maxDistance = 0xFFFF
)

// compressBlock compresses src with the standard LZ4 block algorithm:
// a greedy hash-table match finder with the reference's skip-trigger
// search acceleration and backward match extension, writing the
// result to dst and returning the extended slice. It never expands the
// input beyond dst's remaining capacity guarantees established by the
// caller (bound via blockBound).
func compressBlock(dst, src []byte) []byte {
	n := len(src)
	if n == 0 {
		return dst
	}

	if n < mfLimit+1 {
		dst, _ = appendLiterals(dst, src, false)
		return dst
	}

	var table [1 << hashLog]int32
	for i := range table {
		table[i] = -1
	}

	mflimit := n - mfLimit
	matchLimit := n - lastLiterals
	anchor := 0
	ip := 1

	for {
		start, match, ok := findMatch(src, &table, ip, mflimit)
		if !ok {
			break
		}

		ip = start

		for ip > anchor && match > 0 && src[ip-1] == src[match-1] {
			ip--
			match--
		}

		var tokenPos int
		dst, tokenPos = appendLiterals(dst, src[anchor:ip], true)

		matchLen := extendMatch(src, match+minMatch, ip+minMatch, matchLimit)
		dst = appendMatch(dst, tokenPos, ip-match, matchLen)

		ip += minMatch + matchLen
		anchor = ip

		if ip > mflimit {
			break
		}

		updateTable(src, &table, ip)
	}

	dst, _ = appendLiterals(dst, src[anchor:], false)

	return dst
}

// findMatch searches forward from position from for the next position
// whose 4-byte prefix repeats within maxDistance bytes back, using
// LZ4_compress_default's skip-trigger acceleration: a search step that
// grows the longer it goes unrewarded.
func findMatch(src []byte, table *[1 << hashLog]int32, from, mflimit int) (pos, match int, ok bool) {
	step := 1
	searchNb := 1 << skipTrigger
	p := from

	for {
		if p > mflimit {
			return 0, 0, false
		}

		h := hash4(src, p)
		ref := int(table[h])
		table[h] = int32(p)

		if ref >= 0 && p-ref <= maxDistance && match4(src, ref, p) {
			return p, ref, true
		}

		p += step
		step = searchNb >> skipTrigger
		searchNb++
	}
}

// updateTable inserts position ip-2 into the hash table, mirroring the
// reference parser's extra insertion from just inside the match that
// was just encoded, so a later match can reference into it.
func updateTable(src []byte, table *[1 << hashLog]int32, ip int) {
	if ip >= 2 && ip-2+minMatch <= len(src) {
		table[hash4(src, ip-2)] = int32(ip - 2)
	}
}

func hash4(src []byte, i int) uint32 {
	v := binary.LittleEndian.Uint32(src[i:])
	return (v * 2654435761) >> hashShift
}

func match4(src []byte, a, b int) bool {
	return binary.LittleEndian.Uint32(src[a:]) == binary.LittleEndian.Uint32(src[b:])
}

// extendMatch extends a match forward one byte at a time, stopping
// short of limit so the final lastLiterals bytes of the block are
// never folded into a match, per the block format's parsing
// restriction.
func extendMatch(src []byte, a, b, limit int) int {
	n := 0
	for b+n < limit && src[a+n] == src[b+n] {
		n++
	}

	return n
}

// appendLiterals appends a literal run's token and bytes to dst and
// returns the resulting slice along with the offset of the token byte,
// so a following appendMatch call can fill in the token's match-length
// nibble. followedByMatch forces a token to be emitted even for a
// zero-length literal run, since every match must be preceded by one.
func appendLiterals(dst, lits []byte, followedByMatch bool) ([]byte, int) {
	litLen := len(lits)

	if !followedByMatch && litLen == 0 {
		return dst, -1
	}

	tokenPos := len(dst)
	dst = append(dst, 0)

	var tok byte
	if litLen < 15 {
		tok = byte(litLen) << 4
	} else {
		tok = 0xF0
	}

	dst[tokenPos] = tok
	if litLen >= 15 {
		dst = appendLength(dst, litLen-15)
	}

	dst = append(dst, lits...)

	return dst, tokenPos
}

func appendMatch(dst []byte, tokenPos, offset, matchLen int) []byte {
	if matchLen < 15 {
		dst[tokenPos] |= byte(matchLen)
	} else {
		dst[tokenPos] |= 0x0F
	}

	dst = append(dst, byte(offset), byte(offset>>8))

	if matchLen >= 15 {
		dst = appendLength(dst, matchLen-15)
	}

	return dst
}

func appendLength(dst []byte, n int) []byte {
	for n >= 255 {
		dst = append(dst, 255)
		n -= 255
	}

	return append(dst, byte(n))
}

// decompressBlock decompresses an LZ4 block of compressed bytes and
// appends the result to dst, returning the extended slice.
// decompressedSize only sizes the scratch buffer the block is decoded
// into; dst needs no spare capacity.
func decompressBlock(dst []byte, src []byte, decompressedSize int) ([]byte, error) {
	out := make([]byte, 0, decompressedSize)

	i := 0
	for i < len(src) {
		token := src[i]
		i++

		litLen := int(token >> 4)
		if litLen == 15 {
			n, consumed, err := readLength(src[i:])
			if err != nil {
				return nil, err
			}

			litLen += n
			i += consumed
		}

		if i+litLen > len(src) {
			return nil, &FormatError{Reason: "literal run exceeds block"}
		}

		out = append(out, src[i:i+litLen]...)
		i += litLen

		if i == len(src) {
			// final sequence has no match part
			break
		}

		if i+2 > len(src) {
			return nil, &FormatError{Reason: "truncated match offset"}
		}

		offset := int(src[i]) | int(src[i+1])<<8
		i += 2

		if offset == 0 || offset > len(out) {
			return nil, &FormatError{Reason: "invalid match offset"}
		}

		matchLen := int(token&0x0F) + minMatch
		if token&0x0F == 15 {
			n, consumed, err := readLength(src[i:])
			if err != nil {
				return nil, err
			}

			matchLen += n
			i += consumed
		}

		matchPos := len(out) - offset
		for k := 0; k < matchLen; k++ {
			out = append(out, out[matchPos+k])
		}
	}

	return append(dst, out...), nil
}

func readLength(src []byte) (n int, consumed int, err error) {
	for {
		if consumed >= len(src) {
			return 0, 0, &FormatError{Reason: "truncated length sequence"}
		}

		b := src[consumed]
		n += int(b)
		consumed++

		if b != 255 {
			return n, consumed, nil
		}
	}
}

// blockBound returns the maximum compressed size of an n-byte block,
// matching LZ4_compressBound: input size plus an overhead margin for
// worst-case incompressible data.
func blockBound(n int) int {
	return n + n/255 + 16
}
