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

// xxHash-32, the checksum the LZ4 frame format uses for its header and
// (optionally) content checksums. Implemented directly from the
// published xxHash32 algorithm, since no pack dependency provides it;
// see DESIGN.md.
const (
	prime32_1 uint32 = 2654435761
	prime32_2 uint32 = 2246822519
	prime32_3 uint32 = 3266489917
	prime32_4 uint32 = 668265263
	prime32_5 uint32 = 374761393
)

func xxh32(input []byte, seed uint32) uint32 {
	n := len(input)
	p := 0

	var h32 uint32

	if n >= 16 {
		v1 := seed + prime32_1 + prime32_2
		v2 := seed + prime32_2
		v3 := seed
		v4 := seed - prime32_1

		limit := n - 16
		for p <= limit {
			v1 = xxh32Round(v1, binary.LittleEndian.Uint32(input[p:]))
			p += 4
			v2 = xxh32Round(v2, binary.LittleEndian.Uint32(input[p:]))
			p += 4
			v3 = xxh32Round(v3, binary.LittleEndian.Uint32(input[p:]))
			p += 4
			v4 = xxh32Round(v4, binary.LittleEndian.Uint32(input[p:]))
			p += 4
		}

		h32 = rotl32(v1, 1) + rotl32(v2, 7) + rotl32(v3, 12) + rotl32(v4, 18)
	} else {
		h32 = seed + prime32_5
	}

	h32 += uint32(n)

	for p+4 <= n {
		h32 += binary.LittleEndian.Uint32(input[p:]) * prime32_3
		h32 = rotl32(h32, 17) * prime32_4
		p += 4
	}

	for p < n {
		h32 += uint32(input[p]) * prime32_5
		h32 = rotl32(h32, 11) * prime32_1
		p++
	}

	h32 ^= h32 >> 15
	h32 *= prime32_2
	h32 ^= h32 >> 13
	h32 *= prime32_3
	h32 ^= h32 >> 16

	return h32
}

func xxh32Round(acc, input uint32) uint32 {
	acc += input * prime32_2
	acc = rotl32(acc, 13)
	acc *= prime32_1

	return acc
}

func rotl32(x uint32, r uint) uint32 {
	return (x << r) | (x >> (32 - r))
}
