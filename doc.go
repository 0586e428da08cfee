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

// Package butl is a general-purpose systems utility library: portable
// file-descriptor streams, process spawning, path and wildcard matching,
// and a handful of data-format codecs (manifest, JSON, LZ4, version
// constraints) used together as the low-level plumbing of a build
// toolchain and its satellite tools.
//
// butl does not own an event loop, a scheduling policy, or a single
// "context" type. Each subpackage is independently usable:
//
//	path        - lexical path and directory-path types
//	fsx         - filesystem operations (create, remove, stat, link, iterate)
//	codec/utf8x - streaming UTF-8 validation and sanitization
//	codec/base64x - base64 / base64url encode and decode
//	codec/lz4frame - LZ4 frame compression streams
//	fdstream    - owning file-descriptor streams, pipes, multiplexed select
//	process     - child process spawn, stdio plumbing, wait/term/kill
//	pattern     - wildcard matching and pattern-driven filesystem search
//	manifest    - RFC-822-like manifest parser and serializer
//	json        - streaming, event-driven JSON parser
//	version     - standard package-version grammar and constraints
//	env         - environment and current-directory overrides
package butl
