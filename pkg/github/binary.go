// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"encoding/base64"
	"path"
	"strings"
)

// 🔧 Binary-sniff tunables. The sample size and control-character ratio are
// heuristic defaults, not tuned constants; override them on the detector if
// a corpus says otherwise.
const (
	DefaultSniffLimit   = 1000 // base64 characters sampled before deciding
	DefaultControlRatio = 0.10 // control bytes tolerated in the sample
)

// 🗂️ knownBinaryExtensions short-circuits detection for formats that are
// binary by definition, whatever their bytes happen to look like.
var knownBinaryExtensions = map[string]bool{
	// images
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".webp": true, ".tiff": true, ".avif": true,
	// archives
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true,
	".7z": true, ".rar": true,
	// fonts
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	// executables and libraries
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".wasm": true,
	".class": true, ".pyc": true,
	// media
	".mp3": true, ".mp4": true, ".wav": true, ".ogg": true, ".avi": true,
	".mov": true, ".mkv": true, ".flac": true, ".webm": true,
	// generic binary and databases
	".bin": true, ".dat": true, ".db": true, ".sqlite": true, ".pdf": true,
}

// 🔬 BinaryDetector classifies base64 payloads as binary or text.
type BinaryDetector struct {
	// SniffLimit is how many base64 characters are decoded for the
	// content sniff. ControlRatio is the fraction of control bytes above
	// which the sample is called binary.
	SniffLimit   int
	ControlRatio float64
}

// 🏭 NewBinaryDetector returns a detector with the default thresholds.
func NewBinaryDetector() *BinaryDetector {
	return &BinaryDetector{
		SniffLimit:   DefaultSniffLimit,
		ControlRatio: DefaultControlRatio,
	}
}

// 🔍 IsBinaryPath reports whether the file extension alone marks the
// content binary.
func (d *BinaryDetector) IsBinaryPath(name string) bool {
	return knownBinaryExtensions[strings.ToLower(path.Ext(name))]
}

// 🔬 IsBinaryContent sniffs the head of a base64 payload. Any NUL byte is
// an immediate binary verdict; otherwise the verdict is by the ratio of
// control characters outside common whitespace. A sample that fails to
// decode at all is binary (fail safe).
func (d *BinaryDetector) IsBinaryContent(encoded string) bool {
	cleaned := stripWhitespace(encoded)
	sample := cleaned
	if len(sample) > d.SniffLimit {
		sample = sample[:d.SniffLimit]
	}
	// Trim to a whole base64 quantum so the partial sample still decodes.
	sample = sample[:len(sample)-len(sample)%4]
	if sample == "" {
		return false
	}

	raw, err := base64.StdEncoding.DecodeString(sample)
	if err != nil {
		return true
	}
	if len(raw) == 0 {
		return false
	}

	control := 0
	for _, b := range raw {
		if b == 0x00 {
			return true
		}
		if b < 0x09 || (b >= 0x0E && b <= 0x1F) {
			control++
		}
	}
	return float64(control)/float64(len(raw)) > d.ControlRatio
}

// 📜 Decode classifies and decodes a base64 payload in one pass. The
// returned pointer is nil when the content is binary; decoding never
// returns an error — a payload that will not decode is classified binary
// instead.
func (d *BinaryDetector) Decode(name, encoded string) (content *string, isBinary bool) {
	if d.IsBinaryPath(name) || d.IsBinaryContent(encoded) {
		return nil, true
	}

	raw, err := base64.StdEncoding.DecodeString(stripWhitespace(encoded))
	if err != nil {
		// The sample decoded but the full payload did not. Fall back to
		// a binary classification rather than surfacing the failure.
		return nil, true
	}

	text := string(raw)
	return &text, false
}

// stripWhitespace removes the line wrapping GitHub embeds in base64
// payloads, along with any other whitespace.
func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', '\v', '\f':
			return -1
		}
		return r
	}, s)
}
