package github

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryDetector(t *testing.T) {
	d := NewBinaryDetector()

	t.Run("test_text_roundtrip", func(t *testing.T) {
		original := "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"
		encoded := base64.StdEncoding.EncodeToString([]byte(original))

		content, isBinary := d.Decode("main.go", encoded)
		require.False(t, isBinary, "printable ASCII should classify as text")
		require.NotNil(t, content, "text classification must carry content")
		assert.Equal(t, original, *content, "decode must reproduce the original exactly")
	})

	t.Run("test_null_byte_is_binary", func(t *testing.T) {
		encoded := base64.StdEncoding.EncodeToString([]byte("ELF\x00header"))

		content, isBinary := d.Decode("mystery", encoded)
		assert.True(t, isBinary, "any NUL byte forces a binary verdict")
		assert.Nil(t, content, "binary classification must have nil content")
	})

	t.Run("test_known_extension_short_circuits", func(t *testing.T) {
		// Perfectly decodable text, but the extension says binary.
		encoded := base64.StdEncoding.EncodeToString([]byte("not really a png"))

		content, isBinary := d.Decode("logo.PNG", encoded)
		assert.True(t, isBinary, "extension check is case-insensitive and wins over content")
		assert.Nil(t, content, "binary classification must have nil content")
	})

	t.Run("test_control_character_ratio", func(t *testing.T) {
		// 20 bytes, 4 of them control chars outside common whitespace: 20% > 10%.
		payload := append([]byte(strings.Repeat("a", 16)), 0x01, 0x02, 0x03, 0x04)
		encoded := base64.StdEncoding.EncodeToString(payload)
		assert.True(t, d.IsBinaryContent(encoded), "over-threshold control ratio should be binary")

		// 1 control char in 100 bytes: 1% < 10%.
		payload = append([]byte(strings.Repeat("a", 99)), 0x01)
		encoded = base64.StdEncoding.EncodeToString(payload)
		assert.False(t, d.IsBinaryContent(encoded), "under-threshold control ratio should be text")
	})

	t.Run("test_whitespace_in_controls_is_fine", func(t *testing.T) {
		// Tabs, newlines and carriage returns are common whitespace, not
		// control noise.
		encoded := base64.StdEncoding.EncodeToString([]byte("a\tb\nc\rd\n"))
		assert.False(t, d.IsBinaryContent(encoded), "whitespace must not count toward the ratio")
	})

	t.Run("test_wrapped_base64_decodes", func(t *testing.T) {
		original := strings.Repeat("hello world, this is a longer line of text. ", 40)
		encoded := base64.StdEncoding.EncodeToString([]byte(original))

		// GitHub line-wraps encoded payloads at 60 columns.
		var wrapped strings.Builder
		for i := 0; i < len(encoded); i += 60 {
			end := i + 60
			if end > len(encoded) {
				end = len(encoded)
			}
			wrapped.WriteString(encoded[i:end])
			wrapped.WriteString("\n")
		}

		content, isBinary := d.Decode("notes.txt", wrapped.String())
		require.False(t, isBinary, "wrapped payload should still classify as text")
		require.NotNil(t, content, "wrapped payload should decode")
		assert.Equal(t, original, *content, "whitespace stripping must not corrupt the payload")
	})

	t.Run("test_undecodable_sample_is_binary", func(t *testing.T) {
		assert.True(t, d.IsBinaryContent("!!!!not-base64!!!!"), "undecodable sample fails safe to binary")
	})

	t.Run("test_undecodable_full_payload_falls_back", func(t *testing.T) {
		// A clean 1000-char sample followed by garbage: the sniff passes
		// but the full decode fails, so classification falls back to
		// binary instead of erroring.
		clean := base64.StdEncoding.EncodeToString([]byte(strings.Repeat("text ", 200)))
		require.Greater(t, len(clean), DefaultSniffLimit, "payload must exceed the sniff window")
		payload := clean + "???###"

		content, isBinary := d.Decode("file.txt", payload)
		assert.True(t, isBinary, "full-decode failure must classify binary, not raise")
		assert.Nil(t, content, "fallback classification must have nil content")
	})

	t.Run("test_empty_payload", func(t *testing.T) {
		content, isBinary := d.Decode("empty.txt", "")
		require.False(t, isBinary, "an empty payload is text")
		require.NotNil(t, content, "empty text should decode")
		assert.Equal(t, "", *content, "empty payload decodes to the empty string")
	})

	t.Run("test_custom_thresholds", func(t *testing.T) {
		strict := &BinaryDetector{SniffLimit: DefaultSniffLimit, ControlRatio: 0.0}
		payload := append([]byte(strings.Repeat("a", 99)), 0x01)
		encoded := base64.StdEncoding.EncodeToString(payload)
		assert.True(t, strict.IsBinaryContent(encoded), "a zero tolerance detector flags any control byte")
	})
}
