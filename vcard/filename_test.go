package vcard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetFilename(t *testing.T) {
	tests := []struct {
		name      string
		initial   string
		value     string
		overwrite bool
		separator string
		want      string
	}{
		{name: "simple", value: "Jane Doe", overwrite: true, want: "jane_doe"},
		{name: "collapses whitespace", value: "  Jane \t  Doe  ", overwrite: true, want: "jane_doe"},
		{name: "custom separator", value: "Jane Doe", overwrite: true, separator: "-", want: "jane-doe"},
		{name: "transliterates", value: "Zoë Müller", overwrite: true, want: "zoe_muller"},
		{name: "append", initial: "jane", value: "Doe", overwrite: false, want: "jane_doe"},
		{name: "append to nothing", value: "Doe", overwrite: false, want: "doe"},
		{name: "overwrite", initial: "jane", value: "Acme", overwrite: true, want: "acme"},
		{name: "empty ignored", initial: "jane", value: "   ", overwrite: true, want: "jane"},
		{name: "separators only ignored", initial: "jane", value: "___", overwrite: true, want: "jane"},
		{name: "ampersand spelled out", value: "Jane Doe & Co.", overwrite: true, want: "jane_doe_and_co"},
		{name: "dot separator", initial: "jane", value: "Doe", overwrite: false, separator: ".", want: "jane.doe"},
		{name: "path separator replaced", initial: "jane", value: "x", overwrite: false, separator: "/../../", want: "jane_x"},
		{name: "slash separator replaced", value: "Jane Doe", overwrite: true, separator: "/", want: "jane_doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			if tt.initial != "" {
				b.SetFilename(tt.initial, true, "")
			}
			b.SetFilename(tt.value, tt.overwrite, tt.separator)
			assert.Equal(t, tt.want, b.Filename())
		})
	}
}

func TestFilenameDefault(t *testing.T) {
	assert.Equal(t, "unknown", New().Filename())
}

func TestFilenameSafe(t *testing.T) {
	b := New()
	b.SetFilename("Doe & Co. / Ltd?", true, "_")
	b.SetFilename("..", false, "/../")
	b.SetFilename("etc passwd", false, `\`)
	name := b.Filename()

	assert.NotEmpty(t, name)
	assert.Equal(t, strings.ToLower(name), name)
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "&")
	assert.NotContains(t, name, "/")
	assert.NotContains(t, name, "?")
	assert.NotContains(t, name, `\`)
	assert.NotContains(t, name, "..")
	for _, r := range name {
		assert.Less(t, r, rune(128))
	}
}
