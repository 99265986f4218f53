package vcard

import (
	"strings"

	"github.com/gosimple/slug"
	"github.com/samber/mo"
)

const (
	defaultSeparator = "_"
	unknownFilename  = "unknown"
)

// Filename returns the document name without extension, "unknown" if none was derived.
func (b *Builder) Filename() string {
	return b.filename.OrElse(unknownFilename)
}

// separatorOrDefault returns separator if it is one of "-", "_" or ".", and
// the default separator otherwise.
func separatorOrDefault(separator string) string {
	switch separator {
	case "-", "_", ".":
		return separator
	default:
		return defaultSeparator
	}
}

// SetFilename derives the document name from value: whitespace becomes
// separator, the result is transliterated to lowercase ASCII and made
// slug-safe. With overwrite false the value is appended to the current name
// using separator. Separators other than "-", "_" and "." are replaced by "_".
// Values that reduce to nothing are ignored.
func (b *Builder) SetFilename(value string, overwrite bool, separator string) {
	separator = separatorOrDefault(separator)
	value = strings.Trim(value, separator)
	value = strings.Join(strings.Fields(value), separator)
	if value == "" {
		return
	}

	value = slug.Make(strings.ToLower(value))
	if value == "" {
		return
	}

	current, ok := b.filename.Get()
	if !overwrite && ok {
		value = current + separator + value
	}
	b.filename = mo.Some(value)
	b.logger.Debug("filename set", "filename", value)
}

func (b *Builder) setFilenameParts(parts []string, overwrite bool, separator string) {
	b.SetFilename(strings.Join(parts, separator), overwrite, separator)
}
