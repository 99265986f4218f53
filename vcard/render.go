package vcard

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-ical"
)

const (
	crlf = "\r\n"

	// foldWidth is the maximum line length in characters (RFC 2425 section 5.8.1).
	foldWidth = 75
	// attachmentWidth is the base64 chunk width Apple Calendar uses for attachments.
	attachmentWidth = 74

	wrapperTimezone = "Europe/London"
	wrapperSummary  = "Click attached contact below to save to your contacts"
)

// ErrNoAttachment is returned by ExtractCard when the calendar carries no contact attachment.
var ErrNoAttachment = errors.New("no contact attachment found")

var wrapperLocation = sync.OnceValue(func() *time.Location {
	loc, err := time.LoadLocation(wrapperTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
})

// escape replaces CRLF and LF with the two characters `\n` (RFC 2425 section 5.8.4).
func escape(text string) string {
	return strings.NewReplacer("\r\n", `\n`, "\n", `\n`).Replace(text)
}

// fold wraps a line without its terminator into chunks of foldWidth
// characters joined by CRLF and a space. The width counts content only, so a
// line of exactly foldWidth characters stays whole and CRLF is never split.
// Chunks never split a multi-byte character.
func fold(line string) string {
	if len(line) <= foldWidth {
		return line
	}
	var sb strings.Builder
	start, n := 0, 0
	for i := range line {
		if n == foldWidth {
			sb.WriteString(line[start:i])
			sb.WriteString(crlf + " ")
			start, n = i, 0
		}
		n++
	}
	sb.WriteString(line[start:])
	return sb.String()
}

// BuildVCard renders the vCard 3.0 document with CRLF line endings.
func (b *Builder) BuildVCard() string {
	return b.buildVCard(b.now())
}

func (b *Builder) buildVCard(now time.Time) string {
	var sb strings.Builder
	sb.WriteString("BEGIN:VCARD" + crlf)
	sb.WriteString("VERSION:3.0" + crlf)
	sb.WriteString("REV:" + now.UTC().Format("2006-01-02T15:04:05") + "Z" + crlf)
	for _, p := range b.properties {
		sb.WriteString(fold(p.Key + ":" + escape(p.Value)))
		sb.WriteString(crlf)
	}
	sb.WriteString("END:VCARD" + crlf)
	return sb.String()
}

// BuildVCalendar renders the calendar wrapper: a single event whose attachment
// is the base64-encoded vCard. iOS before 8 cannot open .vcf downloads but
// offers to import contacts attached to events. Lines end with LF.
func (b *Builder) BuildVCalendar() string {
	return b.buildVCalendar(b.now())
}

func (b *Builder) buildVCalendar(now time.Time) string {
	stamp := now.In(wrapperLocation()).Format("20060102T1504")
	dtstart := stamp + "00"
	dtend := stamp + "01"

	var sb strings.Builder
	sb.WriteString("BEGIN:VCALENDAR\n")
	sb.WriteString("VERSION:2.0\n")
	sb.WriteString("BEGIN:VEVENT\n")
	sb.WriteString("DTSTART;TZID=" + wrapperTimezone + ":" + dtstart + "\n")
	sb.WriteString("DTEND;TZID=" + wrapperTimezone + ":" + dtend + "\n")
	sb.WriteString("SUMMARY:" + wrapperSummary + "\n")
	sb.WriteString("DTSTAMP:" + dtstart + "Z\n")
	sb.WriteString("ATTACH;VALUE=BINARY;ENCODING=BASE64;FMTTYPE=text/directory;\n")
	sb.WriteString(" X-APPLE-FILENAME=" + b.Filename() + "." + FormatVCalendar.Extension() + ":\n")

	encoded := base64.StdEncoding.EncodeToString([]byte(b.buildVCard(now)))
	for len(encoded) > 0 {
		n := min(attachmentWidth, len(encoded))
		sb.WriteString(" " + encoded[:n] + "\n")
		encoded = encoded[n:]
	}

	sb.WriteString("END:VEVENT\n")
	sb.WriteString("END:VCALENDAR\n")
	return sb.String()
}

// ExtractCard returns the vCard embedded in a calendar wrapper as produced by
// BuildVCalendar.
func ExtractCard(ics []byte) ([]byte, error) {
	cal, err := ical.NewDecoder(bytes.NewReader(ics)).Decode()
	if err != nil {
		return nil, fmt.Errorf("failed to decode calendar: %w", err)
	}
	for _, child := range cal.Children {
		if child.Name != ical.CompEvent {
			continue
		}
		for _, attach := range child.Props.Values(ical.PropAttach) {
			if !strings.EqualFold(attach.Params.Get(ical.ParamFormatType), "text/directory") {
				continue
			}
			card, err := base64.StdEncoding.DecodeString(attach.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to decode attachment: %w", err)
			}
			return card, nil
		}
	}
	return nil, ErrNoAttachment
}
