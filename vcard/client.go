package vcard

import (
	"regexp"
	"strconv"
	"strings"
)

// Format is the document encoding served to a client.
type Format int

const (
	// FormatVCard is the plain vCard 3.0 document.
	FormatVCard Format = iota
	// FormatVCalendar is the calendar wrapper for iOS before version 8.
	FormatVCalendar
)

func (f Format) String() string {
	if f == FormatVCalendar {
		return "vcalendar"
	}
	return "vcard"
}

// Extension returns the file extension without dot.
func (f Format) Extension() string {
	if f == FormatVCalendar {
		return "ics"
	}
	return "vcf"
}

// ContentType returns the MIME type without charset.
func (f Format) ContentType() string {
	if f == FormatVCalendar {
		return "text/x-vcalendar"
	}
	return "text/x-vcard"
}

const (
	unknownUserAgent = "unknown"
	// modernVersion stands in for clients that report no iOS version.
	modernVersion = 999
	// firstVCardVersion is the first iOS major version that opens .vcf files.
	firstVCardVersion = 8
)

var iosVersionPattern = regexp.MustCompile(`os (\d+)_(\d+)`)

func normalizeUserAgent(userAgent string) string {
	if userAgent == "" {
		return unknownUserAgent
	}
	return strings.ToLower(userAgent)
}

// IsIOS reports whether the user agent belongs to an iPhone, iPod or iPad.
func IsIOS(userAgent string) bool {
	ua := normalizeUserAgent(userAgent)
	return strings.Contains(ua, "iphone") || strings.Contains(ua, "ipod") || strings.Contains(ua, "ipad")
}

// IOSMajorVersion extracts the major version from "OS <major>_<minor>".
// Without a version it returns 999, i.e. a modern client.
func IOSMajorVersion(userAgent string) int {
	m := iosVersionPattern.FindStringSubmatch(normalizeUserAgent(userAgent))
	if m == nil {
		return modernVersion
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return modernVersion
	}
	return major
}

// IsLegacyIOS reports whether the client needs the calendar wrapper.
func IsLegacyIOS(userAgent string) bool {
	return IsIOS(userAgent) && IOSMajorVersion(userAgent) < firstVCardVersion
}

// DetectFormat chooses the document format for a client identifier, usually
// the User-Agent header.
func DetectFormat(userAgent string) Format {
	if IsLegacyIOS(userAgent) {
		return FormatVCalendar
	}
	return FormatVCard
}
