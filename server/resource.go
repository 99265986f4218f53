package server

import (
	"fmt"
	"regexp"
	"strings"
)

// ResourceType indicates what a request path refers to.
type ResourceType int

const (
	ResourceUnknown ResourceType = iota
	// ResourceCollection is the prefix itself: the list of cards.
	ResourceCollection
	// ResourceCard is a single stored card.
	ResourceCard
)

// String provides a human-readable representation of the ResourceType.
func (rt ResourceType) String() string {
	switch rt {
	case ResourceCollection:
		return "Collection"
	case ResourceCard:
		return "Card"
	default:
		return "Unknown"
	}
}

// View selects the representation of a card.
type View int

const (
	// ViewDownload is the vCard, or the calendar wrapper for old iOS clients.
	ViewDownload View = iota
	// ViewQR is a PNG QR code of the vCard.
	ViewQR
	// ViewXCard is the xCard XML document.
	ViewXCard
)

var viewSegments = map[string]View{
	"qr":    ViewQR,
	"xcard": ViewXCard,
}

// Resource is a parsed request path.
type Resource struct {
	ID           string
	View         View
	ResourceType ResourceType
	URI          string
}

// URLConverter defines the URL path convention. Leave it unset to use
// DefaultURLConverter.
type URLConverter interface {
	// ParsePath parses a path relative to the handler prefix.
	ParsePath(path string) (Resource, error)
	// EncodePath encodes a Resource back to its path, prefix included.
	EncodePath(resource Resource) (string, error)
}

var cardIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidID reports whether id can name a card.
func ValidID(id string) bool {
	return len(id) <= 128 && cardIDPattern.MatchString(id)
}

// DefaultURLConverter implements URLConverter with the structure:
//   - Collection: /
//   - Card: /<id>
//   - QR code: /<id>/qr
//   - xCard: /<id>/xcard
//
// Prefix is prepended by EncodePath and stripped by ParsePath if present.
type DefaultURLConverter struct {
	Prefix string
}

// ParsePath parses a card path into its components.
func (c DefaultURLConverter) ParsePath(path string) (Resource, error) {
	resource := Resource{ResourceType: ResourceUnknown, URI: path}

	if prefix := strings.TrimSuffix(c.Prefix, "/"); prefix != "" {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			path = path[len(prefix):]
		}
	}
	var segments []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			segments = append(segments, p)
		}
	}

	switch len(segments) {
	case 0:
		resource.ResourceType = ResourceCollection
		return resource, nil
	case 1, 2:
		if !ValidID(segments[0]) {
			return resource, fmt.Errorf("invalid card id: %q", segments[0])
		}
		resource.ID = segments[0]
		resource.ResourceType = ResourceCard
		if len(segments) == 2 {
			view, ok := viewSegments[segments[1]]
			if !ok {
				return resource, fmt.Errorf("unknown card view: %q", segments[1])
			}
			resource.View = view
		}
		return resource, nil
	default:
		return resource, fmt.Errorf("invalid path: %s", path)
	}
}

// EncodePath encodes a Resource into its path.
func (c DefaultURLConverter) EncodePath(resource Resource) (string, error) {
	prefix := strings.TrimSuffix(c.Prefix, "/")
	switch resource.ResourceType {
	case ResourceCollection:
		return prefix + "/", nil
	case ResourceCard:
		if !ValidID(resource.ID) {
			return "", fmt.Errorf("invalid card id: %q", resource.ID)
		}
		path := prefix + "/" + resource.ID
		for seg, view := range viewSegments {
			if view == resource.View {
				path += "/" + seg
			}
		}
		return path, nil
	default:
		return "", fmt.Errorf("cannot encode %s resource", resource.ResourceType)
	}
}
