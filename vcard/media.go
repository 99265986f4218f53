package vcard

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// MediaResolver supplies content types and bytes for logo and photo fields.
// Implementations should give up instead of blocking indefinitely; the
// default implementation applies an HTTP timeout and honours ctx.
type MediaResolver interface {
	// RemoteContentType returns the Content-Type advertised for a URL.
	RemoteContentType(ctx context.Context, url string) (string, error)
	// FetchRemote downloads a URL.
	FetchRemote(ctx context.Context, url string) ([]byte, error)
	// LocalContentType detects the content type of a local file.
	LocalContentType(path string) (string, error)
	// ReadLocal reads a local file.
	ReadLocal(path string) ([]byte, error)
	// DetectContent sniffs the content type of a buffer.
	DetectContent(content []byte) (string, error)
}

type mediaLocation int

const (
	mediaLocal mediaLocation = iota
	mediaRemote
)

type mediaDisposition int

const (
	mediaLinked mediaDisposition = iota
	mediaInline
)

// mediaSource is a media reference resolved once into where it lives and how
// it ends up in the card.
type mediaSource struct {
	ref         string
	location    mediaLocation
	disposition mediaDisposition
}

func classifyMedia(ref string, include bool) mediaSource {
	src := mediaSource{ref: ref, location: mediaLocal, disposition: mediaLinked}
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" && u.Host != "" {
		src.location = mediaRemote
	}
	if include {
		src.disposition = mediaInline
	}
	return src
}

func (s mediaSource) contentType(ctx context.Context, r MediaResolver) (string, error) {
	if s.location == mediaRemote {
		return r.RemoteContentType(ctx, s.ref)
	}
	return r.LocalContentType(s.ref)
}

func (s mediaSource) fetch(ctx context.Context, r MediaResolver) ([]byte, error) {
	if s.location == mediaRemote {
		return r.FetchRemote(ctx, s.ref)
	}
	return r.ReadLocal(s.ref)
}

// imageTag validates an image content type and returns the upper-cased
// subtype, e.g. "image/jpeg; charset=binary" -> "JPEG".
func imageTag(contentType string) (string, error) {
	mimeType, _, _ := strings.Cut(contentType, ";")
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	subtype, ok := strings.CutPrefix(mimeType, "image/")
	if !ok || subtype == "" {
		if mimeType == "" {
			return "", errors.New("content type could not be determined")
		}
		return "", fmt.Errorf("content type %q is not an image", mimeType)
	}
	return strings.ToUpper(subtype), nil
}

func (b *Builder) addMedia(ctx context.Context, el Element, property, ref string, include bool) error {
	if err := b.checkElement(el); err != nil {
		return err
	}
	src := classifyMedia(ref, include)

	contentType, err := src.contentType(ctx, b.resolver)
	if err != nil {
		b.logger.Warn("media content type lookup failed", "element", el.String(), "ref", ref, "error", err)
		return invalidImage(el, ref, err)
	}
	tag, err := imageTag(contentType)
	if err != nil {
		return invalidImage(el, ref, err)
	}

	value := ref
	switch {
	case src.disposition == mediaInline:
		data, err := src.fetch(ctx, b.resolver)
		if err != nil {
			b.logger.Warn("media fetch failed", "element", el.String(), "ref", ref, "error", err)
			return emptyResource(el, ref, err)
		}
		if len(data) == 0 {
			return emptyResource(el, ref, nil)
		}
		value = base64.StdEncoding.EncodeToString(data)
		property += ";ENCODING=b;TYPE=" + tag
	case src.location == mediaRemote:
		property += ";VALUE=URL;TYPE=" + tag
	}

	return b.setProperty(el, property, value)
}

func (b *Builder) addMediaContent(el Element, property string, content []byte) error {
	if err := b.checkElement(el); err != nil {
		return err
	}
	contentType, err := b.resolver.DetectContent(content)
	if err != nil {
		return invalidImage(el, "", err)
	}
	tag, err := imageTag(contentType)
	if err != nil {
		return invalidImage(el, "", err)
	}
	return b.setProperty(el, property+";ENCODING=b;TYPE="+tag, base64.StdEncoding.EncodeToString(content))
}

// AddLogo adds a logo from a URL or local path. With include the image is
// fetched and embedded as base64; otherwise the card links to it.
func (b *Builder) AddLogo(ctx context.Context, ref string, include bool) error {
	return b.addMedia(ctx, ElementLogo, "LOGO", ref, include)
}

// AddLogoContent embeds raw image bytes as the logo.
func (b *Builder) AddLogoContent(content []byte) error {
	return b.addMediaContent(ElementLogo, "LOGO", content)
}

// AddPhoto adds a photo from a URL or local path. With include the image is
// fetched and embedded as base64; otherwise the card links to it.
func (b *Builder) AddPhoto(ctx context.Context, ref string, include bool) error {
	return b.addMedia(ctx, ElementPhoto, "PHOTO", ref, include)
}

// AddPhotoContent embeds raw image bytes as the photo.
func (b *Builder) AddPhotoContent(content []byte) error {
	return b.addMediaContent(ElementPhoto, "PHOTO", content)
}
