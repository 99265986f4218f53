// Package xcard renders builder properties as an xCard document (RFC 6351).
package xcard

import (
	"sort"
	"strings"

	"github.com/beevik/etree"
	"github.com/cyp0633/libvcard/vcard"
)

// Namespace is the xCard XML namespace.
const Namespace = "urn:ietf:params:xml:ns:vcard-4.0"

// ContentType is the MIME type of an xCard document.
const ContentType = "application/vcard+xml"

// structured component element names, in value order
var (
	nameComponents    = []string{"surname", "given", "additional", "additional", "prefix", "suffix"}
	addressComponents = []string{"pobox", "ext", "street", "locality", "region", "code", "country"}
)

// parameters with no meaning in UTF-8 XML
var droppedParams = map[string]bool{
	"CHARSET":  true,
	"ENCODING": true,
	"VALUE":    true,
}

type property struct {
	name   string
	types  []string
	params map[string]string
	value  string
}

func parseProperty(p vcard.Property) property {
	tokens := strings.Split(p.Key, ";")
	prop := property{
		name:   strings.ToLower(tokens[0]),
		params: make(map[string]string),
		value:  p.Value,
	}
	for _, tok := range tokens[1:] {
		if tok == "" {
			continue
		}
		k, v, ok := strings.Cut(tok, "=")
		if !ok {
			// INTERNET is implied for e-mail in xCard
			if prop.name == "email" && strings.EqualFold(tok, "INTERNET") {
				continue
			}
			prop.types = append(prop.types, strings.ToLower(tok))
			continue
		}
		prop.params[strings.ToUpper(k)] = v
	}
	return prop
}

// Encode builds an xCard document holding a single vcard element.
func Encode(props []vcard.Property) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("vcards")
	root.CreateAttr("xmlns", Namespace)
	card := root.CreateElement("vcard")

	for _, p := range props {
		encodeProperty(card, parseProperty(p))
	}
	return doc
}

func encodeProperty(card *etree.Element, p property) {
	elem := card.CreateElement(p.name)

	if len(p.types) > 0 {
		typ := parameters(elem).CreateElement("type")
		for _, t := range p.types {
			typ.CreateElement("text").SetText(t)
		}
	}

	switch p.name {
	case "n":
		encodeStructured(elem, nameComponents, p.value)
	case "adr":
		encodeStructured(elem, addressComponents, p.value)
	case "org":
		for _, part := range strings.Split(p.value, ";") {
			elem.CreateElement("text").SetText(part)
		}
	case "categories":
		for _, part := range strings.Split(p.value, ",") {
			elem.CreateElement("text").SetText(part)
		}
	case "bday":
		elem.CreateElement("date-and-or-time").SetText(p.value)
	case "url":
		elem.CreateElement("uri").SetText(p.value)
	case "logo", "photo":
		elem.CreateElement("uri").SetText(mediaURI(p))
	default:
		elem.CreateElement("text").SetText(p.value)
	}

	keys := make([]string, 0, len(p.params))
	for k := range p.params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name, value := strings.ToLower(k), p.params[k]
		if droppedParams[k] {
			continue
		}
		if isMedia(p.name) && k == "TYPE" {
			// inline media carries its type in the data URI
			if isInline(p) {
				continue
			}
			name, value = "mediatype", "image/"+strings.ToLower(value)
		}
		parameters(elem).CreateElement(name).CreateElement("text").SetText(value)
	}
}

// parameters returns the parameters child of elem, creating it as the first child.
func parameters(elem *etree.Element) *etree.Element {
	if params := elem.SelectElement("parameters"); params != nil {
		return params
	}
	params := etree.NewElement("parameters")
	elem.InsertChildAt(0, params)
	return params
}

func isMedia(name string) bool {
	return name == "logo" || name == "photo"
}

func isInline(p property) bool {
	return strings.EqualFold(p.params["ENCODING"], "b")
}

// encodeStructured writes one child per component, in order. Missing trailing
// components become empty elements.
func encodeStructured(elem *etree.Element, components []string, value string) {
	parts := strings.Split(value, ";")
	for i, name := range components {
		var part string
		if i < len(parts) {
			part = parts[i]
		}
		child := elem.CreateElement(name)
		if part != "" {
			child.SetText(part)
		}
	}
}

// mediaURI turns inline base64 media into a data URI and passes links through.
func mediaURI(p property) string {
	if !isInline(p) {
		return p.value
	}
	mediaType := "application/octet-stream"
	if t := p.params["TYPE"]; t != "" {
		mediaType = "image/" + strings.ToLower(t)
	}
	return "data:" + mediaType + ";base64," + p.value
}

// Marshal encodes props and returns the indented document.
func Marshal(props []vcard.Property) ([]byte, error) {
	doc := Encode(props)
	doc.Indent(2)
	return doc.WriteToBytes()
}
