package xcard

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/cyp0633/libvcard/vcard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(elem *etree.Element, path string) []string {
	var out []string
	for _, e := range elem.FindElements(path) {
		out = append(out, e.Text())
	}
	return out
}

func TestEncode(t *testing.T) {
	props := []vcard.Property{
		{Key: "N;CHARSET=utf-8", Value: "Doe;Jane;;;;"},
		{Key: "FN;CHARSET=utf-8", Value: "Jane Doe"},
		{Key: "ORG;CHARSET=utf-8", Value: "Acme;Sales"},
		{Key: "EMAIL;INTERNET;PREF;WORK", Value: "jane@example.com"},
		{Key: "ADR;WORK;POSTAL;CHARSET=utf-8", Value: ";;1 Main St;London;;;UK"},
		{Key: "CATEGORIES;CHARSET=utf-8", Value: "friends,work"},
		{Key: "BDAY", Value: "1990-01-31"},
		{Key: "URL", Value: "https://example.com"},
	}

	doc := Encode(props)
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "vcards", root.Tag)
	assert.Equal(t, Namespace, root.SelectAttrValue("xmlns", ""))

	card := root.SelectElement("vcard")
	require.NotNil(t, card)

	assert.Equal(t, "Doe", card.FindElement("n/surname").Text())
	assert.Equal(t, "Jane", card.FindElement("n/given").Text())
	assert.Len(t, card.FindElements("n/additional"), 2)
	assert.Equal(t, []string{"Jane Doe"}, texts(card, "fn/text"))
	assert.Equal(t, []string{"Acme", "Sales"}, texts(card, "org/text"))

	assert.Equal(t, []string{"pref", "work"}, texts(card, "email/parameters/type/text"))
	assert.Equal(t, []string{"jane@example.com"}, texts(card, "email/text"))

	assert.Equal(t, []string{"work", "postal"}, texts(card, "adr/parameters/type/text"))
	assert.Equal(t, "1 Main St", card.FindElement("adr/street").Text())
	assert.Equal(t, "London", card.FindElement("adr/locality").Text())
	assert.Equal(t, "UK", card.FindElement("adr/country").Text())

	assert.Equal(t, []string{"friends", "work"}, texts(card, "categories/text"))
	assert.Equal(t, []string{"1990-01-31"}, texts(card, "bday/date-and-or-time"))
	assert.Equal(t, []string{"https://example.com"}, texts(card, "url/uri"))

	// charset is meaningless in XML
	assert.Nil(t, card.FindElement("fn/parameters"))
}

func TestEncodeMedia(t *testing.T) {
	props := []vcard.Property{
		{Key: "LOGO;VALUE=URL;TYPE=JPEG", Value: "https://example.com/logo.jpg"},
		{Key: "PHOTO;ENCODING=b;TYPE=PNG", Value: "iVBORw0KGgo="},
	}

	card := Encode(props).Root().SelectElement("vcard")

	assert.Equal(t, []string{"https://example.com/logo.jpg"}, texts(card, "logo/uri"))
	assert.Equal(t, []string{"image/jpeg"}, texts(card, "logo/parameters/mediatype/text"))
	assert.Nil(t, card.FindElement("logo/parameters/value"))

	assert.Equal(t, []string{"data:image/png;base64,iVBORw0KGgo="}, texts(card, "photo/uri"))
	assert.Nil(t, card.FindElement("photo/parameters"))
}

func TestMarshal(t *testing.T) {
	data, err := Marshal([]vcard.Property{{Key: "FN;CHARSET=utf-8", Value: "Jane & Co"}})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<vcards xmlns="urn:ietf:params:xml:ns:vcard-4.0">`)
	assert.Contains(t, out, "Jane &amp; Co")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	assert.Equal(t, "Jane & Co", doc.FindElement("//fn/text").Text())
}

func TestEncodeFromBuilder(t *testing.T) {
	b := vcard.New()
	require.NoError(t, b.AddName(vcard.Name{First: "Jane", Last: "Doe"}))
	require.NoError(t, b.AddPhoneNumber("+1 555 0100", "WORK", "VOICE"))

	card := Encode(b.Properties()).Root().SelectElement("vcard")
	assert.Equal(t, []string{"work", "voice"}, texts(card, "tel/parameters/type/text"))
	assert.Equal(t, []string{"+1 555 0100"}, texts(card, "tel/text"))
}
