/*
Package vcard builds vCard 3.0 contact cards and serves them as downloads.

# Basic Usage

	b := vcard.New()
	if err := b.AddName(vcard.Name{First: "Jane", Last: "Doe"}); err != nil {
		return err
	}
	b.AddCompany("Doe & Co.", "Sales")
	b.AddEmail("jane@example.com", "PREF", "WORK")
	b.AddPhoneNumber("+44 20 7946 0000", "WORK")

	http.HandleFunc("/jane", func(w http.ResponseWriter, r *http.Request) {
		b.Download(w, r.UserAgent())
	})

AddName also adds a formatted name (FN) unless AddFullName was called first,
and names the document after the person ("jane_doe.vcf"). AddCompany names the
document only when no name is set yet.

# Elements

Every add operation belongs to an Element. Email, address, phone number, URL
and label may be added any number of times; every other element can be added
once and a second attempt returns an error matching ErrDuplicateElement. A
failed operation never changes the builder.

# Output Formats

Render picks the format from the client identifier:

  - FormatVCard: the vCard itself, CRLF line endings, lines folded at 75
    characters.
  - FormatVCalendar: for iPhone, iPod and iPad before iOS 8, which cannot open
    .vcf files, a calendar event with the vCard as base64 attachment. Tapping
    the attachment imports the contact. Lines end with LF.

ExtractCard recovers the vCard from such a wrapper.

# Media

AddLogo and AddPhoto accept a URL or local path. Remote content types come
from a HEAD request and local ones from content sniffing; only image types are
accepted. With include set the image is embedded as base64, otherwise the card
links to it. The lookups go through a MediaResolver, replaceable with
WithMediaResolver.
*/
package vcard
