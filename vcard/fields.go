package vcard

import (
	"strings"
)

// DefaultAddressType is used by AddAddress when no type is given.
const DefaultAddressType = "WORK;POSTAL"

// Name holds the structured name components, in vCard N order.
type Name struct {
	Last       string
	First      string
	Middle     string
	Additional string
	Prefix     string
	Suffix     string
}

// value renders the six N components.
func (n Name) value() string {
	return strings.Join([]string{n.Last, n.First, n.Middle, n.Additional, n.Prefix, n.Suffix}, ";")
}

// displayParts returns the non-empty parts used for FN and the filename.
func (n Name) displayParts() []string {
	var parts []string
	for _, p := range []string{n.Prefix, n.First, n.Additional, n.Last, n.Suffix} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Address holds the seven ADR components.
type Address struct {
	Name     string // post office box
	Extended string
	Street   string
	City     string
	Region   string
	Zip      string
	Country  string
}

func (a Address) value() string {
	return strings.Join([]string{a.Name, a.Extended, a.Street, a.City, a.Region, a.Zip, a.Country}, ";")
}

// typeSuffix renders ";T1;T2" or "" when no non-empty type is given.
func typeSuffix(types []string) string {
	t := strings.Join(types, ";")
	if t == "" {
		return ""
	}
	return ";" + t
}

// AddName adds the structured name (N). When no full name has been added yet
// it also adds FN built from the non-empty name parts. The filename is always
// replaced by the name parts.
func (b *Builder) AddName(n Name) error {
	if err := b.setProperty(ElementName, "N"+b.charsetSuffix(), n.value()); err != nil {
		return err
	}
	parts := n.displayParts()
	if !b.defined[ElementFullName] {
		// cannot fail: the element was just checked
		_ = b.setProperty(ElementFullName, "FN"+b.charsetSuffix(), strings.TrimSpace(strings.Join(parts, " ")))
	}
	b.setFilenameParts(parts, true, defaultSeparator)
	return nil
}

// AddFullName adds the formatted name (FN) explicitly. Call it before AddName
// to keep AddName from synthesising one.
func (b *Builder) AddFullName(name string) error {
	return b.setProperty(ElementFullName, "FN"+b.charsetSuffix(), name)
}

// AddAddress adds an address. Without types the address is typed
// DefaultAddressType; pass a single empty string to omit the type.
func (b *Builder) AddAddress(a Address, types ...string) error {
	if len(types) == 0 {
		types = []string{DefaultAddressType}
	}
	return b.setProperty(ElementAddress, "ADR"+typeSuffix(types)+b.charsetSuffix(), a.value())
}

// AddBirthday adds the birthday, e.g. "1990-01-31".
func (b *Builder) AddBirthday(date string) error {
	return b.setProperty(ElementBirthday, "BDAY", date)
}

// AddCompany adds the organisation with an optional department. The company
// becomes the filename unless one is already set.
func (b *Builder) AddCompany(company, department string) error {
	value := company
	if department != "" {
		value += ";" + department
	}
	if err := b.setProperty(ElementCompany, "ORG"+b.charsetSuffix(), value); err != nil {
		return err
	}
	if b.filename.IsAbsent() {
		b.SetFilename(company, true, defaultSeparator)
	}
	return nil
}

// AddEmail adds an e-mail address, e.g. AddEmail("jane@example.com", "PREF", "WORK").
func (b *Builder) AddEmail(address string, types ...string) error {
	return b.setProperty(ElementEmail, "EMAIL;INTERNET"+typeSuffix(types), address)
}

// AddJobTitle adds the job title (TITLE).
func (b *Builder) AddJobTitle(title string) error {
	return b.setProperty(ElementJobTitle, "TITLE"+b.charsetSuffix(), title)
}

// AddLabel adds a delivery label.
func (b *Builder) AddLabel(label string, types ...string) error {
	return b.setProperty(ElementLabel, "LABEL"+typeSuffix(types), label)
}

// AddRole adds the role.
func (b *Builder) AddRole(role string) error {
	return b.setProperty(ElementRole, "ROLE"+b.charsetSuffix(), role)
}

// AddNote adds a free-form note. Line breaks are kept and escaped on output.
func (b *Builder) AddNote(note string) error {
	return b.setProperty(ElementNote, "NOTE"+b.charsetSuffix(), note)
}

// AddCategories adds the comma-joined categories.
func (b *Builder) AddCategories(categories []string) error {
	return b.setProperty(ElementCategories, "CATEGORIES"+b.charsetSuffix(), strings.TrimSpace(strings.Join(categories, ",")))
}

// AddPhoneNumber adds a telephone number, e.g. AddPhoneNumber("+1 555 0100", "WORK", "VOICE").
func (b *Builder) AddPhoneNumber(number string, types ...string) error {
	return b.setProperty(ElementPhoneNumber, "TEL"+typeSuffix(types), number)
}

// AddURL adds a web address.
func (b *Builder) AddURL(url string, types ...string) error {
	return b.setProperty(ElementURL, "URL"+typeSuffix(types), url)
}
