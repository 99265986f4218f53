package vcard

// Element is the logical field category a property belongs to. It is distinct
// from the rendered key: "TEL;WORK" and "TEL;HOME" are both ElementPhoneNumber.
type Element int

const (
	ElementUnknown Element = iota
	ElementName
	ElementFullName
	ElementAddress
	ElementEmail
	ElementPhoneNumber
	ElementURL
	ElementLabel
	ElementJobTitle
	ElementRole
	ElementNote
	ElementCategories
	ElementBirthday
	ElementCompany
	ElementLogo
	ElementPhoto
)

// String provides the element name used in error messages.
func (e Element) String() string {
	switch e {
	case ElementName:
		return "name"
	case ElementFullName:
		return "fullname"
	case ElementAddress:
		return "address"
	case ElementEmail:
		return "email"
	case ElementPhoneNumber:
		return "phoneNumber"
	case ElementURL:
		return "url"
	case ElementLabel:
		return "label"
	case ElementJobTitle:
		return "jobtitle"
	case ElementRole:
		return "role"
	case ElementNote:
		return "note"
	case ElementCategories:
		return "categories"
	case ElementBirthday:
		return "birthday"
	case ElementCompany:
		return "company"
	case ElementLogo:
		return "logo"
	case ElementPhoto:
		return "photo"
	default:
		return "unknown"
	}
}

// Multiple reports whether the element may be added more than once.
func (e Element) Multiple() bool {
	switch e {
	case ElementEmail, ElementAddress, ElementPhoneNumber, ElementURL, ElementLabel:
		return true
	default:
		return false
	}
}
