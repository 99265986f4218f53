// Package contact describes a contact card as data, loadable from YAML or
// JSON, and applies it to a vcard.Builder.
package contact

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/cyp0633/libvcard/vcard"
)

var (
	// ErrNoName is returned by Validate when a contact has nothing to name it by.
	ErrNoName = errors.New("contact needs a name, full name or company")
	// ErrLocalMedia is returned by RemoteMediaOnly for a logo or photo that is
	// not an http or https URL.
	ErrLocalMedia = errors.New("media source must be an http or https URL")
)

// Name is the structured name of a contact.
type Name struct {
	Last       string `yaml:"last,omitempty" json:"last,omitempty"`
	First      string `yaml:"first,omitempty" json:"first,omitempty"`
	Middle     string `yaml:"middle,omitempty" json:"middle,omitempty"`
	Additional string `yaml:"additional,omitempty" json:"additional,omitempty"`
	Prefix     string `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Suffix     string `yaml:"suffix,omitempty" json:"suffix,omitempty"`
}

// Email is an e-mail address with its types, e.g. PREF, WORK.
type Email struct {
	Address string   `yaml:"address" json:"address"`
	Types   []string `yaml:"types,omitempty" json:"types,omitempty"`
}

// Phone is a telephone number with its types, e.g. WORK, VOICE.
type Phone struct {
	Number string   `yaml:"number" json:"number"`
	Types  []string `yaml:"types,omitempty" json:"types,omitempty"`
}

// Address is a postal address. Without types it is typed WORK;POSTAL.
type Address struct {
	POBox    string   `yaml:"pobox,omitempty" json:"pobox,omitempty"`
	Extended string   `yaml:"extended,omitempty" json:"extended,omitempty"`
	Street   string   `yaml:"street,omitempty" json:"street,omitempty"`
	City     string   `yaml:"city,omitempty" json:"city,omitempty"`
	Region   string   `yaml:"region,omitempty" json:"region,omitempty"`
	Zip      string   `yaml:"zip,omitempty" json:"zip,omitempty"`
	Country  string   `yaml:"country,omitempty" json:"country,omitempty"`
	Types    []string `yaml:"types,omitempty" json:"types,omitempty"`
}

// URL is a web address with its types.
type URL struct {
	URL   string   `yaml:"url" json:"url"`
	Types []string `yaml:"types,omitempty" json:"types,omitempty"`
}

// Label is a delivery label with its types.
type Label struct {
	Text  string   `yaml:"text" json:"text"`
	Types []string `yaml:"types,omitempty" json:"types,omitempty"`
}

// Media references a logo or photo by URL or local path.
type Media struct {
	Source  string `yaml:"source" json:"source"`
	Include bool   `yaml:"include,omitempty" json:"include,omitempty"`
}

// Contact is the data of one contact card.
type Contact struct {
	ID         string    `yaml:"id,omitempty" json:"id,omitempty"`
	Name       *Name     `yaml:"name,omitempty" json:"name,omitempty"`
	FullName   string    `yaml:"fullName,omitempty" json:"fullName,omitempty"`
	Company    string    `yaml:"company,omitempty" json:"company,omitempty"`
	Department string    `yaml:"department,omitempty" json:"department,omitempty"`
	Title      string    `yaml:"title,omitempty" json:"title,omitempty"`
	Role       string    `yaml:"role,omitempty" json:"role,omitempty"`
	Birthday   string    `yaml:"birthday,omitempty" json:"birthday,omitempty"`
	Note       string    `yaml:"note,omitempty" json:"note,omitempty"`
	Categories []string  `yaml:"categories,omitempty" json:"categories,omitempty"`
	Emails     []Email   `yaml:"emails,omitempty" json:"emails,omitempty"`
	Phones     []Phone   `yaml:"phones,omitempty" json:"phones,omitempty"`
	Addresses  []Address `yaml:"addresses,omitempty" json:"addresses,omitempty"`
	URLs       []URL     `yaml:"urls,omitempty" json:"urls,omitempty"`
	Labels     []Label   `yaml:"labels,omitempty" json:"labels,omitempty"`
	Logo       *Media    `yaml:"logo,omitempty" json:"logo,omitempty"`
	Photo      *Media    `yaml:"photo,omitempty" json:"photo,omitempty"`
	// Filename overrides the name derived from the name or company.
	Filename string `yaml:"filename,omitempty" json:"filename,omitempty"`
}

// Validate checks that the contact can be named.
func (c *Contact) Validate() error {
	if c.FullName == "" && c.Company == "" && (c.Name == nil || *c.Name == Name{}) {
		return ErrNoName
	}
	return nil
}

// RemoteMediaOnly checks that the logo and photo, if any, are fetched over
// HTTP rather than read from the local filesystem.
func (c *Contact) RemoteMediaOnly() error {
	for _, m := range []*Media{c.Logo, c.Photo} {
		if m == nil || m.Source == "" {
			continue
		}
		u, err := url.Parse(m.Source)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrLocalMedia, m.Source)
		}
	}
	return nil
}

// Apply adds every field of the contact to b. The full name goes first so an
// explicit FN wins over the one derived from the name. Apply stops at the
// first error.
func (c *Contact) Apply(ctx context.Context, b *vcard.Builder) error {
	if c.FullName != "" {
		if err := b.AddFullName(c.FullName); err != nil {
			return err
		}
	}
	if c.Name != nil && *c.Name != (Name{}) {
		if err := b.AddName(vcard.Name(*c.Name)); err != nil {
			return err
		}
	}
	if c.Company != "" {
		if err := b.AddCompany(c.Company, c.Department); err != nil {
			return err
		}
	}
	if c.Title != "" {
		if err := b.AddJobTitle(c.Title); err != nil {
			return err
		}
	}
	if c.Role != "" {
		if err := b.AddRole(c.Role); err != nil {
			return err
		}
	}
	if c.Birthday != "" {
		if err := b.AddBirthday(c.Birthday); err != nil {
			return err
		}
	}
	for _, e := range c.Emails {
		if err := b.AddEmail(e.Address, e.Types...); err != nil {
			return err
		}
	}
	for _, p := range c.Phones {
		if err := b.AddPhoneNumber(p.Number, p.Types...); err != nil {
			return err
		}
	}
	for _, a := range c.Addresses {
		addr := vcard.Address{
			Name:     a.POBox,
			Extended: a.Extended,
			Street:   a.Street,
			City:     a.City,
			Region:   a.Region,
			Zip:      a.Zip,
			Country:  a.Country,
		}
		if err := b.AddAddress(addr, a.Types...); err != nil {
			return err
		}
	}
	for _, l := range c.Labels {
		if err := b.AddLabel(l.Text, l.Types...); err != nil {
			return err
		}
	}
	for _, u := range c.URLs {
		if err := b.AddURL(u.URL, u.Types...); err != nil {
			return err
		}
	}
	if len(c.Categories) > 0 {
		if err := b.AddCategories(c.Categories); err != nil {
			return err
		}
	}
	if c.Note != "" {
		if err := b.AddNote(c.Note); err != nil {
			return err
		}
	}
	if c.Logo != nil && c.Logo.Source != "" {
		if err := b.AddLogo(ctx, c.Logo.Source, c.Logo.Include); err != nil {
			return err
		}
	}
	if c.Photo != nil && c.Photo.Source != "" {
		if err := b.AddPhoto(ctx, c.Photo.Source, c.Photo.Include); err != nil {
			return err
		}
	}
	switch {
	case c.Filename != "":
		b.SetFilename(c.Filename, true, "")
	case c.FullName != "" && !b.Defined(vcard.ElementName) && !b.Defined(vcard.ElementCompany):
		// nothing else named the document
		b.SetFilename(c.FullName, true, "")
	}
	return nil
}

// Build validates the contact and applies it to a new builder.
func (c *Contact) Build(ctx context.Context, opts ...vcard.Option) (*vcard.Builder, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	b := vcard.New(opts...)
	if err := c.Apply(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to build contact: %w", err)
	}
	return b, nil
}
