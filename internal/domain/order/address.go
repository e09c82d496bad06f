package order

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AddressKind tags which variant an Address carries.
type AddressKind int

const (
	// AddressEmpty means no address was provided.
	AddressEmpty AddressKind = iota
	// AddressRaw means the backend sent a free-form address string.
	AddressRaw
	// AddressParsed means the backend sent structured address fields.
	AddressParsed
)

// AddressFields are the structured fields of a parsed address.
type AddressFields struct {
	City      string `json:"city,omitempty"`
	Street    string `json:"street,omitempty"`
	Building  string `json:"building,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Comment   string `json:"comment,omitempty"`
}

// Address is a tagged variant over the two shapes the backend emits for
// delivery addresses: a raw string or a pre-parsed object. The variant is
// decided once, at decode time; render sites only ever call Display.
type Address struct {
	kind   AddressKind
	raw    string
	fields AddressFields
}

// RawAddress creates an Address holding a free-form string.
func RawAddress(s string) Address {
	s = strings.TrimSpace(s)
	if s == "" {
		return Address{}
	}
	return Address{kind: AddressRaw, raw: s}
}

// ParsedAddress creates an Address holding structured fields.
func ParsedAddress(fields AddressFields) Address {
	return Address{kind: AddressParsed, fields: fields}
}

// Kind returns the variant tag.
func (a Address) Kind() AddressKind {
	return a.kind
}

// IsEmpty reports whether no address was provided.
func (a Address) IsEmpty() bool {
	return a.kind == AddressEmpty
}

// Raw returns the free-form string for the AddressRaw variant.
func (a Address) Raw() string {
	return a.raw
}

// Fields returns the structured fields for the AddressParsed variant.
func (a Address) Fields() AddressFields {
	return a.fields
}

// Display returns the single line shown to users for any variant.
func (a Address) Display() string {
	switch a.kind {
	case AddressRaw:
		return a.raw
	case AddressParsed:
		parts := make([]string, 0, 5)
		if a.fields.City != "" {
			parts = append(parts, a.fields.City)
		}
		if a.fields.Street != "" {
			parts = append(parts, a.fields.Street)
		}
		if a.fields.Building != "" {
			parts = append(parts, a.fields.Building)
		}
		if a.fields.Apartment != "" {
			parts = append(parts, "apt. "+a.fields.Apartment)
		}
		if a.fields.Comment != "" {
			parts = append(parts, "("+a.fields.Comment+")")
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// MarshalJSON implements json.Marshaler, re-emitting the original shape.
func (a Address) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AddressRaw:
		return json.Marshal(a.raw)
	case AddressParsed:
		return json.Marshal(a.fields)
	}
	return []byte("null"), nil
}

// UnmarshalJSON implements json.Unmarshaler. This is the single place where
// the backend's address-shape polymorphism is resolved: a JSON string becomes
// the raw variant, an object becomes the parsed variant, and null or an
// unparseable value degrades to the empty address.
func (a *Address) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*a = Address{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("address: invalid string form: %w", err)
		}
		// Some backends double-encode: a JSON object serialized into the
		// string field. Decode it once more when it looks like one.
		inner := strings.TrimSpace(s)
		if strings.HasPrefix(inner, "{") {
			var fields AddressFields
			if err := json.Unmarshal([]byte(inner), &fields); err == nil {
				*a = ParsedAddress(fields)
				return nil
			}
		}
		*a = RawAddress(s)
		return nil
	case '{':
		var fields AddressFields
		if err := json.Unmarshal(data, &fields); err != nil {
			return fmt.Errorf("address: invalid object form: %w", err)
		}
		*a = ParsedAddress(fields)
		return nil
	}

	// Unknown shape: degrade silently rather than failing the whole order.
	*a = Address{}
	return nil
}
