// Package user defines the directory's user record and its validation rules.
// Records come from two origins: the remote users API (integer ids) and the
// local add flow (string ids with the "local-" prefix).
package user

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LocalIDPrefix marks ids assigned to locally created users. Remote ids are
// small integers, so the prefix guarantees the two namespaces never collide.
const LocalIDPrefix = "local-"

// ID is a user identifier in canonical string form. The remote API encodes
// ids as JSON numbers while locally created users carry strings; ID accepts
// both on the wire and compares as a plain string.
type ID string

// UnmarshalJSON accepts a JSON number, string, or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("user id: %w", err)
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes numeric ids back as JSON numbers so remote-origin
// records round-trip in their original shape.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.Atoi(string(id)); err == nil && id != "" {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// IsLocal reports whether the id was assigned by the local add flow.
func (id ID) IsLocal() bool {
	return strings.HasPrefix(string(id), LocalIDPrefix)
}

// Company is a user's employer details. It is a value struct so every record
// carries the substructure even when all leaf fields are blank.
type Company struct {
	Name        string `json:"name"`
	CatchPhrase string `json:"catchPhrase"`
	BS          string `json:"bs"`
}

// Geo holds coordinates as strings, matching the remote API's encoding.
type Geo struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// Address is a user's postal address. Full holds the pre-joined address
// string for records created through the single-field form mode.
type Address struct {
	Street  string `json:"street"`
	Suite   string `json:"suite"`
	City    string `json:"city"`
	Zipcode string `json:"zipcode"`
	Geo     Geo    `json:"geo"`
	Full    string `json:"full,omitempty"`
}

// User is a directory record from either origin.
type User struct {
	ID       ID      `json:"id,omitempty"`
	Name     string  `json:"name"`
	Username string  `json:"username,omitempty"`
	Email    string  `json:"email,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	Website  string  `json:"website,omitempty"`
	Company  Company `json:"company"`
	Address  Address `json:"address"`
}

// Normalized returns a copy with the substructure defaults the add path
// guarantees: geo coordinates are never blank for stored records.
func (u User) Normalized() User {
	if u.Address.Geo.Lat == "" {
		u.Address.Geo.Lat = "0"
	}
	if u.Address.Geo.Lng == "" {
		u.Address.Geo.Lng = "0"
	}
	return u
}

// FullAddress joins the structured address fields, falling back to the
// pre-joined Full field when no structured fields are set.
func (u User) FullAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.Address.Street, u.Address.Suite, u.Address.City, u.Address.Zipcode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return u.Address.Full
	}
	return strings.Join(parts, ", ")
}
