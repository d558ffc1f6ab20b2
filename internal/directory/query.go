package directory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zarlcorp/zdir/internal/user"
)

// SortKey selects the comparator field for the listing.
type SortKey int

const (
	// SortByName orders by the user's name.
	SortByName SortKey = iota
	// SortByCompany orders by company name; users without one sort first
	// in ascending order.
	SortByCompany
)

// String returns the config/CLI spelling of the key.
func (k SortKey) String() string {
	if k == SortByCompany {
		return "company"
	}
	return "name"
}

// SortOrder flips the comparator direction.
type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

// String returns the config/CLI spelling of the order.
func (o SortOrder) String() string {
	if o == Descending {
		return "desc"
	}
	return "asc"
}

// ParseSortKey maps a config or flag value to a SortKey.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(s) {
	case "", "name":
		return SortByName, nil
	case "company", "company.name":
		return SortByCompany, nil
	}
	return SortByName, fmt.Errorf("unknown sort key %q", s)
}

// ParseSortOrder maps a config or flag value to a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(s) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("unknown sort order %q", s)
}

// Query filters and sorts the reconciled collection for display. A non-empty
// term keeps records where any searchable field contains it, case
// insensitively; absent optional fields simply never match. The sort always
// applies, even with an empty term. The input slice and its records are
// never modified.
func Query(users []user.User, term string, key SortKey, order SortOrder) []user.User {
	out := make([]user.User, 0, len(users))

	if term == "" {
		out = append(out, users...)
	} else {
		needle := strings.ToLower(term)
		for _, u := range users {
			if matches(u, needle) {
				out = append(out, u)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := sortValue(out[i], key), sortValue(out[j], key)
		if order == Descending {
			return a > b
		}
		return a < b
	})

	return out
}

// matches reports whether any searchable field contains the lowercase needle.
func matches(u user.User, needle string) bool {
	fields := []string{
		u.Name,
		u.Email,
		u.Phone,
		u.Website,
		u.Username,
		u.Company.Name,
		u.Company.CatchPhrase,
		u.Company.BS,
		u.Address.Street,
		u.Address.Suite,
		u.Address.City,
		u.Address.Zipcode,
		u.Address.Full,
	}

	for _, f := range fields {
		if f == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func sortValue(u user.User, key SortKey) string {
	if key == SortByCompany {
		return strings.ToLower(u.Company.Name)
	}
	return strings.ToLower(u.Name)
}
