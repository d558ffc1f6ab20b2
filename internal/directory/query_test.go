package directory

import (
	"testing"

	"github.com/zarlcorp/zdir/internal/user"
)

func queryFixture() []user.User {
	return []user.User{
		{
			ID:      "1",
			Name:    "Alice",
			Email:   "alice@acme.io",
			Website: "acme.io",
			Company: user.Company{Name: "Acme Inc", CatchPhrase: "anvils delivered", BS: "gravity solutions"},
			Address: user.Address{City: "Gwenborough", Zipcode: "92998-3874"},
		},
		{
			ID:      "2",
			Name:    "Bob",
			Email:   "bob@zeta.dev",
			Company: user.Company{Name: "Zeta"},
			Address: user.Address{Full: "12 Harbor Way, Portsmouth"},
		},
		{
			ID:   "local-1",
			Name: "carol", // lowercase on purpose
		},
	}
}

func names(users []user.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

func TestQueryEmptyTermReturnsAllSorted(t *testing.T) {
	got := Query(queryFixture(), "", SortByName, Ascending)

	want := []string{"Alice", "Bob", "carol"}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i, n := range names(got) {
		if n != want[i] {
			t.Errorf("position %d: got %q, want %q", i, n, want[i])
		}
	}
}

func TestQueryCaseInsensitive(t *testing.T) {
	got := Query(queryFixture(), "ACME", SortByName, Ascending)

	if len(got) != 1 || got[0].Name != "Alice" {
		t.Errorf("searching ACME should match Acme Inc, got %v", names(got))
	}
}

func TestQuerySearchableFields(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"name", "alice", []string{"Alice"}},
		{"email", "zeta.dev", []string{"Bob"}},
		{"company catch phrase", "anvils", []string{"Alice"}},
		{"company bs", "gravity", []string{"Alice"}},
		{"address city", "gwenborough", []string{"Alice"}},
		{"address zipcode", "92998", []string{"Alice"}},
		{"address full", "harbor", []string{"Bob"}},
		{"website", "acme.io", []string{"Alice"}},
		{"no match", "wombat", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := names(Query(queryFixture(), tt.term, SortByName, Ascending))
			if len(got) != len(tt.want) {
				t.Fatalf("term %q: got %v, want %v", tt.term, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("term %q: got %v, want %v", tt.term, got, tt.want)
				}
			}
		})
	}
}

func TestQueryMissingFieldsNeverMatchNeverPanic(t *testing.T) {
	// carol has no email, website, company, or address fields at all
	got := Query(queryFixture(), "dev", SortByName, Ascending)

	for _, u := range got {
		if u.Name == "carol" {
			t.Error("record without matching fields should be excluded")
		}
	}
}

func TestQuerySortByCompanyMissingFirst(t *testing.T) {
	got := Query(queryFixture(), "", SortByCompany, Ascending)

	// carol has no company name, so she sorts before Acme and Zeta
	want := []string{"carol", "Alice", "Bob"}
	for i, n := range names(got) {
		if n != want[i] {
			t.Fatalf("ascending company order: got %v, want %v", names(got), want)
		}
	}
}

func TestQueryDescendingFlipsOrder(t *testing.T) {
	got := Query(queryFixture(), "", SortByName, Descending)

	want := []string{"carol", "Bob", "Alice"}
	for i, n := range names(got) {
		if n != want[i] {
			t.Fatalf("descending name order: got %v, want %v", names(got), want)
		}
	}
}

func TestQueryDoesNotMutateInput(t *testing.T) {
	in := queryFixture()

	_ = Query(in, "", SortByName, Descending)

	if in[0].Name != "Alice" || in[2].Name != "carol" {
		t.Errorf("input order mutated: %v", names(in))
	}
}

func TestParseSortKey(t *testing.T) {
	tests := []struct {
		in      string
		want    SortKey
		wantErr bool
	}{
		{"name", SortByName, false},
		{"", SortByName, false},
		{"company", SortByCompany, false},
		{"company.name", SortByCompany, false},
		{"COMPANY", SortByCompany, false},
		{"height", SortByName, true},
	}

	for _, tt := range tests {
		got, err := ParseSortKey(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortKey(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseSortKey(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSortOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    SortOrder
		wantErr bool
	}{
		{"asc", Ascending, false},
		{"", Ascending, false},
		{"desc", Descending, false},
		{"DESC", Descending, false},
		{"sideways", Ascending, true},
	}

	for _, tt := range tests {
		got, err := ParseSortOrder(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSortOrder(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseSortOrder(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
