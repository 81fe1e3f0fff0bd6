package importer

import "testing"

func TestResolveKey(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Town Hall", "town hall"},
		{"collapses whitespace", "  Town   Hall  ", "town hall"},
		{"strips station suffix", "Town Hall Station", "town hall"},
		{"strips corridor suffix", "North Shore Corridor", "north shore"},
		{"strips precinct suffix", "Central Precinct", "central"},
		{"strips stacked suffixes", "Central Station Precinct", "central"},
		{"alias mt colah", "Mt Colah", "mount colah"},
		{"alias circular key", "Circular Key", "circular quay"},
		{"alias then suffix", "Mt Colah Station", "mount colah"},
		{"alias after stacked suffixes", "Mt Colah Station Precinct", "mount colah"},
		{"north sydney needs no alias", "  North   Sydney ", "north sydney"},
		{"placeholder empty", "", ""},
		{"placeholder nan", "nan", ""},
		{"placeholder none", "None", ""},
		{"placeholder test", "Test", ""},
		{"placeholder test site", "Test Site", ""},
		{"bare suffix word survives", "Station", "station"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ResolveKey(c.in); got != c.want {
				t.Fatalf("ResolveKey(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestResolveKeyIdempotent(t *testing.T) {
	inputs := []string{"Town Hall Station", "Mt Colah", "Circular Key", "North Shore Corridor"}
	for _, in := range inputs {
		once := ResolveKey(in)
		twice := ResolveKey(once)
		if once != twice {
			t.Errorf("ResolveKey not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestResolveKeyCaseAndWhitespaceInsensitive(t *testing.T) {
	variants := []string{"Town Hall", "town hall", "TOWN  HALL", " town\thall "}
	want := ResolveKey(variants[0])
	for _, v := range variants[1:] {
		if got := ResolveKey(v); got != want {
			t.Errorf("ResolveKey(%q) = %q, want %q", v, got, want)
		}
	}
}

func TestCleanSiteName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Town Hall Station", "Town Hall"},
		{"Circular Quay - 121738", "Circular Quay"},
		{"Circular Quay Station - 121738", "Circular Quay"},
		{"Town Hall", "Town Hall"},
		{"  Town Hall  ", "Town Hall"},
	}
	for _, c := range cases {
		if got := CleanSiteName(c.in); got != c.want {
			t.Errorf("CleanSiteName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
