package importer

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
		nil_ bool
	}{
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"nan literal", "nan", "", true},
		{"NaN literal", "NaN", "", true},
		{"none literal", "None", "", true},
		{"zero", "0", "", true},
		{"zero float", "0.0", "", true},
		{"plain value", "Town Hall", "Town Hall", false},
		{"surrounding whitespace", "  Town Hall  ", "Town Hall", false},
		{"internal whitespace collapses", "Town \t Hall", "Town Hall", false},
		{"zero-ish but not zero", "0.5", "0.5", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Clean(c.in)
			if c.nil_ {
				if got != nil {
					t.Fatalf("Clean(%q) = %q, want nil", c.in, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("Clean(%q) = nil, want %q", c.in, c.want)
			}
			if *got != c.want {
				t.Fatalf("Clean(%q) = %q, want %q", c.in, *got, c.want)
			}
		})
	}
}

func TestCleanID(t *testing.T) {
	cases := []struct {
		in   string
		want string
		nil_ bool
	}{
		{"121738.0", "121738", false},
		{"121738", "121738", false},
		{" 121738.0 ", "121738", false},
		{"L-4421", "L-4421", false},
		{"", "", true},
		{"nan", "", true},
	}
	for _, c := range cases {
		got := CleanID(c.in)
		if c.nil_ {
			if got != nil {
				t.Errorf("CleanID(%q) = %q, want nil", c.in, *got)
			}
			continue
		}
		if got == nil || *got != c.want {
			t.Errorf("CleanID(%q) = %v, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanMonth(t *testing.T) {
	cases := []struct {
		in   string
		want int
		nil_ bool
	}{
		{"3", 3, false},
		{"3.0", 3, false},
		{"12", 12, false},
		{"0", 0, true},
		{"13", 0, true},
		{"March", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got := CleanMonth(c.in)
		if c.nil_ {
			if got != nil {
				t.Errorf("CleanMonth(%q) = %d, want nil", c.in, *got)
			}
			continue
		}
		if got == nil || *got != c.want {
			t.Errorf("CleanMonth(%q) = %v, want %d", c.in, got, c.want)
		}
	}
}

func TestCleanFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		nil_ bool
	}{
		{"1234.5", 1234.5, false},
		{"$1,234.50", 1234.5, false},
		{"not a number", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got := CleanFloat(c.in)
		if c.nil_ {
			if got != nil {
				t.Errorf("CleanFloat(%q) = %v, want nil", c.in, *got)
			}
			continue
		}
		if got == nil || *got != c.want {
			t.Errorf("CleanFloat(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestCleanDate(t *testing.T) {
	got := CleanDate("2024-06-15 00:00:00")
	if got == nil || *got != "2024-06-15" {
		t.Fatalf("CleanDate truncation = %v, want 2024-06-15", got)
	}
	if CleanDate("") != nil {
		t.Fatal("CleanDate of empty cell should be nil")
	}
}
