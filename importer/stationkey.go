package importer

import (
	"regexp"
	"strings"
)

// Placeholder values seen in the Zone / Site Name columns that never refer to
// a real station.
var placeholderNames = map[string]bool{
	"":          true,
	"nan":       true,
	"none":      true,
	"test":      true,
	"test site": true,
}

// Known misspellings and variants across the tenancy schedules, applied
// between suffix-strip passes so "Mt Colah Station" still aliases once the
// suffix is gone.
var stationAliases = map[string]string{
	"mt colah":       "mount colah",
	"mt druitt":      "mount druitt",
	"mt kuring-gai":  "mount kuring-gai",
	"mt victoria":    "mount victoria",
	"circular key":   "circular quay",
	"st mary's":      "st marys",
	"central sydney": "central",
}

// Trailing words that vary between sources naming the same site ("Town Hall
// Station" vs "Town Hall").
var stationKeySuffixes = []string{" corridor", " precinct", " station"}

var (
	leaseSuffixRe   = regexp.MustCompile(`\s*-\s*\d+$`)
	stationSuffixRe = regexp.MustCompile(`\s+Station$`)
)

// ResolveKey maps a human-entered station or zone name to its canonical
// lowercase dedup key, "" when the name is bogus. The function is pure:
// case and whitespace differences never produce different keys, and applying
// it to an already-resolved key is a no-op.
func ResolveKey(name string) string {
	key := strings.ToLower(strings.Join(strings.Fields(name), " "))
	if placeholderNames[key] {
		return ""
	}
	// Aliasing and suffix stripping interleave until neither changes the key,
	// so a misspelled name keeps aliasing after its suffix is stripped.
	for {
		next := key
		if alias, ok := stationAliases[next]; ok {
			next = alias
		}
		for _, suffix := range stationKeySuffixes {
			next = strings.TrimSuffix(next, suffix)
		}
		next = strings.TrimSpace(next)
		if next == key {
			break
		}
		key = next
	}
	if placeholderNames[key] {
		return ""
	}
	return key
}

// CleanSiteName strips the decorations defect registers and the ICOMPLY list
// put on site names: a trailing " Station" and a trailing lease-id suffix
// like " - 121738". The two rules compose and either may apply alone.
func CleanSiteName(name string) string {
	s := strings.TrimSpace(name)
	s = leaseSuffixRe.ReplaceAllString(s, "")
	s = stationSuffixRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
