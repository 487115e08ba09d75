package catalog

import "strings"

var romanianFold = strings.NewReplacer(
	"ă", "a", "â", "a", "î", "i",
	"ș", "s", "ş", "s", "ț", "t", "ţ", "t",
)

// Slugify lowercases, folds Romanian diacritics and collapses every other
// run of characters into a single dash.
func Slugify(name string) string {
	s := romanianFold.Replace(strings.ToLower(name))

	var b strings.Builder
	dash := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
