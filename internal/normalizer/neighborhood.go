package normalizer

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"crimeprep/internal/models"
	"crimeprep/pkg/utils"
)

// neighborhoodAliases maps lower-cased, dash-folded spellings to the canonical
// display name. Title-casing alone would turn these into "Spring Hill-city View".
// Keys must match exactly; inner whitespace is not collapsed before lookup.
var neighborhoodAliases = map[string]string{
	"spring hill city view": "Spring Hill-City View",
	"spring hill-city view": "Spring Hill-City View",

	"lincoln lemington belmar": "Lincoln-Lemington-Belmar",
	"lincoln-lemington-belmar": "Lincoln-Lemington-Belmar",
}

var (
	dashReplacer = strings.NewReplacer(
		"\u2012", "-", // figure dash
		"\u2013", "-", // en dash
		"\u2014", "-", // em dash
		"\u2015", "-", // horizontal bar
	)
	hyphenSpacing = regexp.MustCompile(`[\s\p{Zs}]*-[\s\p{Zs}]*`)
)

// Name is the result of normalizing a neighborhood cell. Non-text cells are
// passed through untouched in Raw with Canonical set to false.
type Name struct {
	Raw       models.Cell
	Value     string
	Canonical bool
}

// String returns the canonical value, or the raw cell rendered as text.
func (n Name) String() string {
	if n.Canonical {
		return n.Value
	}

	return n.Raw.String()
}

// Normalize canonicalizes a neighborhood cell.
func Normalize(c models.Cell) Name {
	if c.Kind != models.CellText {
		return Name{Raw: c}
	}

	return Name{Raw: c, Value: NormalizeName(c.Text), Canonical: true}
}

// NormalizeName canonicalizes free-text neighborhood spelling: NFKC, dash
// folding, hyphen spacing, alias lookup, then per-word capitalization.
func NormalizeName(raw string) string {
	n := strings.TrimSpace(norm.NFKC.String(raw))
	n = dashReplacer.Replace(n)
	n = hyphenSpacing.ReplaceAllString(n, "-")

	if canonical, ok := neighborhoodAliases[strings.ToLower(n)]; ok {
		return canonical
	}

	return utils.CapitalizeWords(n)
}

// Aliases returns a copy of the alias table.
func Aliases() map[string]string {
	out := make(map[string]string, len(neighborhoodAliases))
	for k, v := range neighborhoodAliases {
		out[k] = v
	}

	return out
}
