package normalizer

import "crimeprep/internal/models"

// categorySeverity buckets NIBRS offense categories. Anything missing here is Minor.
var categorySeverity = map[string]models.Severity{
	"Homicide Offenses":    models.SeverityViolent,
	"Assault Offenses":     models.SeverityViolent,
	"Robbery":              models.SeverityViolent,
	"Kidnapping/Abduction": models.SeverityViolent,
	"Human Trafficking":    models.SeverityViolent,

	"Weapon Law Violations":        models.SeveritySerious,
	"Drug/Narcotic Offenses":       models.SeveritySerious,
	"Arson":                        models.SeveritySerious,
	"Burglary/Breaking & Entering": models.SeveritySerious,
	"Motor Vehicle Theft":          models.SeveritySerious,

	"Larceny/Theft Offenses":                   models.SeverityProperty,
	"Fraud Offenses":                           models.SeverityProperty,
	"Destruction/Damage/Vandalism of Property": models.SeverityProperty,

	"All other Offenses":   models.SeverityMinor,
	"Not NIBRS Reportable": models.SeverityMinor,
}

// SeverityOf maps an offense category to its severity.
// The second result is false when the category is not in the table.
func SeverityOf(category string) (models.Severity, bool) {
	sev, ok := categorySeverity[category]
	if !ok {
		return models.SeverityMinor, false
	}

	return sev, true
}
