package ingredient

import (
	"regexp"
	"strings"
)

// quantityPattern matches a leading numeric quantity like "2" or "1.5".
var quantityPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*`)

// unitWords is the fixed vocabulary of unit words and abbreviations, checked in
// order so the singular form wins over its plural.
var unitWords = []string{
	"cup", "cups",
	"tbsp", "tablespoon", "tablespoons",
	"tsp", "teaspoon", "teaspoons",
	"pound", "pounds", "lb", "lbs",
	"ounce", "ounces", "oz",
	"gram", "grams", "g",
	"kilogram", "kilograms", "kg",
	"ml", "milliliter", "milliliters",
	"l", "liter", "liters",
}

var unitStripper = regexp.MustCompile(`(?i)\b(` + strings.Join(unitWords, "|") + `)\b`)

var whitespace = regexp.MustCompile(`\s+`)

// Parsed is the best-effort decomposition of one free-text ingredient line.
type Parsed struct {
	Quantity string
	Unit     string
	Name     string
}

// ParseLine extracts quantity, unit and name from a free-text ingredient line
// such as "2 cups flour". It never fails: missing parts fall back to "1" and
// "unit", and whatever text remains after stripping becomes the name.
func ParseLine(line string) Parsed {
	return Parsed{
		Quantity: extractQuantity(line),
		Unit:     extractUnit(line),
		Name:     extractName(line),
	}
}

func extractQuantity(line string) string {
	if m := quantityPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return "1"
}

func extractUnit(line string) string {
	lower := strings.ToLower(line)
	for _, unit := range unitWords {
		// Short abbreviations like "g" or "l" must stand alone so they
		// don't fire inside words such as "salt" or "garlic".
		if len(unit) <= 2 {
			if shortUnitPatterns[unit].MatchString(lower) {
				return unit
			}
			continue
		}
		if strings.Contains(lower, unit) {
			return unit
		}
	}
	return "unit"
}

var shortUnitPatterns = func() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp)
	for _, unit := range unitWords {
		if len(unit) <= 2 {
			patterns[unit] = regexp.MustCompile(`\b` + unit + `\b`)
		}
	}
	return patterns
}()

func extractName(line string) string {
	name := quantityPattern.ReplaceAllString(line, "")
	name = unitStripper.ReplaceAllString(name, "")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), " ")
	return name
}
