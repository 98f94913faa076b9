/*
Package extenso writes amounts of money out in Brazilian Portuguese, as
required on contracts and receipts ("R$ 1.234,10 (mil e duzentos e trinta e
quatro reais e dez centavos)").

ALGORITHM:
  1. Render the amount with exactly two decimals and split the STRING at the
     point. Whole reais and centavos never go through float64, so 10.10 is
     ten cents and not 9.
  2. Cut the whole part into bands of three digits from the right: units,
     mil, milhão, bilhão, ... Each non-zero band is spelled 0-999 and followed
     by its magnitude word. Bands are joined with ", " and the last one with
     " e ".
  3. Inside a band: 100 is "cem", 101-199 "cento e ...", 10-19 come from the
     irregular table, decades join units with " e ".
  4. Agreement: "um real" / "dois reais", "um centavo" / "dois centavos",
     "um milhão" / "dois milhões", 1000 is "mil" (never "um mil"). Round
     millions take "de": "um milhão de reais".

MAGNITUDE:
  Named scales go up to decilhões (10^33). Anything larger is spelled by
  recursing on the part above the last named scale, so no input falls back
  to digits.

PRECONDITION:
  Amounts are engine.Money, which cannot be negative.
*/
package extenso

import (
	"strings"

	"github.com/warp/rent-engine/engine"
)

// =============================================================================
// WORD TABLES
// =============================================================================

var (
	units = [...]string{"", "um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove"}
	teens = [...]string{"dez", "onze", "doze", "treze", "quatorze", "quinze", "dezesseis", "dezessete", "dezoito", "dezenove"}
	tens  = [...]string{"", "", "vinte", "trinta", "quarenta", "cinquenta", "sessenta", "setenta", "oitenta", "noventa"}

	hundreds = [...]string{"", "cento", "duzentos", "trezentos", "quatrocentos", "quinhentos", "seiscentos", "setecentos", "oitocentos", "novecentos"}
)

// scale is the magnitude word of a band; index 0 (units) has none.
type scale struct {
	singular string
	plural   string
}

var scales = [...]scale{
	{"", ""},
	{"mil", "mil"},
	{"milhão", "milhões"},
	{"bilhão", "bilhões"},
	{"trilhão", "trilhões"},
	{"quatrilhão", "quatrilhões"},
	{"quintilhão", "quintilhões"},
	{"sextilhão", "sextilhões"},
	{"septilhão", "septilhões"},
	{"octilhão", "octilhões"},
	{"nonilhão", "nonilhões"},
	{"decilhão", "decilhões"},
}

// =============================================================================
// SPELL - Currency
// =============================================================================

// Spell writes amount out in words. Amounts with more than two decimals are
// rounded half away from zero to the centavo first.
func Spell(amount engine.Money) string {
	whole, cents := splitAmount(amount)

	reais := spellReais(whole)
	if cents == "" {
		return reais
	}
	return reais + " e " + cents
}

// SpellString parses caller text and spells it.
func SpellString(s string) (string, error) {
	amount, err := engine.ParseMoney(s)
	if err != nil {
		return "", err
	}
	return Spell(amount), nil
}

func splitAmount(amount engine.Money) (whole string, cents string) {
	fixed := amount.StringFixed(2)
	point := strings.IndexByte(fixed, '.')
	whole = strings.TrimLeft(fixed[:point], "0")
	cents = spellCentavos(fixed[point+1:])
	return whole, cents
}

func spellReais(digits string) string {
	if digits == "" {
		return "zero reais"
	}
	if digits == "1" {
		return "um real"
	}

	words := spellDigits(digits)
	if roundMillions(digits) {
		return words + " de reais"
	}
	return words + " reais"
}

func spellCentavos(two string) string {
	n := int(two[0]-'0')*10 + int(two[1]-'0')
	switch n {
	case 0:
		return ""
	case 1:
		return "um centavo"
	default:
		return spellBand(n) + " centavos"
	}
}

// roundMillions reports whether a number of at least one million has nothing
// below the millions band (1.000.000, 3.000.000.000, ...).
func roundMillions(digits string) bool {
	if len(digits) < 7 {
		return false
	}
	return strings.Trim(digits[len(digits)-6:], "0") == ""
}

// =============================================================================
// INTEGER DECOMPOSITION
// =============================================================================

// spellDigits spells a positive integer given as a decimal string without
// leading zeros.
func spellDigits(digits string) string {
	maxBand := len(scales) - 1
	if len(digits) > 3*len(scales) {
		split := len(digits) - 3*maxBand
		// Above the last named scale: spell the high part on its own and
		// let it count decilhões.
		high, low := digits[:split], strings.TrimLeft(digits[split:], "0")
		return joinBands(highPart(high, maxBand), bandsOf(low))
	}
	return joinBands(nil, bandsOf(digits))
}

// highPart counts decilhões. A high part that is itself a round number of
// decilhões takes "de": "mil decilhões de decilhões".
func highPart(high string, band int) []string {
	word := scales[band].plural
	if high == "1" {
		word = scales[band].singular
	}
	sep := " "
	if n := 3 * band; len(high) > n && strings.Trim(high[len(high)-n:], "0") == "" {
		sep = " de "
	}
	return []string{spellDigits(high) + sep + word}
}

// bandsOf returns the spelled non-zero bands, most significant first.
func bandsOf(digits string) []string {
	if digits == "" {
		return nil
	}

	var groups []int
	for end := len(digits); end > 0; end -= 3 {
		start := end - 3
		if start < 0 {
			start = 0
		}
		groups = append(groups, atoi(digits[start:end]))
	}

	var parts []string
	for band := len(groups) - 1; band >= 0; band-- {
		n := groups[band]
		if n == 0 {
			continue
		}
		parts = append(parts, bandWords(n, band))
	}
	return parts
}

func bandWords(n, band int) string {
	s := scales[band]
	switch {
	case band == 0:
		return spellBand(n)
	case n == 1 && band == 1:
		return s.singular
	case n == 1:
		return "um " + s.singular
	default:
		return spellBand(n) + " " + s.plural
	}
}

func joinBands(high, low []string) string {
	parts := append(high, low...)
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " e " + parts[len(parts)-1]
	}
}

// =============================================================================
// BAND - 0 to 999
// =============================================================================

func spellBand(n int) string {
	switch {
	case n == 0:
		return ""
	case n == 100:
		return "cem"
	case n >= 100:
		h, rest := n/100, n%100
		if rest == 0 {
			return hundreds[h]
		}
		return hundreds[h] + " e " + spellBand(rest)
	case n >= 20:
		d, u := n/10, n%10
		if u == 0 {
			return tens[d]
		}
		return tens[d] + " e " + units[u]
	case n >= 10:
		return teens[n-10]
	default:
		return units[n]
	}
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
