package extenso

import (
	"strconv"
	"time"

	"github.com/warp/rent-engine/engine"
)

// Cardinal spells a whole number, as used in contract clauses:
// "todo dia 5 (cinco)", "pelo prazo de 12 (doze) meses".
// Negative numbers are prefixed with "menos".
func Cardinal(n int64) string {
	switch {
	case n == 0:
		return "zero"
	case n < 0:
		// -n overflows for math.MinInt64; format the digits instead.
		return "menos " + spellDigits(strconv.FormatInt(n, 10)[1:])
	default:
		return spellDigits(strconv.FormatInt(n, 10))
	}
}

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// MonthName is the lower-case pt-BR month name.
func MonthName(m time.Month) string {
	if m < time.January || m > time.December {
		return ""
	}
	return months[m-1]
}

// LongDate formats a day the way documents are dated: "19 de outubro de 2026".
func LongDate(d engine.Date) string {
	return strconv.Itoa(d.Day()) + " de " + MonthName(d.Month()) + " de " + strconv.Itoa(d.Year())
}
