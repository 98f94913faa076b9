package calculator

import (
	"strconv"
	"strings"

	"github.com/warp/rent-engine/engine"
	"github.com/warp/rent-engine/extenso"
	"github.com/warp/rent-engine/lease"
)

// =============================================================================
// CLAUSES - Figures written the way contracts and receipts print them
// =============================================================================

// FormatBRL renders amount with Brazilian separators: "R$ 1.234,10".
func FormatBRL(amount engine.Money) string {
	fixed := amount.StringFixed(2)
	point := strings.IndexByte(fixed, '.')
	whole, cents := fixed[:point], fixed[point+1:]

	var b strings.Builder
	b.WriteString("R$ ")
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(cents)
	return b.String()
}

// AmountClause is the figure followed by its words:
// "R$ 1.234,10 (mil e duzentos e trinta e quatro reais e dez centavos)".
func (c *Calculator) AmountClause(amount engine.Money) string {
	return FormatBRL(amount) + " (" + c.Spell(amount) + ")"
}

// PaymentDayClause is "todo dia 5 (cinco) de cada mês".
func (c *Calculator) PaymentDayClause(t lease.Terms) string {
	return "todo dia " + numberClause(int64(t.PaymentDay)) + " de cada mês"
}

// DurationClause is "12 (doze) meses, de 1 de janeiro de 2025 a 1 de janeiro de 2026".
func (c *Calculator) DurationClause(t lease.Terms) string {
	months := t.DurationMonths()
	unit := "meses"
	if months == 1 {
		unit = "mês"
	}
	return numberClause(int64(months)) + " " + unit +
		", de " + extenso.LongDate(t.Period.Start) +
		" a " + extenso.LongDate(t.Period.End)
}

// ReceiptLine is the sentence printed on a rent receipt.
func (c *Calculator) ReceiptLine(tenant string, amount engine.Money, reference string) string {
	return "Recebi de " + tenant + " a importância de " + c.AmountClause(amount) +
		", referente a " + reference + "."
}

func numberClause(n int64) string {
	return strconv.FormatInt(n, 10) + " (" + extenso.Cardinal(n) + ")"
}
