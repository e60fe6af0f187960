// Package receipt renders a computed bill as a plain-text receipt.
package receipt

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/patungan/internal/calculator"
)

const width = 40

var printer = message.NewPrinter(language.Indonesian)

// FormatRupiah formats an amount with Indonesian digit grouping, e.g. "Rp30.000".
func FormatRupiah(amount int64) string {
	if amount < 0 {
		return "-" + printer.Sprintf("Rp%d", -amount)
	}
	return printer.Sprintf("Rp%d", amount)
}

// Render writes the receipt for res to w: the total, each person's paid and
// spent amounts with their items, and the transfers that settle the bill.
func Render(w io.Writer, title string, res calculator.Result) error {
	var b strings.Builder

	if title != "" {
		b.WriteString(title + "\n")
	}
	b.WriteString(strings.Repeat("=", width) + "\n")
	line(&b, "Total", FormatRupiah(res.TotalSpent))

	for _, name := range res.People {
		bal := res.Balances[name]
		if bal == nil {
			continue
		}
		b.WriteString("\n")
		header := name
		if badges := res.Badges[name]; len(badges) > 0 {
			header += " [" + strings.Join(badges, ", ") + "]"
		}
		b.WriteString(header + "\n")
		line(&b, "  Paid", FormatRupiah(bal.Paid))
		line(&b, "  Spent", FormatRupiah(bal.Spent))
		for _, item := range bal.Items {
			label := "  - " + item.Name
			if item.Method != "" {
				label += " (" + item.Method + ")"
			}
			line(&b, label, FormatRupiah(item.Share))
		}
	}

	b.WriteString("\n" + strings.Repeat("-", width) + "\n")
	if len(res.SettlementInstructions) == 0 {
		b.WriteString("All settled.\n")
	}
	for _, s := range res.SettlementInstructions {
		line(&b, s.From+" -> "+s.To, FormatRupiah(s.Amount))
	}

	if len(res.Excluded) > 0 {
		fmt.Fprintf(&b, "\n%d incomplete item(s) skipped.\n", len(res.Excluded))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// line writes label and value on one row, right-aligning the value.
func line(b *strings.Builder, label, value string) {
	pad := width - len([]rune(label)) - len([]rune(value))
	if pad < 1 {
		pad = 1
	}
	b.WriteString(label + strings.Repeat(" ", pad) + value + "\n")
}
