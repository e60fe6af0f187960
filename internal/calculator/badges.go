package calculator

// Badge labels.
const (
	BadgeTopPayer   = "Si Paling Traktir" // paid the most
	BadgeTopSpender = "Si Paling Sultan"  // spent the most
	BadgeFrugalest  = "Si Paling Irit"    // spent the least, among those who spent anything
)

// AssignBadges labels the biggest payer, the biggest spender and the smallest
// non-zero spender. Nobody earns a badge for a zero value; ties go to the
// person who comes first in people.
func AssignBadges(people []string, balances map[string]*Balance) map[string][]string {
	var topPayer, topSpender, frugalest string
	var maxPaid, maxSpent, minSpent int64

	for _, name := range people {
		b, ok := balances[name]
		if !ok {
			continue
		}
		if b.Paid > maxPaid {
			topPayer, maxPaid = name, b.Paid
		}
		if b.Spent > maxSpent {
			topSpender, maxSpent = name, b.Spent
		}
		if b.Spent > 0 && (frugalest == "" || b.Spent < minSpent) {
			frugalest, minSpent = name, b.Spent
		}
	}

	badges := make(map[string][]string)
	for _, award := range []struct {
		name, label string
	}{
		{topPayer, BadgeTopPayer},
		{topSpender, BadgeTopSpender},
		{frugalest, BadgeFrugalest},
	} {
		if award.name != "" {
			badges[award.name] = append(badges[award.name], award.label)
		}
	}
	return badges
}
