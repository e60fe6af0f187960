// Package calculator computes per-person balances, badges and settlement
// transfers for a shared bill.
//
// Amounts are whole currency units (Rupiah) held in int64. Every split is
// allocated with largest-remainder rounding, so the shares of an item always
// add up to the item amount and sum(paid) == sum(spent) holds exactly.
package calculator

// SplitType selects how an additional expense is divided among its participants.
type SplitType string

const (
	SplitEqually        SplitType = "equally"
	SplitProportionally SplitType = "proportionally"
)

// Methods recorded on additional-expense bill items.
const (
	MethodEqual        = "equal"
	MethodProportional = "prop"
)

// Expense is a line item shared equally by the people in Who and fronted by PaidBy.
type Expense struct {
	ID     string
	Item   string
	Amount int64
	Who    []string
	PaidBy string
}

// AdditionalExpense is a tax, service charge, discount or other bill-wide cost.
// Amount is negative for discounts.
type AdditionalExpense struct {
	ID        string
	Name      string
	Amount    int64
	Who       []string
	PaidBy    string
	SplitType SplitType
}

// BillItem is one person's resolved share of an expense or additional expense.
type BillItem struct {
	ExpenseID    string
	Name         string
	Share        int64
	IsAdditional bool
	Method       string // empty for base expenses
}

// Balance is what one person fronted and consumed on a bill.
type Balance struct {
	Paid  int64
	Spent int64
	Items []BillItem
}

// Net returns Spent - Paid. Positive means the person owes the group.
func (b *Balance) Net() int64 {
	return b.Spent - b.Paid
}

// SettlementInstruction tells From to pay To the given amount.
type SettlementInstruction struct {
	From   string
	To     string
	Amount int64
}

// Input is everything needed to compute a bill.
type Input struct {
	People             []string
	Expenses           []Expense
	AdditionalExpenses []AdditionalExpense
}

// Result is the outcome of ComputeBill.
type Result struct {
	// People is the input order, extended with any name that appears only on an item.
	People                 []string
	TotalSpent             int64
	Balances               map[string]*Balance
	Badges                 map[string][]string
	SettlementInstructions []SettlementInstruction
	// Excluded holds the IDs of incomplete items (no payer or no participants).
	Excluded []string
}

// ComputeBill accumulates balances for every person, then derives badges and
// the settlement transfers. Incomplete items are skipped, never reported as errors.
func ComputeBill(in Input) Result {
	l := newLedger(in.People)
	var (
		total    int64
		excluded []string
	)

	// Subtotals from base expenses only; these weight proportional splits.
	subtotals := make(map[string]int64)

	for _, e := range in.Expenses {
		who := participants(e.Who)
		if e.PaidBy == "" || len(who) == 0 {
			excluded = append(excluded, e.ID)
			continue
		}

		l.pay(e.PaidBy, e.Amount)
		shares := splitEqually(e.Amount, len(who))
		for i, name := range who {
			l.spend(name, BillItem{ExpenseID: e.ID, Name: e.Item, Share: shares[i]})
			subtotals[name] += shares[i]
		}
		total += e.Amount
	}

	for _, a := range in.AdditionalExpenses {
		who := participants(a.Who)
		if a.PaidBy == "" || len(who) == 0 {
			excluded = append(excluded, a.ID)
			continue
		}

		l.pay(a.PaidBy, a.Amount)
		shares, method := splitAdditional(a, who, subtotals)
		for i, name := range who {
			l.spend(name, BillItem{
				ExpenseID:    a.ID,
				Name:         a.Name,
				Share:        shares[i],
				IsAdditional: true,
				Method:       method,
			})
		}
		total += a.Amount
	}

	return Result{
		People:                 l.order,
		TotalSpent:             total,
		Balances:               l.balances,
		Badges:                 AssignBadges(l.order, l.balances),
		SettlementInstructions: Settle(l.order, l.balances),
		Excluded:               excluded,
	}
}

// splitAdditional resolves the shares of an additional expense. A proportional
// split with no base spend among who falls back to an equal split.
func splitAdditional(a AdditionalExpense, who []string, subtotals map[string]int64) ([]int64, string) {
	if a.SplitType == SplitProportionally {
		weights := make([]int64, len(who))
		for i, name := range who {
			weights[i] = subtotals[name]
		}
		if shares := splitByWeight(a.Amount, weights); shares != nil {
			return shares, MethodProportional
		}
	}
	return splitEqually(a.Amount, len(who)), MethodEqual
}

// participants drops empty and repeated names, keeping first-seen order.
func participants(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// ledger tracks balances in person order.
type ledger struct {
	order    []string
	balances map[string]*Balance
}

func newLedger(people []string) *ledger {
	l := &ledger{balances: make(map[string]*Balance, len(people))}
	for _, p := range participants(people) {
		l.get(p)
	}
	return l
}

func (l *ledger) get(name string) *Balance {
	b, ok := l.balances[name]
	if !ok {
		b = &Balance{}
		l.balances[name] = b
		l.order = append(l.order, name)
	}
	return b
}

func (l *ledger) pay(name string, amount int64) {
	l.get(name).Paid += amount
}

func (l *ledger) spend(name string, item BillItem) {
	b := l.get(name)
	b.Spent += item.Share
	b.Items = append(b.Items, item)
}
