package calculator

import (
	"cmp"
	"slices"
)

// Payment is a recorded transfer that settles part of a group debt.
type Payment struct {
	From   string // Who paid (debtor settling up)
	To     string // Who received (creditor being paid)
	Amount int64
}

// GroupResult holds net positions across every bill of a group.
type GroupResult struct {
	People                 []string
	Balances               map[string]*Balance
	SettlementInstructions []SettlementInstruction
}

// party is one side of the settlement matching.
type party struct {
	name   string
	amount int64
}

// Settle computes the transfers that bring every net balance (Spent - Paid) to zero.
//
// Algorithm:
//   - Debtors have net > 0, creditors have net < 0; zero nets take no part.
//   - Both lists are sorted by amount, largest first, ties kept in people order.
//   - Greedy matching: the current debtor pays the current creditor
//     min(owed, due) and whichever side reaches zero is dropped.
//
// Each step exhausts at least one party, so at most len(people)-1 transfers are produced.
func Settle(people []string, balances map[string]*Balance) []SettlementInstruction {
	var debtors, creditors []party
	seen := make(map[string]bool, len(people))
	for _, name := range people {
		b, ok := balances[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true

		switch net := b.Net(); {
		case net > 0:
			debtors = append(debtors, party{name: name, amount: net})
		case net < 0:
			creditors = append(creditors, party{name: name, amount: -net})
		}
	}

	largestFirst := func(a, b party) int { return cmp.Compare(b.amount, a.amount) }
	slices.SortStableFunc(debtors, largestFirst)
	slices.SortStableFunc(creditors, largestFirst)

	var instructions []SettlementInstruction
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor, creditor := &debtors[i], &creditors[j]

		amount := min(debtor.amount, creditor.amount)
		instructions = append(instructions, SettlementInstruction{
			From:   debtor.name,
			To:     creditor.name,
			Amount: amount,
		})

		debtor.amount -= amount
		creditor.amount -= amount
		if debtor.amount == 0 {
			i++
		}
		if creditor.amount == 0 {
			j++
		}
	}

	return instructions
}

// GroupBalances aggregates many bills and the payments recorded between members.
//
//   - For each bill: every person's paid and spent totals from ComputeBill are added.
//   - For each payment: the sender's paid total grows and the receiver's spent total
//     grows, so a payment moves both parties toward zero.
//   - Settle then simplifies what remains.
//
// Members come first in the person order, followed by anyone seen only on a bill or payment.
// Per-item breakdowns are not carried over.
func GroupBalances(members []string, bills []Input, payments []Payment) GroupResult {
	l := newLedger(members)

	for _, bill := range bills {
		res := ComputeBill(bill)
		for _, name := range res.People {
			b := res.Balances[name]
			total := l.get(name)
			total.Paid += b.Paid
			total.Spent += b.Spent
		}
	}

	for _, p := range payments {
		if p.From == "" || p.To == "" || p.From == p.To || p.Amount <= 0 {
			continue
		}
		l.get(p.From).Paid += p.Amount
		l.get(p.To).Spent += p.Amount
	}

	return GroupResult{
		People:                 l.order,
		Balances:               l.balances,
		SettlementInstructions: Settle(l.order, l.balances),
	}
}
