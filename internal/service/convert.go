package service

import (
	"fmt"

	"github.com/mmynk/patungan/internal/calculator"
	"github.com/mmynk/patungan/internal/models"
	"github.com/mmynk/patungan/pkg/api"
)

func expensesFromAPI(in []api.Expense) []models.Expense {
	out := make([]models.Expense, len(in))
	for i, e := range in {
		out[i] = models.Expense{
			ID:     e.ID,
			Item:   e.Item,
			Amount: e.Amount,
			Who:    e.Who,
			PaidBy: e.PaidBy,
		}
	}
	return out
}

func additionalExpensesFromAPI(in []api.AdditionalExpense) []models.AdditionalExpense {
	out := make([]models.AdditionalExpense, len(in))
	for i, a := range in {
		out[i] = models.AdditionalExpense{
			ID:        a.ID,
			Name:      a.Name,
			Amount:    a.Amount,
			Who:       a.Who,
			PaidBy:    a.PaidBy,
			SplitType: calculator.SplitType(a.SplitType),
		}
	}
	return out
}

func billToAPI(b *models.Bill) *api.Bill {
	out := &api.Bill{
		ID:                 b.ID,
		GroupID:            b.GroupID,
		Title:              b.Title,
		People:             b.People,
		Expenses:           make([]api.Expense, len(b.Expenses)),
		AdditionalExpenses: make([]api.AdditionalExpense, len(b.AdditionalExpenses)),
		Total:              b.Total(),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	for i, e := range b.Expenses {
		out.Expenses[i] = api.Expense{
			ID:     e.ID,
			Item:   e.Item,
			Amount: e.Amount,
			Who:    e.Who,
			PaidBy: e.PaidBy,
		}
	}
	for i, a := range b.AdditionalExpenses {
		out.AdditionalExpenses[i] = api.AdditionalExpense{
			ID:        a.ID,
			Name:      a.Name,
			Amount:    a.Amount,
			Who:       a.Who,
			PaidBy:    a.PaidBy,
			SplitType: string(a.SplitType),
		}
	}
	return out
}

func billSummaryToAPI(b *models.Bill) *api.BillSummary {
	return &api.BillSummary{
		BillID:      b.ID,
		GroupID:     b.GroupID,
		Title:       b.Title,
		Total:       b.Total(),
		PeopleCount: int32(len(b.People)),
		CreatedAt:   b.CreatedAt,
	}
}

func balancesToAPI(in map[string]*calculator.Balance) map[string]*api.Balance {
	out := make(map[string]*api.Balance, len(in))
	for name, b := range in {
		bal := &api.Balance{
			Paid:  b.Paid,
			Spent: b.Spent,
			Net:   b.Net(),
		}
		for _, item := range b.Items {
			bal.Items = append(bal.Items, api.BillItem{
				ExpenseID:    item.ExpenseID,
				Name:         item.Name,
				Share:        item.Share,
				IsAdditional: item.IsAdditional,
				Method:       item.Method,
			})
		}
		out[name] = bal
	}
	return out
}

func settlementToAPI(in []calculator.SettlementInstruction) []api.SettlementInstruction {
	out := make([]api.SettlementInstruction, len(in))
	for i, s := range in {
		out[i] = api.SettlementInstruction{From: s.From, To: s.To, Amount: s.Amount}
	}
	return out
}

// SummaryFromResult converts a calculator result into its wire form.
func SummaryFromResult(res calculator.Result) *api.Summary {
	return &api.Summary{
		People:                 res.People,
		TotalSpent:             res.TotalSpent,
		Balances:               balancesToAPI(res.Balances),
		Badges:                 res.Badges,
		SettlementInstructions: settlementToAPI(res.SettlementInstructions),
		Excluded:               res.Excluded,
	}
}

func groupToAPI(g *models.Group) *api.Group {
	return &api.Group{
		ID:        g.ID,
		Name:      g.Name,
		Members:   g.Members,
		CreatedAt: g.CreatedAt,
	}
}

func paymentToAPI(p *models.Payment) *api.Payment {
	return &api.Payment{
		ID:        p.ID,
		GroupID:   p.GroupID,
		From:      p.From,
		To:        p.To,
		Amount:    p.Amount,
		Note:      p.Note,
		CreatedAt: p.CreatedAt,
	}
}

func userToAPI(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

// CalculatorInput converts a stateless calculate request into calculator input.
// Items without an ID get positional ones (e1, e2, ... and a1, a2, ...) so
// excluded items can still be reported.
func CalculatorInput(req *api.CalculateRequest) calculator.Input {
	bill := &models.Bill{
		People:             req.People,
		Expenses:           expensesFromAPI(req.Expenses),
		AdditionalExpenses: additionalExpensesFromAPI(req.AdditionalExpenses),
	}
	for i := range bill.Expenses {
		if bill.Expenses[i].ID == "" {
			bill.Expenses[i].ID = fmt.Sprintf("e%d", i+1)
		}
	}
	for i := range bill.AdditionalExpenses {
		if bill.AdditionalExpenses[i].ID == "" {
			bill.AdditionalExpenses[i].ID = fmt.Sprintf("a%d", i+1)
		}
	}
	return bill.Input()
}
