package core

import "sort"

// Summary holds the aggregates over a set of records.
type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// Summarize totals income and expense in one pass.
//
// Kind is matched ignoring case, and anything that is not Income counts as
// Expense. Save rejects unknown kinds, so the fallback only applies to rows
// written to the file by something else.
func Summarize(records []Record) Summary {
	var s Summary
	for _, r := range records {
		if classify(r.Kind) == Income {
			s.TotalIncome += r.Amount
		} else {
			s.TotalExpense += r.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// ByCategory sums amounts per category for records of the given kind, largest
// first and then by name. Unknown kinds are grouped with Expense as in Summarize.
func ByCategory(records []Record, kind Kind) []CategoryAmount {
	sums := make(map[string]float64)
	for _, r := range records {
		if classify(r.Kind) != kind {
			continue
		}
		sums[r.Category] += r.Amount
	}

	out := make([]CategoryAmount, 0, len(sums))
	for name, amount := range sums {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func classify(k Kind) Kind {
	if parsed, err := ParseKind(string(k)); err == nil {
		return parsed
	}
	return Expense
}
