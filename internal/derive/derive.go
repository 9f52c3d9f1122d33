// Package derive holds the pure transforms that turn a user's raw
// transaction collection into view-ready data: list filtering, sorting
// and pagination, the income/expense summary, the per-category expense
// breakdown and the monthly time series. Everything here is
// deterministic over its inputs and touches no shared state.
package derive

import (
	"fmt"
	"sort"
	"time"

	"ahorrapp/internal/models"
)

const PageSize = 10

type TypeFilter string

const (
	FilterAll     TypeFilter = "all"
	FilterIncome  TypeFilter = "income"
	FilterExpense TypeFilter = "expense"
)

type SortKey string

const (
	SortByDate        SortKey = "date"
	SortByAmount      SortKey = "amount"
	SortByDescription SortKey = "description"
)

type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

type Summary struct {
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}

type CategoryTotal struct {
	Category string
	Total    float64
}

// MonthlySeries holds chronologically sorted "YYYY-MM" labels with
// parallel income and expense sums per month.
type MonthlySeries struct {
	Labels  []string
	Income  []float64
	Expense []float64
}

// Filter keeps transactions matching the selected day (when set) and the
// type filter. The input slice is not modified.
func Filter(txs []models.Transaction, typeFilter TypeFilter, day *time.Time) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if day != nil && !sameDay(tx.Date, *day) {
			continue
		}
		if typeFilter != FilterAll && typeFilter != "" && string(tx.Type) != string(typeFilter) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Sort returns a sorted copy. The sort is stable: ties keep their
// relative input order.
func Sort(txs []models.Transaction, key SortKey, order SortOrder) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)

	less := func(a, b models.Transaction) bool {
		switch key {
		case SortByAmount:
			return a.Amount < b.Amount
		case SortByDescription:
			return a.Description < b.Description
		default:
			return a.Date.Before(b.Date)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if order == OrderDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// Paginate slices into fixed-size pages. totalPages is ceil(n/PageSize),
// 0 for an empty input; the page number is clamped so out-of-range
// requests return the nearest valid page.
func Paginate(txs []models.Transaction, page int) (items []models.Transaction, totalPages int) {
	totalPages = (len(txs) + PageSize - 1) / PageSize
	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	if start >= len(txs) {
		return []models.Transaction{}, totalPages
	}
	end := start + PageSize
	if end > len(txs) {
		end = len(txs)
	}
	return txs[start:end], totalPages
}

// Summarize totals the full, unfiltered collection.
func Summarize(txs []models.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case models.TypeIncome:
			s.TotalIncome += tx.Amount
		case models.TypeExpense:
			s.TotalExpense += tx.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	return s
}

// ExpensesByCategory groups expense transactions by category. The result
// is sorted by category name so output is deterministic; consumers treat
// it as an unordered set of pairs.
func ExpensesByCategory(txs []models.Transaction) []CategoryTotal {
	byCategory := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		byCategory[tx.Category] += tx.Amount
	}

	out := make([]CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		out = append(out, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Monthly buckets all transactions by calendar month and emits the two
// parallel series the time-series chart consumes.
func Monthly(txs []models.Transaction) MonthlySeries {
	type bucket struct{ income, expense float64 }
	buckets := make(map[string]*bucket)

	for _, tx := range txs {
		key := fmt.Sprintf("%04d-%02d", tx.Date.Year(), int(tx.Date.Month()))
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		switch tx.Type {
		case models.TypeIncome:
			b.income += tx.Amount
		case models.TypeExpense:
			b.expense += tx.Amount
		}
	}

	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	series := MonthlySeries{
		Labels:  keys,
		Income:  make([]float64, len(keys)),
		Expense: make([]float64, len(keys)),
	}
	for i, key := range keys {
		series.Income[i] = buckets[key].income
		series.Expense[i] = buckets[key].expense
	}
	return series
}

// BudgetSpending sums expense amounts matching the budget's category
// inside [StartDate, EndDate], open-ended when EndDate is nil.
func BudgetSpending(b models.Budget, txs []models.Transaction) float64 {
	var spent float64
	for _, tx := range txs {
		if tx.Type != models.TypeExpense {
			continue
		}
		if tx.Category != b.Category {
			continue
		}
		if dayBefore(tx.Date, b.StartDate) {
			continue
		}
		if b.EndDate != nil && dayBefore(*b.EndDate, tx.Date) {
			continue
		}
		spent += tx.Amount
	}
	return spent
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// dayBefore compares calendar days, ignoring any time component.
func dayBefore(a, b time.Time) bool {
	if sameDay(a, b) {
		return false
	}
	return a.Before(b)
}
