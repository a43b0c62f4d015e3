package manad

import (
	"fmt"
	"sort"
	"time"

	"manad-service/internal/domain"

	"github.com/shopspring/decimal"
)

const periodLayout = "012006" // MMAAAA

// ParsePeriod converte DT_COMP (MMAAAA) em competência. Para valores fora do
// formato devolve a competência inválida junto com ErrInvalidPeriod.
func ParsePeriod(raw string) (domain.Period, error) {
	t, err := time.Parse(periodLayout, raw)
	if err != nil {
		return domain.Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, raw)
	}
	return domain.NewPeriod(t.Year(), t.Month()), nil
}

type groupKey struct {
	period domain.Period
	code   string
}

type group struct {
	total    decimal.Decimal
	subjects map[string]struct{}
}

// Aggregate agrupa os lançamentos por competência e rubrica, somando os valores
// e contando os trabalhadores distintos. O resultado sai ordenado pelo código
// da rubrica (numérico); empates mantêm a ordem de competência.
func Aggregate(transactions []domain.TransactionRecord) ([]domain.AggregatedRow, error) {
	type dated struct {
		period domain.Period
		record domain.TransactionRecord
	}

	entries := make([]dated, len(transactions))
	for i, t := range transactions {
		// invalid periods are kept in their own bucket
		period, _ := ParsePeriod(t.PeriodRaw)
		entries[i] = dated{period: period, record: t}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].period.Before(entries[j].period)
	})

	var order []groupKey
	groups := make(map[groupKey]*group)
	for _, e := range entries {
		key := groupKey{period: e.period, code: e.record.CategoryCode}
		g, ok := groups[key]
		if !ok {
			g = &group{total: decimal.Zero, subjects: make(map[string]struct{})}
			groups[key] = g
			order = append(order, key)
		}
		g.total = g.total.Add(e.record.Amount)
		g.subjects[e.record.SubjectID] = struct{}{}
	}

	rows := make([]domain.AggregatedRow, 0, len(order))
	numbers := make([]int64, 0, len(order))
	for _, key := range order {
		n, err := CategoryNumber(key.code)
		if err != nil {
			return nil, err
		}
		g := groups[key]
		rows = append(rows, domain.AggregatedRow{
			Period:               key.period,
			CategoryCode:         key.code,
			TotalAmount:          g.total,
			DistinctSubjectCount: len(g.subjects),
		})
		numbers = append(numbers, n)
	}

	sort.Stable(byCategory{rows: rows, numbers: numbers})
	return rows, nil
}

// byCategory ordena as linhas pelo código numérico, mantendo os números alinhados.
type byCategory struct {
	rows    []domain.AggregatedRow
	numbers []int64
}

func (b byCategory) Len() int           { return len(b.rows) }
func (b byCategory) Less(i, j int) bool { return b.numbers[i] < b.numbers[j] }
func (b byCategory) Swap(i, j int) {
	b.rows[i], b.rows[j] = b.rows[j], b.rows[i]
	b.numbers[i], b.numbers[j] = b.numbers[j], b.numbers[i]
}
