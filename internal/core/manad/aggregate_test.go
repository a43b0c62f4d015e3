package manad

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"manad-service/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(code, amount, subject, period string) domain.TransactionRecord {
	return domain.TransactionRecord{
		CategoryCode: code,
		Amount:       decimal.RequireFromString(amount),
		SubjectID:    subject,
		PeriodRaw:    period,
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("012024")
	require.NoError(t, err)
	assert.Equal(t, domain.NewPeriod(2024, time.January), p)

	p, err = ParsePeriod("122023")
	require.NoError(t, err)
	assert.Equal(t, domain.NewPeriod(2023, time.December), p)

	for _, raw := range []string{"999999", "132024", "002024", "12024", "0120245", "01/2024", ""} {
		p, err := ParsePeriod(raw)
		assert.ErrorIs(t, err, ErrInvalidPeriod, raw)
		assert.False(t, p.Valid, raw)
	}
}

func TestAggregate_SingleRecord(t *testing.T) {
	rows, err := Aggregate([]domain.TransactionRecord{tx("100", "1500.50", "0001", "012024")})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, domain.NewPeriod(2024, time.January), rows[0].Period)
	assert.Equal(t, "100", rows[0].CategoryCode)
	assert.True(t, rows[0].TotalAmount.Equal(decimal.RequireFromString("1500.50")))
	assert.Equal(t, 1, rows[0].DistinctSubjectCount)
}

func TestAggregate_SumsAndCountsDistinctSubjects(t *testing.T) {
	rows, err := Aggregate([]domain.TransactionRecord{
		tx("100", "100.00", "0001", "012024"),
		tx("100", "200.00", "0002", "012024"),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "300", rows[0].TotalAmount.String())
	assert.Equal(t, 2, rows[0].DistinctSubjectCount)

	rows, err = Aggregate([]domain.TransactionRecord{
		tx("100", "100.00", "0001", "012024"),
		tx("100", "50.00", "0001", "012024"),
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "150", rows[0].TotalAmount.String())
	assert.Equal(t, 1, rows[0].DistinctSubjectCount)
}

func TestAggregate_InvalidPeriodBucket(t *testing.T) {
	rows, err := Aggregate([]domain.TransactionRecord{
		tx("100", "10.00", "0001", "999999"),
		tx("100", "5.00", "0002", "999999"),
		tx("100", "1.00", "0001", "012024"),
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.True(t, rows[0].Period.Valid)
	assert.Equal(t, "1", rows[0].TotalAmount.String())

	assert.False(t, rows[1].Period.Valid, "invalid bucket sorts after valid periods")
	assert.Equal(t, "15", rows[1].TotalAmount.String())
	assert.Equal(t, 2, rows[1].DistinctSubjectCount)
}

func TestAggregate_OrderTwoPeriodsTwoCodes(t *testing.T) {
	rows, err := Aggregate([]domain.TransactionRecord{
		tx("200", "1", "a", "022024"),
		tx("100", "2", "a", "022024"),
		tx("200", "3", "a", "012024"),
		tx("100", "4", "a", "012024"),
	})
	require.NoError(t, err)

	var got []string
	for _, r := range rows {
		got = append(got, fmt.Sprintf("%s@%s=%s", r.CategoryCode, r.Period, r.TotalAmount))
	}
	assert.Equal(t, []string{
		"100@2024-01=4",
		"100@2024-02=2",
		"200@2024-01=3",
		"200@2024-02=1",
	}, got)
}

func TestAggregate_NumericOrderNotLexicographic(t *testing.T) {
	rows, err := Aggregate([]domain.TransactionRecord{
		tx("1000", "1", "a", "012024"),
		tx("20", "1", "a", "012024"),
		tx("0003", "1", "a", "012024"),
	})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "0003", rows[0].CategoryCode)
	assert.Equal(t, "20", rows[1].CategoryCode)
	assert.Equal(t, "1000", rows[2].CategoryCode)
}

func TestAggregate_NonNumericCodeFailsRun(t *testing.T) {
	_, err := Aggregate([]domain.TransactionRecord{
		tx("100", "1", "a", "012024"),
		tx("ABC", "1", "a", "012024"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonNumericCategoryCode))

	var nonNumeric *NonNumericCategoryCodeError
	require.True(t, errors.As(err, &nonNumeric))
	assert.Equal(t, "ABC", nonNumeric.Code)
}

func TestAggregate_Empty(t *testing.T) {
	rows, err := Aggregate(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestAggregate_ConservationAndDeterminism(t *testing.T) {
	codes := []string{"10", "0020", "300", "4"}
	periods := []string{"012024", "022024", "999999", "122023"}

	var records []domain.TransactionRecord
	raw := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for i := 0; i < 200; i++ {
		code := codes[i%len(codes)]
		amount := decimal.New(int64(i*37%1000+1), -2)
		records = append(records, domain.TransactionRecord{
			CategoryCode: code,
			Amount:       amount,
			SubjectID:    fmt.Sprintf("%04d", i%7),
			PeriodRaw:    periods[(i/3)%len(periods)],
		})
		raw[code] = raw[code].Add(amount)
	}

	rows, err := Aggregate(records)
	require.NoError(t, err)

	totals := make(map[string]decimal.Decimal)
	for _, r := range rows {
		totals[r.CategoryCode] = totals[r.CategoryCode].Add(r.TotalAmount)
	}
	for code, sum := range raw {
		assert.True(t, sum.Equal(totals[code]), "conservation for %s: raw %s, aggregated %s", code, sum, totals[code])
	}

	for _, rec := range records {
		p, _ := ParsePeriod(rec.PeriodRaw)
		counts[rec.CategoryCode+"@"+p.String()]++
	}
	for _, r := range rows {
		n := counts[r.CategoryCode+"@"+r.Period.String()]
		assert.LessOrEqual(t, r.DistinctSubjectCount, n)
		assert.Positive(t, r.DistinctSubjectCount)
	}

	for i := 1; i < len(rows); i++ {
		prev, _ := CategoryNumber(rows[i-1].CategoryCode)
		cur, _ := CategoryNumber(rows[i].CategoryCode)
		assert.LessOrEqual(t, prev, cur, "rows sorted by numeric code")
	}

	again, err := Aggregate(records)
	require.NoError(t, err)
	assert.Equal(t, rows, again)
}
