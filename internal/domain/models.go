// package domain/models.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RecordType identifica o tipo de registro de uma linha MANAD.
type RecordType string

// Registros MANAD tratados pelo relatório.
const (
	RecordK150 RecordType = "K150"
	RecordK300 RecordType = "K300"
)

// TransactionRecord representa um registro K300 (lançamento por rubrica).
type TransactionRecord struct {
	CategoryCode string
	Amount       decimal.Decimal
	SubjectID    string
	PeriodRaw    string
}

// CategoryDescription representa um registro K150 (descrição da rubrica).
type CategoryDescription struct {
	CategoryCode string
	Description  string
}

// Period é a competência (mês/ano) de um lançamento. O valor zero é a
// competência inválida, usada para agrupar datas que não puderam ser lidas.
type Period struct {
	Year  int
	Month time.Month
	Valid bool
}

// NewPeriod cria uma competência válida.
func NewPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month, Valid: true}
}

// Before reports whether p sorts before o. Invalid periods sort last.
func (p Period) Before(o Period) bool {
	switch {
	case !p.Valid:
		return false
	case !o.Valid:
		return true
	case p.Year != o.Year:
		return p.Year < o.Year
	default:
		return p.Month < o.Month
	}
}

// String returns the period as YYYY-MM, or "" for the invalid period.
func (p Period) String() string {
	if !p.Valid {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// MarshalJSON renders the invalid period as null.
func (p Period) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + p.String() + `"`), nil
}

// AggregatedRow é o resumo de uma combinação (competência, rubrica).
type AggregatedRow struct {
	Period               Period
	CategoryCode         string
	TotalAmount          decimal.Decimal
	DistinctSubjectCount int
}

// ReportRow representa uma linha do relatório final.
type ReportRow struct {
	Period               Period           `json:"period"`
	CategoryCode         int64            `json:"category_code"`
	CategoryDescription  *string          `json:"category_description"`
	DistinctSubjectCount int              `json:"distinct_subject_count"`
	InformedValue        *decimal.Decimal `json:"informed_value"`
	TotalAmount          decimal.Decimal  `json:"total_amount"`
}
