package manad

import (
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("valor vazio")

// ParseAmount converte um valor no formato brasileiro ("1.500,50") para decimal.
// Com vírgula presente, os pontos são separadores de milhar; sem vírgula o
// valor é lido como está.
func ParseAmount(val string) (decimal.Decimal, error) {
	s := strings.TrimSpace(val)
	if s == "" {
		return decimal.Zero, errEmptyAmount
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// CategoryNumber reads a rubric code as an integer. Leading zeros are allowed.
func CategoryNumber(code string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(code), 10, 64)
	if err != nil {
		return 0, &NonNumericCategoryCodeError{Code: code, Err: err}
	}
	return n, nil
}

// canonicalCode é a forma inteira do código, sem zeros à esquerda.
func canonicalCode(code string) (string, bool) {
	n, err := CategoryNumber(code)
	if err != nil {
		return "", false
	}
	return strconv.FormatInt(n, 10), true
}
