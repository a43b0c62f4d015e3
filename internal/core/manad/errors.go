package manad

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLine é a causa comum de todo MalformedLineError.
	ErrMalformedLine = errors.New("linha MANAD malformada")
	// ErrInvalidPeriod indica uma competência fora do formato MMAAAA.
	ErrInvalidPeriod = errors.New("competência inválida")
	// ErrNonNumericCategoryCode indica um código de rubrica que não é inteiro.
	ErrNonNumericCategoryCode = errors.New("código de rubrica não numérico")
)

// MalformedLineError describes a K300/K150 line that could not be parsed.
// Line is 1-based and zero when the error came from a single parse call.
type MalformedLineError struct {
	Line   int
	Record string
	Field  string
	Value  string
	Err    error
}

func (e *MalformedLineError) Error() string {
	msg := fmt.Sprintf("registro %s", e.Record)
	if e.Line > 0 {
		msg = fmt.Sprintf("linha %d: %s", e.Line, msg)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(", campo %s", e.Field)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap allows errors.Is(err, ErrMalformedLine) as well as matching the cause.
func (e *MalformedLineError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedLine}
	}
	return []error{ErrMalformedLine, e.Err}
}

// NonNumericCategoryCodeError is returned when a rubric code cannot be read
// as an integer for ordering and display.
type NonNumericCategoryCodeError struct {
	Code string
	Err  error
}

func (e *NonNumericCategoryCodeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrNonNumericCategoryCode, e.Code)
}

func (e *NonNumericCategoryCodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrNonNumericCategoryCode}
	}
	return []error{ErrNonNumericCategoryCode, e.Err}
}
