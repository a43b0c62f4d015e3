package manad

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"manad-service/internal/domain"

	"golang.org/x/text/encoding/charmap"
)

const (
	fieldSeparator = "|"
	maxLineSize    = 1024 * 1024
)

// layoutField names one positional field of a record.
type layoutField struct {
	index int
	name  string
}

// recordLayout declara as posições de campo de um tipo de registro MANAD.
type recordLayout struct {
	record domain.RecordType
	fields []layoutField
}

// K300: REG|CNPJ/CEI|IND_FL|IND_RUBR|COD_REG_TRAB|DT_COMP|COD_RUBR|VLR_RUBR|...
var k300Layout = recordLayout{
	record: domain.RecordK300,
	fields: []layoutField{
		{index: 4, name: "COD_REG_TRAB"},
		{index: 5, name: "DT_COMP"},
		{index: 6, name: "COD_RUBR"},
		{index: 7, name: "VLR_RUBR"},
	},
}

// K150: REG|CNPJ/CEI|DT_INC_ALT|COD_RUBRICA|DESC_RUBRICA
var k150Layout = recordLayout{
	record: domain.RecordK150,
	fields: []layoutField{
		{index: 3, name: "COD_RUBRICA"},
		{index: 4, name: "DESC_RUBRICA"},
	},
}

// split quebra a linha e garante que todos os campos do layout existem.
func (l recordLayout) split(line string) ([]string, error) {
	parts := strings.Split(line, fieldSeparator)
	for _, f := range l.fields {
		if f.index >= len(parts) {
			return nil, &MalformedLineError{
				Record: string(l.record),
				Field:  f.name,
				Err:    fmt.Errorf("campo ausente (esperado na posição %d, linha tem %d campos)", f.index, len(parts)),
			}
		}
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

// recordTypeOf devolve o token anterior ao primeiro separador.
func recordTypeOf(line string) domain.RecordType {
	head, _, _ := strings.Cut(line, fieldSeparator)
	return domain.RecordType(strings.TrimSpace(head))
}

// ParseTransaction processa um registro K300 (lançamento por rubrica).
func ParseTransaction(line string) (domain.TransactionRecord, error) {
	parts, err := k300Layout.split(line)
	if err != nil {
		return domain.TransactionRecord{}, err
	}

	amount, err := ParseAmount(parts[7])
	if err != nil {
		return domain.TransactionRecord{}, &MalformedLineError{
			Record: string(domain.RecordK300),
			Field:  "VLR_RUBR",
			Value:  parts[7],
			Err:    err,
		}
	}

	return domain.TransactionRecord{
		CategoryCode: parts[6],
		Amount:       amount,
		SubjectID:    parts[4],
		PeriodRaw:    parts[5],
	}, nil
}

// ParseDescription processa um registro K150 (descrição da rubrica).
func ParseDescription(line string) (domain.CategoryDescription, error) {
	parts, err := k150Layout.split(line)
	if err != nil {
		return domain.CategoryDescription{}, err
	}
	return domain.CategoryDescription{
		CategoryCode: parts[3],
		Description:  parts[4],
	}, nil
}

// Load lê um arquivo MANAD (ISO-8859-1) e acumula os registros K300 e K150.
// Qualquer outro registro é ignorado. O primeiro erro de parse interrompe a leitura.
func Load(manadFile io.Reader) (*Store, error) {
	store := NewStore()

	decoder := charmap.ISO8859_1.NewDecoder()
	scanner := bufio.NewScanner(decoder.Reader(manadFile))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch recordTypeOf(line) {
		case domain.RecordK300:
			record, err := ParseTransaction(line)
			if err != nil {
				return nil, withLine(err, lineNumber)
			}
			store.AddTransaction(record)
		case domain.RecordK150:
			record, err := ParseDescription(line)
			if err != nil {
				return nil, withLine(err, lineNumber)
			}
			store.SetDescription(record)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler arquivo MANAD: %w", err)
	}
	return store, nil
}

func withLine(err error, line int) error {
	var malformed *MalformedLineError
	if errors.As(err, &malformed) {
		malformed.Line = line
		return malformed
	}
	return fmt.Errorf("linha %d: %w", line, err)
}
