package manad

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"manad-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

const (
	reportSheet = "Sheet1"
	// formato interno do Excel "#,##0.00"
	moneyNumFmt = 4
)

// ReportHeader são os títulos das colunas do relatório, na ordem de ReportRow.
var ReportHeader = []string{
	"Mês/Ano",
	"Rubrica",
	"Nome da Rubrica",
	"Nº Empregados/Contribuintes",
	"Valor Informado",
	"Valor Calculado",
}

// descriptionIndex resolve a descrição de uma rubrica. A busca é feita primeiro
// pelo código original e, se não houver, pela forma inteira do código, para que
// "0100" no K300 encontre "100" no K150 e vice-versa.
type descriptionIndex struct {
	exact     map[string]string
	canonical map[string]string
}

func newDescriptionIndex(descriptions map[string]string) descriptionIndex {
	codes := make([]string, 0, len(descriptions))
	for code := range descriptions {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	canonical := make(map[string]string, len(descriptions))
	for _, code := range codes {
		if key, ok := canonicalCode(code); ok {
			if _, taken := canonical[key]; !taken {
				canonical[key] = descriptions[code]
			}
		}
	}
	return descriptionIndex{exact: descriptions, canonical: canonical}
}

func (idx descriptionIndex) lookup(code string) (string, bool) {
	if desc, ok := idx.exact[code]; ok {
		return desc, true
	}
	if key, ok := canonicalCode(code); ok {
		desc, found := idx.canonical[key]
		return desc, found
	}
	return "", false
}

// FormatReport junta as descrições das rubricas às linhas agregadas e monta
// as linhas do relatório. A coluna "Valor Informado" fica sempre vazia.
func FormatReport(rows []domain.AggregatedRow, descriptions map[string]string) ([]domain.ReportRow, error) {
	idx := newDescriptionIndex(descriptions)

	report := make([]domain.ReportRow, 0, len(rows))
	for _, row := range rows {
		code, err := CategoryNumber(row.CategoryCode)
		if err != nil {
			return nil, err
		}

		var description *string
		if desc, ok := idx.lookup(row.CategoryCode); ok {
			description = &desc
		}

		report = append(report, domain.ReportRow{
			Period:               row.Period,
			CategoryCode:         code,
			CategoryDescription:  description,
			DistinctSubjectCount: row.DistinctSubjectCount,
			InformedValue:        nil,
			TotalAmount:          row.TotalAmount,
		})
	}
	return report, nil
}

// RenderReport gera a planilha .xlsx do relatório em memória.
func RenderReport(rows []domain.ReportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar estilo do cabeçalho: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: moneyNumFmt})
	if err != nil {
		return nil, fmt.Errorf("erro ao criar estilo monetário: %w", err)
	}

	header := make([]interface{}, len(ReportHeader))
	for i, h := range ReportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(reportSheet, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		var description interface{}
		if row.CategoryDescription != nil {
			description = *row.CategoryDescription
		}
		var period interface{}
		if row.Period.Valid {
			period = row.Period.String()
		}

		values := []interface{}{
			period,
			row.CategoryCode,
			description,
			row.DistinctSubjectCount,
			nil,
			row.TotalAmount.InexactFloat64(),
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha %d do relatório: %w", i+2, err)
		}
	}

	if len(rows) > 0 {
		last := fmt.Sprintf("F%d", len(rows)+1)
		if err := f.SetCellStyle(reportSheet, "E2", last, moneyStyle); err != nil {
			return nil, err
		}
	}
	if err := f.SetColWidth(reportSheet, "C", "C", 40); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(reportSheet, "D", "D", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteReportFile grava o relatório em path, substituindo um arquivo existente.
// O conteúdo vai primeiro para um arquivo temporário no mesmo diretório, de modo
// que nunca fica um relatório parcial no destino.
func WriteReportFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".rel-*.tmp")
	if err != nil {
		return fmt.Errorf("falha ao criar arquivo temporário: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("falha ao escrever relatório: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("falha ao escrever relatório: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("falha ao ajustar permissões do relatório: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("falha ao gravar relatório %s: %w", path, err)
	}
	return nil
}
