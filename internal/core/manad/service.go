// package manad/service.go
package manad

import (
	"fmt"
	"io"

	"manad-service/internal/domain"
)

// Service define a interface para a geração de relatórios a partir de arquivos MANAD.
type Service interface {
	GenerateReport(manadFile io.Reader) ([]byte, error)
	Summarize(manadFile io.Reader) ([]domain.ReportRow, error)
}

type service struct{}

// NewService cria uma nova instância do serviço de relatórios MANAD.
func NewService() Service {
	return &service{}
}

// GenerateReport processa o arquivo e devolve a planilha .xlsx do relatório.
func (s *service) GenerateReport(manadFile io.Reader) ([]byte, error) {
	rows, err := s.Summarize(manadFile)
	if err != nil {
		return nil, err
	}

	data, err := RenderReport(rows)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar relatório: %w", err)
	}
	return data, nil
}

// Summarize processa o arquivo e devolve as linhas do relatório.
func (s *service) Summarize(manadFile io.Reader) ([]domain.ReportRow, error) {
	store, err := Load(manadFile)
	if err != nil {
		return nil, fmt.Errorf("falha ao processar arquivo MANAD: %w", err)
	}

	aggregated, err := Aggregate(store.Transactions())
	if err != nil {
		return nil, fmt.Errorf("falha ao consolidar lançamentos: %w", err)
	}

	rows, err := FormatReport(aggregated, store.Descriptions())
	if err != nil {
		return nil, fmt.Errorf("falha ao montar relatório: %w", err)
	}
	return rows, nil
}
