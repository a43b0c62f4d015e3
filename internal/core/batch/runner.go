// Package batch processa todos os arquivos MANAD de um diretório, um por vez.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"manad-service/internal/console"
	"manad-service/internal/core/manad"

	"go.uber.org/zap"
)

const reportExt = ".xlsx"

// Options configura uma execução em lote.
type Options struct {
	InputDir     string
	OutputDir    string
	InputExt     string
	ReportPrefix string
}

// Failure registra um arquivo que não gerou relatório.
type Failure struct {
	Input string
	Err   error
}

// Summary is the outcome of a batch run.
type Summary struct {
	Reports  []string
	Failures []Failure
}

// Runner drives the report service over every input file of a directory.
type Runner struct {
	opts    Options
	service manad.Service
	logger  *zap.Logger
	out     *console.Printer
}

// NewRunner cria um Runner. logger e out podem ser nil.
func NewRunner(opts Options, service manad.Service, logger *zap.Logger, out *console.Printer) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if out == nil {
		out = console.Stdout()
	}
	return &Runner{opts: opts, service: service, logger: logger, out: out}
}

// Scan lista os arquivos de dir com a extensão ext (sem diferenciar maiúsculas),
// em ordem alfabética. Subdiretórios não são percorridos.
func Scan(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar diretório %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}

// ReportName derives "<prefix><base>.xlsx" from an input file name.
func ReportName(input, prefix string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return prefix + base + reportExt
}

// Run processa os arquivos do diretório de entrada. A falha de um arquivo é
// registrada e o lote segue para o próximo; só erros de listagem ou de criação
// do diretório de saída interrompem a execução. ctx é verificado entre arquivos.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	files, err := Scan(r.opts.InputDir, r.opts.InputExt)
	if err != nil {
		return summary, err
	}

	if err := os.MkdirAll(r.opts.OutputDir, 0o755); err != nil {
		return summary, fmt.Errorf("falha ao criar diretório de saída %s: %w", r.opts.OutputDir, err)
	}

	r.out.Header("Relatórios MANAD")
	if len(files) == 0 {
		r.out.Warn(fmt.Sprintf("Nenhum arquivo %s encontrado em %s", r.opts.InputExt, r.opts.InputDir))
		r.logger.Warn("nenhum arquivo encontrado",
			zap.String("input_dir", r.opts.InputDir),
			zap.String("ext", r.opts.InputExt))
		return summary, nil
	}

	for i, input := range files {
		if err := ctx.Err(); err != nil {
			r.logger.Warn("execução interrompida", zap.Int("restantes", len(files)-i))
			return summary, err
		}

		output := filepath.Join(r.opts.OutputDir, ReportName(input, r.opts.ReportPrefix))
		r.out.Step(i+1, len(files), fmt.Sprintf("Processando arquivo: %s", input))
		r.out.Info(fmt.Sprintf("Gerando relatório: %s", output))

		if err := r.processFile(input, output); err != nil {
			summary.Failures = append(summary.Failures, Failure{Input: input, Err: err})
			r.out.Failure(fmt.Sprintf("Erro em %s: %v", filepath.Base(input), err))
			r.logger.Error("falha ao gerar relatório",
				zap.String("file", input),
				zap.Error(err))
			continue
		}

		summary.Reports = append(summary.Reports, output)
		r.out.Success(fmt.Sprintf("Relatório gerado: %s", output))
		r.logger.Info("relatório gerado",
			zap.String("file", input),
			zap.String("report", output))
	}

	return summary, nil
}

func (r *Runner) processFile(input, output string) error {
	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("não foi possível abrir o arquivo: %w", err)
	}
	defer f.Close()

	data, err := r.service.GenerateReport(f)
	if err != nil {
		return err
	}
	return manad.WriteReportFile(output, data)
}
