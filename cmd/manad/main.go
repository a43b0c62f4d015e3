// cmd/manad/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"manad-service/internal/config"
	"manad-service/internal/console"
	"manad-service/internal/core/batch"
	"manad-service/internal/core/manad"
	"manad-service/internal/logging"

	"go.uber.org/zap"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao carregar .env: %v\n", err)
	}
	cfg := config.Load()

	flag.StringVar(&cfg.InputDir, "input", cfg.InputDir, "Diretório com os arquivos MANAD (MANAD_INPUT_DIR)")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Diretório dos relatórios gerados (MANAD_OUTPUT_DIR)")
	flag.StringVar(&cfg.InputExt, "ext", cfg.InputExt, "Extensão dos arquivos de entrada (MANAD_INPUT_EXT)")
	flag.StringVar(&cfg.ReportPrefix, "prefix", cfg.ReportPrefix, "Prefixo do nome dos relatórios (MANAD_REPORT_PREFIX)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Nível de log: debug, info, warn, error (LOG_LEVEL)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `manad - gera relatórios de rubricas (K150/K300) a partir de arquivos MANAD

Uso:
  manad -input <dir> [-output <dir>] [flags]

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := cfg.ValidateBatch(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n\n", err)
		flag.Usage()
		os.Exit(2)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(2)
	}
	code := run(cfg, logger)
	_ = logger.Sync()
	os.Exit(code)
}

func run(cfg *config.Config, logger *zap.Logger) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out := console.Stdout()
	runner := batch.NewRunner(batch.Options{
		InputDir:     cfg.InputDir,
		OutputDir:    cfg.OutputDir,
		InputExt:     cfg.InputExt,
		ReportPrefix: cfg.ReportPrefix,
	}, manad.NewService(), logger, out)

	summary, err := runner.Run(ctx)
	if err != nil {
		out.Failure(err.Error())
		logger.Error("execução em lote interrompida", zap.Error(err))
		return 1
	}

	out.Info(fmt.Sprintf("%d relatório(s) gerado(s), %d falha(s)", len(summary.Reports), len(summary.Failures)))
	if len(summary.Failures) > 0 {
		return 1
	}
	return 0
}
