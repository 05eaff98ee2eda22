package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	appcli "github.com/docchat/docchat/internal/app/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	app := &cli.Command{
		Name:  "docchat",
		Usage: "Perguntas e respostas sobre um documento ingerido (RAG + pgvector)",
		Commands: []*cli.Command{
			{
				Name:  "ingest",
				Usage: "Ingere um documento no banco vetorial",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "Caminho do arquivo de variáveis de ambiente",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:     "file",
						Usage:    "Caminho do documento a ingerir",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Identificador da fonte (padrão: nome do arquivo)",
					},
					&cli.BoolFlag{
						Name:  "reset",
						Usage: "Remove registros anteriores da fonte antes de ingerir",
					},
				},
				Action: appcli.IngestAction,
			},
			{
				Name:  "chat",
				Usage: "Inicia o chat interativo sobre o documento ingerido",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "Caminho do arquivo de variáveis de ambiente",
						Value: ".env",
					},
				},
				Action: appcli.ChatAction,
			},
			{
				Name:      "search",
				Usage:     "Executa apenas a busca vetorial e exibe os trechos recuperados",
				ArgsUsage: "<pergunta>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "Caminho do arquivo de variáveis de ambiente",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Restringe a busca a uma fonte específica",
					},
				},
				Action: appcli.SearchAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
