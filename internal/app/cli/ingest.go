package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/docchat/docchat/internal/core/ingestion"
)

// IngestAction runs the ingestion pipeline for one document.
func IngestAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	file := cmd.String("file")
	source := cmd.String("source")
	reset := cmd.Bool("reset")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	cfg := appCtx.Config

	appCtx.Logger().Info("starting ingestion",
		"file", file,
		"chunkSize", cfg.Ingest.ChunkSize,
		"chunkOverlap", cfg.Ingest.ChunkOverlap,
		"reset", reset,
	)

	summary, err := appCtx.Container.IngestService.Ingest(ctx, ingestion.Params{
		Path:         file,
		SourceID:     source,
		ChunkSize:    cfg.Ingest.ChunkSize,
		ChunkOverlap: cfg.Ingest.ChunkOverlap,
		Reset:        reset,
	})
	if err != nil {
		appCtx.Logger().Error("ingestion failed", "error", err)
		return err
	}

	if summary.Removed > 0 {
		fmt.Printf("Removidos %d registro(s) anteriores de %q.\n", summary.Removed, summary.SourceID)
	}
	fmt.Printf("Ingestão concluída: %d chunk(s) de %d página(s) armazenados para %q.\n",
		summary.ChunkCount, summary.PageCount, summary.SourceID)
	return nil
}
