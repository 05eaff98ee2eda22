package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/mo"
	"github.com/urfave/cli/v3"

	"github.com/docchat/docchat/internal/core/query"
)

// SearchAction runs retrieval only and prints the raw hits with their
// distances, for inspecting what the synthesizer would receive.
func SearchAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")
	source := cmd.String("source")

	question := strings.TrimSpace(strings.Join(cmd.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("informe a pergunta: docchat search <pergunta>")
	}

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	filter := query.SearchFilter{}
	if source != "" {
		filter.SourceID = mo.Some(source)
	}

	results, err := appCtx.Container.Retriever.Retrieve(ctx, question, filter)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("Nenhum resultado encontrado.")
		return nil
	}

	divider := strings.Repeat("=", 60)
	for i, result := range results {
		fmt.Println(divider)
		fmt.Printf("Resultado %d (distância: %.4f)\n", i+1, result.Distance)
		fmt.Println(divider)
		fmt.Printf("\nTexto:\n%s\n", strings.TrimSpace(result.Passage.Content))
		fmt.Printf("\nMetadados:\n  source_id: %s\n  ordinal: %d\n\n", result.Passage.SourceID, result.Passage.Ordinal)
	}
	return nil
}
