package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// exitWords are the sentinel inputs that end a chat session. They are
// interpreted here, in the front end; the query pipeline never sees them.
var exitWords = map[string]bool{
	"sair": true,
	"exit": true,
	"quit": true,
	"q":    true,
}

// ChatAction runs the interactive question-and-answer loop against the
// ingested document.
func ChatAction(ctx context.Context, cmd *cli.Command) error {
	envFile := cmd.String("env")

	appCtx, err := NewAppContext(ctx, envFile)
	if err != nil {
		return err
	}
	defer appCtx.Close()

	divider := strings.Repeat("=", 60)
	fmt.Println(divider)
	fmt.Println("CHAT RAG - Sistema de Perguntas e Respostas")
	fmt.Println(divider)
	fmt.Println("\nVocê pode fazer perguntas sobre o documento ingerido.")
	fmt.Println("Digite 'sair' para encerrar o chat.")
	fmt.Println(divider)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nPERGUNTA: ")
		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if exitWords[strings.ToLower(question)] {
			break
		}
		if question == "" {
			fmt.Println("Por favor, digite uma pergunta válida.")
			continue
		}

		answer, err := appCtx.Container.QueryPipeline.Answer(ctx, question)
		if err != nil {
			// a failed question must not end the session
			appCtx.Logger().Error("failed to answer question", "error", err)
			fmt.Printf("Erro ao processar pergunta: %v\n", err)
			continue
		}

		fmt.Printf("\nRESPOSTA: %s\n", answer)
		fmt.Println(strings.Repeat("-", 60))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	fmt.Println("\nEncerrando chat. Até logo!")
	return nil
}
