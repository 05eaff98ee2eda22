package query

import (
	"strings"
)

// RefusalAnswer is the exact answer the model must return when the retrieved
// context does not contain the information asked for. It is a successful
// answer, not an error.
const RefusalAnswer = "Não tenho informações necessárias para responder sua pergunta."

// BuildPrompt assembles the grounded question-answering prompt: the grounding
// instruction with the refusal contract, the retrieved passages in the order
// received (most similar first, no score annotations), and the literal
// question. The refusal policy lives entirely in this wording; there is no
// code-level relevance cutoff.
func BuildPrompt(question string, passages []ScoredPassage) string {
	var sb strings.Builder

	sb.WriteString("Você é um assistente que responde perguntas baseado EXCLUSIVAMENTE nas informações fornecidas no CONTEXTO abaixo.\n")
	sb.WriteString("CONTEXTO:\n")
	for _, p := range passages {
		sb.WriteString(strings.TrimSpace(p.Passage.Content))
		sb.WriteString("\n\n")
	}
	if len(passages) == 0 {
		sb.WriteString("\n")
	}

	sb.WriteString("REGRAS:\n")
	sb.WriteString("- Responda somente com base no CONTEXTO.\n")
	sb.WriteString("- Se a informação não estiver explicitamente no CONTEXTO, responda:\n")
	sb.WriteString("  \"" + RefusalAnswer + "\"\n")
	sb.WriteString("- Nunca invente ou use conhecimento externo.\n")
	sb.WriteString("- Nunca produza opiniões ou interpretações além do que está escrito.\n\n")

	sb.WriteString("EXEMPLOS DE PERGUNTAS FORA DO CONTEXTO:\n")
	sb.WriteString("Pergunta: \"Qual é a capital da França?\"\n")
	sb.WriteString("Resposta: \"" + RefusalAnswer + "\"\n\n")
	sb.WriteString("Pergunta: \"Quantos clientes temos em 2024?\"\n")
	sb.WriteString("Resposta: \"" + RefusalAnswer + "\"\n\n")
	sb.WriteString("Pergunta: \"Você acha isso bom ou ruim?\"\n")
	sb.WriteString("Resposta: \"" + RefusalAnswer + "\"\n\n")

	sb.WriteString("PERGUNTA DO USUÁRIO:\n")
	sb.WriteString(question)
	sb.WriteString("\n\n")
	sb.WriteString("RESPONDA A \"PERGUNTA DO USUÁRIO\"\n")

	return sb.String()
}
