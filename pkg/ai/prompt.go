package ai

import (
	"fmt"
	"strings"
)

// buildGradingPrompt renders the Italian grading instructions for one
// attempt. The model answer and hints only ever appear here, never in any
// student-facing payload.
func buildGradingPrompt(input GradingInput) string {
	builder := strings.Builder{}

	builder.WriteString("Sei un esperto educatore cinofilo che sta valutando la risposta di uno studente a un caso di studio.\n\n")
	builder.WriteString("SCENARIO DEL CASO DI STUDIO:\n")
	builder.WriteString(input.Scenario)
	builder.WriteString("\n\nRISPOSTA MODELLO (la risposta corretta che il tutor si aspetta):\n")
	builder.WriteString(input.ModelAnswer)

	if input.Hints != "" {
		builder.WriteString("\n\nSUGGERIMENTI DEL TUTOR:\n")
		builder.WriteString(input.Hints)
	}

	builder.WriteString("\n\nRISPOSTA DELLO STUDENTE:\n")
	builder.WriteString(input.StudentAnswer)
	builder.WriteString(fmt.Sprintf("\n\nNUMERO TENTATIVO: %d\n", input.AttemptNumber))

	builder.WriteString("\nISTRUZIONI:\n")
	builder.WriteString("1. Valuta se la risposta dello studente coglie i concetti chiave della risposta modello\n")
	builder.WriteString("2. Non è necessario che sia identica, ma deve dimostrare comprensione dei principi fondamentali\n")
	builder.WriteString("3. Se la risposta è CORRETTA o sufficientemente vicina alla risposta modello:\n")
	builder.WriteString("   - Rispondi con \"" + MarkerCorrect + "\" come prima parola\n")
	builder.WriteString("   - Fornisci un breve feedback positivo\n")
	builder.WriteString("   - Puoi aggiungere eventuali approfondimenti\n")
	builder.WriteString("4. Se la risposta è INCORRETTA o incompleta:\n")
	builder.WriteString("   - Rispondi con \"" + MarkerRetry + "\" come prima parola\n")
	builder.WriteString("   - NON rivelare la risposta corretta\n")
	builder.WriteString("   - Fornisci spunti di riflessione per guidare lo studente\n")
	builder.WriteString("   - Fai domande che lo aiutino a ragionare\n")
	if input.AttemptNumber > 3 {
		builder.WriteString("   - Lo studente ha superato il terzo tentativo: puoi essere leggermente più esplicito negli hint\n")
	}
	builder.WriteString("\nRispondi in italiano in modo professionale ma incoraggiante.")

	return builder.String()
}
