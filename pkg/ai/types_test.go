package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyVerdict(t *testing.T) {
	cases := []struct {
		name     string
		response string
		correct  bool
	}{
		{"correct marker", "CORRETTO: Ottimo lavoro, hai individuato il problema di leadership.", true},
		{"lowercase marker", "corretto! Ben fatto.", true},
		{"leading whitespace", "  \n\tCORRETTO, risposta completa.", true},
		{"retry marker", "RIPROVA: Pensa a chi controlla le risorse...", false},
		{"empty response", "", false},
		{"marker mid-text", "La risposta è CORRETTO ma incompleta", false},
		{"unrelated text", "Non sono sicuro di come valutare questa risposta", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.correct, ClassifyVerdict(tc.response))
		})
	}
}

func TestBuildGradingPromptIncludesArtifacts(t *testing.T) {
	prompt := buildGradingPrompt(GradingInput{
		Scenario:      "Il cane tira al guinzaglio",
		ModelAnswer:   "Lavorare sulla leadership",
		Hints:         "Osserva chi controlla le risorse",
		StudentAnswer: "Il cane non si fida del proprietario",
		AttemptNumber: 2,
	})

	require.Contains(t, prompt, "Il cane tira al guinzaglio")
	require.Contains(t, prompt, "Lavorare sulla leadership")
	require.Contains(t, prompt, "Osserva chi controlla le risorse")
	require.Contains(t, prompt, "Il cane non si fida del proprietario")
	require.Contains(t, prompt, "NUMERO TENTATIVO: 2")
	require.Contains(t, prompt, MarkerCorrect)
	require.Contains(t, prompt, MarkerRetry)
	require.NotContains(t, prompt, "più esplicito")
}

func TestBuildGradingPromptLoosensHintsAfterThirdAttempt(t *testing.T) {
	input := GradingInput{
		Scenario:      "scenario",
		ModelAnswer:   "risposta",
		StudentAnswer: "tentativo",
		AttemptNumber: 4,
	}

	prompt := buildGradingPrompt(input)
	require.Contains(t, prompt, "più esplicito")
	require.False(t, strings.Contains(prompt, "SUGGERIMENTI DEL TUTOR"), "hints section must be omitted when empty")
}
