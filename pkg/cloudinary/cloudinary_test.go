package cloudinary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResourceTypeFor(t *testing.T) {
	cases := map[string]string{
		"scheda-esercizi.pdf": "raw",
		"dispensa.docx":       "raw",
		"richiamo.MP4":        "video",
		"fischietto.wav":      "video",
		"postura.jpg":         "image",
		"senza-estensione":    "raw",
	}

	for name, want := range cases {
		require.Equal(t, want, resourceTypeFor(name), name)
	}
}

func TestBuildPublicIDSanitizesName(t *testing.T) {
	id := buildPublicID("Scheda esercizi (v2).pdf")
	require.True(t, strings.HasPrefix(id, "Scheda-esercizi--v2"))
	require.NotContains(t, id, " ")
	require.NotContains(t, id, "(")

	// A name with no usable characters still yields a stable prefix.
	require.True(t, strings.HasPrefix(buildPublicID("???.pdf"), "material-"))
}
