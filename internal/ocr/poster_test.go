package ocr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePosterFull(t *testing.T) {
	raw := `SE BUSCA
	Perrito perdido en Miraflores
	Color: marrón
	Raza: labrador
	Sexo: macho
	RECOMPENSA S/ 200
	Llamar al 987 654 321 o 912-345-678`

	info := ParsePoster(raw)

	require.Equal(t, []string{"+51987654321", "+51912345678"}, info.Phones)
	require.True(t, info.Reward)
	require.Contains(t, info.Keywords, "marrón")
	require.Contains(t, info.Keywords, "macho")
	require.Contains(t, info.Keywords, "perro")
	require.Equal(t, "Marrón", info.Attributes["color"])
	require.Equal(t, "Labrador", info.Attributes["raza"])
	require.Equal(t, "Macho", info.Attributes["sexo"])
	require.Equal(t, "Miraflores", info.Attributes["distrito"])
}

func TestParsePosterEmpty(t *testing.T) {
	info := ParsePoster("")

	require.Empty(t, info.Phones)
	require.False(t, info.Reward)
	require.Empty(t, info.Keywords)
	require.Empty(t, info.Attributes)
}

func TestParsePosterPhoneNormalization(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"spaces", "llamar 987 654 321", []string{"+51987654321"}},
		{"dashes", "cel: 987-654-321", []string{"+51987654321"}},
		{"compact", "987654321", []string{"+51987654321"}},
		{"landline ignored", "tel 01 4567890", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ParsePoster(tt.raw).Phones)
		})
	}
}

func TestParsePosterFallbackAttributes(t *testing.T) {
	// No "color:" label, but a known color word appears in the text.
	info := ParsePoster("perrita blanco perdida, es hembra")

	require.Equal(t, "Blanco", info.Attributes["color"])
	require.Equal(t, "Hembra", info.Attributes["sexo"])
}

func TestParsePosterDistrictLongestFirst(t *testing.T) {
	// "san juan de lurigancho" contains "lurigancho"; the full district name
	// must win.
	info := ParsePoster("visto en San Juan de Lurigancho")
	require.Equal(t, "San Juan De Lurigancho", info.Attributes["distrito"])
}

func TestParsePosterNoReward(t *testing.T) {
	info := ParsePoster("se perdió gato negro en Barranco")
	require.False(t, info.Reward)
	require.Equal(t, "Barranco", info.Attributes["distrito"])
}
