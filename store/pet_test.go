package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPetValidate(t *testing.T) {
	valid := func() *Pet {
		return &Pet{
			Name:      "Rocky",
			District:  "Miraflores",
			Lat:       -12.1211,
			Lon:       -77.0297,
			Embedding: []float32{0.1, 0.2},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Pet)
		wantErr bool
	}{
		{"valid", func(*Pet) {}, false},
		{"empty name", func(p *Pet) { p.Name = "" }, true},
		{"empty embedding", func(p *Pet) { p.Embedding = nil }, true},
		{"latitude out of range", func(p *Pet) { p.Lat = 91 }, true},
		{"longitude out of range", func(p *Pet) { p.Lon = -181 }, true},
		{"NaN latitude", func(p *Pet) { p.Lat = math.NaN() }, true},
		{"NaN longitude", func(p *Pet) { p.Lon = math.NaN() }, true},
		{"zero coordinates allowed", func(p *Pet) { p.Lat, p.Lon = 0, 0 }, false},
		{"missing district allowed", func(p *Pet) { p.District = "" }, false},
		// Dimension is not the store's concern.
		{"odd embedding length allowed", func(p *Pet) { p.Embedding = []float32{1} }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pet := valid()
			tt.mutate(pet)
			err := pet.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
