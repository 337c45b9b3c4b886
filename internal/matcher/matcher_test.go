package matcher

import (
	"testing"

	"github.com/scentalux/storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perfume(id uint, price float64, notes ...string) model.Perfume {
	return model.Perfume{ID: id, Name: "p", Brand: "b", Price: price, Stock: 5, Published: true, Notes: notes}
}

func TestCategorizeNotes(t *testing.T) {
	t.Run("maps keywords to categories", func(t *testing.T) {
		categories := CategorizeNotes([]string{"rosa", "vainilla"})
		assert.Equal(t, []ScentCategory{Floral, Oriental}, categories)
	})

	t.Run("deduplicates categories", func(t *testing.T) {
		categories := CategorizeNotes([]string{"rosa", "jazmín", "lavanda"})
		assert.Equal(t, []ScentCategory{Floral}, categories)
	})

	t.Run("matches substrings case-insensitively", func(t *testing.T) {
		categories := CategorizeNotes([]string{"  Notas de Sándalo  "})
		assert.Equal(t, []ScentCategory{Amaderado}, categories)
	})

	t.Run("unknown notes yield no categories", func(t *testing.T) {
		assert.Empty(t, CategorizeNotes([]string{"chocolate", "cuero"}))
	})
}

func TestIntensityScore(t *testing.T) {
	tests := []struct {
		name      string
		price     float64
		preferred Intensity
		want      int
	}{
		{"exact suave", 60, Suave, 20},
		{"exact moderado", 120, Moderado, 20},
		{"exact intenso", 200, Intenso, 20},
		{"moderado adjacent to suave", 60, Moderado, 10},
		{"moderado adjacent to intenso", 200, Moderado, 10},
		{"suave adjacent to moderado", 120, Suave, 10},
		{"intenso adjacent to moderado", 120, Intenso, 10},
		{"suave vs intenso not adjacent", 200, Suave, 0},
		{"intenso vs suave not adjacent", 60, Intenso, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, intensityScore(tt.price, tt.preferred))
		})
	}
}

func TestRecommend(t *testing.T) {
	baseProfile := Profile{
		Preferences: []ScentCategory{Floral},
		Intensity:   Moderado,
		Duration:    Medio,
		Budget:      100,
		Occasion:    OccasionDiario,
		Season:      Primavera,
	}

	t.Run("scores the floral daily-use candidate", func(t *testing.T) {
		candidates := []model.Perfume{
			perfume(1, 60, "rosa", "vainilla"),
			perfume(2, 250, "sándalo"),
		}

		recs := Recommend(baseProfile, candidates)
		require.Len(t, recs, 1)
		assert.Equal(t, uint(1), recs[0].PerfumeID)
		// floral preference +10, suave adjacent to moderado +10,
		// primavera favors floral +15, daily use under $80 +20
		assert.Equal(t, 55, recs[0].MatchScore)
		assert.Contains(t, recs[0].BestFor, "Uso diario")
		assert.Contains(t, recs[0].Reasoning, "Perfecto para uso cotidiano")
	})

	t.Run("excludes candidates over budget", func(t *testing.T) {
		recs := Recommend(baseProfile, []model.Perfume{perfume(2, 250, "rosa")})
		assert.Empty(t, recs)
	})

	t.Run("drops candidates under the significance threshold", func(t *testing.T) {
		profile := Profile{
			Preferences: []ScentCategory{Citrico},
			Intensity:   Intenso,
			Duration:    Corto,
			Budget:      300,
			Occasion:    OccasionEspecial,
			Season:      Invierno,
		}
		// no category match, suave vs intenso, wrong season, under $100
		recs := Recommend(profile, []model.Perfume{perfume(3, 50, "menta")})
		assert.Empty(t, recs)
	})

	t.Run("empty candidate list yields empty output", func(t *testing.T) {
		assert.Empty(t, Recommend(baseProfile, nil))
	})

	t.Run("caps output at six recommendations", func(t *testing.T) {
		var candidates []model.Perfume
		for i := uint(1); i <= 10; i++ {
			candidates = append(candidates, perfume(i, 60, "rosa"))
		}
		recs := Recommend(baseProfile, candidates)
		assert.Len(t, recs, 6)
	})

	t.Run("sorts by non-increasing score", func(t *testing.T) {
		profile := Profile{
			Preferences: []ScentCategory{Floral, Oriental},
			Intensity:   Suave,
			Duration:    Largo,
			Budget:      300,
			Occasion:    OccasionRomantico,
			Season:      Otono,
		}
		candidates := []model.Perfume{
			perfume(1, 60, "menta"),
			perfume(2, 60, "rosa", "vainilla", "sándalo"),
			perfume(3, 60, "rosa"),
		}

		recs := Recommend(profile, candidates)
		require.NotEmpty(t, recs)
		for i := 1; i < len(recs); i++ {
			assert.GreaterOrEqual(t, recs[i-1].MatchScore, recs[i].MatchScore)
		}
	})

	t.Run("clamps scores to 100", func(t *testing.T) {
		profile := Profile{
			Preferences: []ScentCategory{Floral, Citrico, Amaderado, Oriental, Fresco},
			Intensity:   Suave,
			Duration:    Largo,
			Budget:      300,
			Occasion:    OccasionRomantico,
			Season:      Otono,
		}
		candidates := []model.Perfume{
			perfume(1, 60, "rosa", "limón", "sándalo", "vainilla", "menta"),
		}

		recs := Recommend(profile, candidates)
		require.Len(t, recs, 1)
		assert.Equal(t, 100, recs[0].MatchScore)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		candidates := []model.Perfume{
			perfume(1, 60, "rosa", "vainilla"),
			perfume(2, 75, "limón", "menta"),
			perfume(3, 40, "flor de lirio"),
		}

		first := Recommend(baseProfile, candidates)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Recommend(baseProfile, candidates))
		}
	})

	t.Run("professional occasion awards a flat bonus", func(t *testing.T) {
		profile := Profile{
			Preferences: []ScentCategory{Floral},
			Intensity:   Suave,
			Duration:    Medio,
			Budget:      300,
			Occasion:    OccasionProfesional,
			Season:      Verano,
		}
		// flat professional bonus 15 + exact suave 20 + citric in verano 15 = 50
		recs := Recommend(profile, []model.Perfume{perfume(1, 50, "bergamota")})
		require.Len(t, recs, 1)
		assert.Equal(t, 50, recs[0].MatchScore)
		assert.Equal(t, []string{"Entorno profesional"}, recs[0].BestFor)
	})

	t.Run("all returned scores within bounds", func(t *testing.T) {
		profiles := []Profile{
			baseProfile,
			{Preferences: []ScentCategory{Oriental, Amaderado}, Intensity: Intenso, Duration: Largo, Budget: 300, Occasion: OccasionNoches, Season: Invierno},
			{Preferences: nil, Intensity: Moderado, Duration: Corto, Budget: 90, Occasion: OccasionEspecial, Season: Verano},
		}
		candidates := []model.Perfume{
			perfume(1, 60, "rosa", "vainilla"),
			perfume(2, 160, "sándalo", "ámbar"),
			perfume(3, 85, "limón"),
			perfume(4, 30, "ozono", "verde"),
		}
		for _, p := range profiles {
			for _, rec := range Recommend(p, candidates) {
				assert.GreaterOrEqual(t, rec.MatchScore, 40)
				assert.LessOrEqual(t, rec.MatchScore, 100)
			}
		}
	})
}
