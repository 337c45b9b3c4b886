// Package matcher scores published perfumes against a customer preference
// profile and produces ranked recommendations with a human-readable
// explanation. It is pure: identical inputs always yield identical output.
package matcher

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scentalux/storefront/internal/model"
)

// ScentCategory is one of the five fixed scent families
type ScentCategory string

const (
	Floral    ScentCategory = "floral"
	Citrico   ScentCategory = "citrico"
	Amaderado ScentCategory = "amaderado"
	Oriental  ScentCategory = "oriental"
	Fresco    ScentCategory = "fresco"
)

// Intensity preference on an ordinal scale
type Intensity string

const (
	Suave    Intensity = "suave"
	Moderado Intensity = "moderado"
	Intenso  Intensity = "intenso"
)

// Duration preference
type Duration string

const (
	Corto Duration = "corto"
	Medio Duration = "medio"
	Largo Duration = "largo"
)

// Occasion identifiers
const (
	OccasionDiario      = "diario"
	OccasionNoches      = "noches"
	OccasionEspecial    = "especial"
	OccasionRomantico   = "romantico"
	OccasionProfesional = "profesional"
)

// Season identifiers
const (
	Primavera = "primavera"
	Verano    = "verano"
	Otono     = "otoño"
	Invierno  = "invierno"
)

// Profile is a customer's ephemeral preference profile. It exists only for
// the duration of one recommendation request.
type Profile struct {
	Preferences []ScentCategory `json:"scentPreferences"`
	Intensity   Intensity       `json:"intensity"`
	Duration    Duration        `json:"duration"`
	Budget      float64         `json:"budget"`
	Occasion    string          `json:"occasion"`
	Season      string          `json:"season"`
}

// Recommendation is one scored candidate
type Recommendation struct {
	PerfumeID  uint     `json:"perfumeId"`
	MatchScore int      `json:"matchScore"`
	Reasoning  string   `json:"reasoning"`
	BestFor    []string `json:"bestFor"`
	Notes      []string `json:"notes"`
}

// Scoring constants. These weights are hand-tuned for behavioral
// compatibility with the original advisor, not derived from data; treat them
// as tunable parameters.
const (
	pointsPerPreference   = 10
	pointsIntensityExact  = 20
	pointsIntensityClose  = 10
	pointsPerSeasonMatch  = 15
	pointsOccasionStrong  = 20
	pointsOccasionFlat    = 15
	pointsLongDuration    = 10
	significanceThreshold = 40
	maxRecommendations    = 6
)

// categoryOrder fixes the iteration order over categories so derived lists
// are deterministic
var categoryOrder = []ScentCategory{Floral, Citrico, Amaderado, Oriental, Fresco}

// noteKeywords maps each scent category to the note keywords that imply it
var noteKeywords = map[ScentCategory][]string{
	Floral:    {"rosa", "jazmín", "lavanda", "floral", "flor", "flores", "lirio", "violeta", "gardenia"},
	Citrico:   {"limón", "naranja", "bergamota", "cítrico", "cítricos", "mandarina", "pomelo", "lima"},
	Amaderado: {"sándalo", "cedro", "pachulí", "madera", "amaderado", "roble", "vetiver", "musgo"},
	Oriental:  {"vainilla", "ámbar", "especias", "oriental", "canela", "clavo", "incienso", "almizcle"},
	Fresco:    {"marino", "verde", "acuático", "fresco", "ozono", "menta", "hierbas", "aloe"},
}

// seasonalPreferences maps each season to its preferred categories
var seasonalPreferences = map[string][]ScentCategory{
	Primavera: {Floral, Fresco, Citrico},
	Verano:    {Citrico, Fresco, Floral},
	Otono:     {Amaderado, Oriental, Floral},
	Invierno:  {Oriental, Amaderado, Floral},
}

// CategorizeNotes maps a perfume's free-text notes to scent categories by
// substring match, deduplicated, in fixed category order.
func CategorizeNotes(notes []string) []ScentCategory {
	seen := make(map[ScentCategory]bool)
	for _, note := range notes {
		lower := strings.ToLower(strings.TrimSpace(note))
		for _, category := range categoryOrder {
			if seen[category] {
				continue
			}
			for _, keyword := range noteKeywords[category] {
				if strings.Contains(lower, keyword) {
					seen[category] = true
					break
				}
			}
		}
	}

	var categories []ScentCategory
	for _, category := range categoryOrder {
		if seen[category] {
			categories = append(categories, category)
		}
	}
	return categories
}

// impliedIntensity derives a product's intensity tier from its price
func impliedIntensity(price float64) Intensity {
	switch {
	case price > 150:
		return Intenso
	case price > 80:
		return Moderado
	default:
		return Suave
	}
}

// intensityScore awards full points for an exact tier match and half for an
// adjacent tier (moderado borders both ends of the scale)
func intensityScore(price float64, preferred Intensity) int {
	implied := impliedIntensity(price)
	if implied == preferred {
		return pointsIntensityExact
	}
	switch {
	case preferred == Moderado && (implied == Suave || implied == Intenso),
		preferred == Suave && implied == Moderado,
		preferred == Intenso && implied == Moderado:
		return pointsIntensityClose
	}
	return 0
}

// seasonScore awards points per product category the season favors
func seasonScore(categories []ScentCategory, season string) int {
	preferred := seasonalPreferences[season]
	matches := 0
	for _, category := range categories {
		for _, p := range preferred {
			if category == p {
				matches++
				break
			}
		}
	}
	return matches * pointsPerSeasonMatch
}

func hasCategory(categories []ScentCategory, want ScentCategory) bool {
	for _, c := range categories {
		if c == want {
			return true
		}
	}
	return false
}

// Recommend scores the candidates against the profile and returns at most
// six recommendations with scores in [0,100], sorted by descending score.
// Candidates over budget are excluded before scoring; candidates under the
// significance threshold are dropped. An empty result is a normal outcome.
func Recommend(profile Profile, candidates []model.Perfume) []Recommendation {
	var recommendations []Recommendation

	for _, perfume := range candidates {
		if perfume.Price > profile.Budget {
			continue
		}

		score := 0
		var reasoningParts []string
		var bestFor []string

		categories := CategorizeNotes(perfume.Notes)

		matching := 0
		for _, pref := range profile.Preferences {
			if hasCategory(categories, pref) {
				matching++
			}
		}
		if matching > 0 {
			score += matching * pointsPerPreference
			reasoningParts = append(reasoningParts,
				fmt.Sprintf("Coincide con %d de tus preferencias de aroma", matching))
		}

		if s := intensityScore(perfume.Price, profile.Intensity); s > 0 {
			score += s
			reasoningParts = append(reasoningParts, "Intensidad adecuada para tu preferencia")
		}

		if s := seasonScore(categories, profile.Season); s > 0 {
			score += s
			reasoningParts = append(reasoningParts,
				fmt.Sprintf("Ideal para la temporada de %s", profile.Season))
		}

		switch profile.Occasion {
		case OccasionDiario:
			if perfume.Price <= 80 {
				score += pointsOccasionStrong
				bestFor = append(bestFor, "Uso diario")
				reasoningParts = append(reasoningParts, "Perfecto para uso cotidiano")
			}
		case OccasionEspecial:
			if perfume.Price >= 100 {
				score += pointsOccasionStrong
				bestFor = append(bestFor, "Ocasiones especiales")
				reasoningParts = append(reasoningParts, "Ideal para eventos especiales")
			}
		case OccasionProfesional:
			score += pointsOccasionFlat
			bestFor = append(bestFor, "Entorno profesional")
			reasoningParts = append(reasoningParts, "Adecuado para el ámbito laboral")
		case OccasionRomantico:
			if hasCategory(categories, Floral) || hasCategory(categories, Oriental) {
				score += pointsOccasionStrong
				bestFor = append(bestFor, "Citas románticas")
				reasoningParts = append(reasoningParts, "Perfecto para momentos románticos")
			}
		case OccasionNoches:
			if hasCategory(categories, Oriental) || hasCategory(categories, Amaderado) {
				score += pointsOccasionFlat
				bestFor = append(bestFor, "Salidas nocturnas")
				reasoningParts = append(reasoningParts, "Ideal para la noche")
			}
		}

		if profile.Duration == Largo &&
			(hasCategory(categories, Oriental) || hasCategory(categories, Amaderado)) {
			score += pointsLongDuration
			reasoningParts = append(reasoningParts, "Duración prolongada como buscabas")
		}

		reasoning := "Buena opción basada en tus preferencias generales."
		if len(reasoningParts) > 0 {
			reasoning = strings.Join(reasoningParts, ". ") + "."
		}
		if len(bestFor) == 0 {
			bestFor = []string{"Múltiples usos"}
		}

		if score > 100 {
			score = 100
		}
		if score < 0 {
			score = 0
		}
		if score < significanceThreshold {
			continue
		}

		recommendations = append(recommendations, Recommendation{
			PerfumeID:  perfume.ID,
			MatchScore: score,
			Reasoning:  reasoning,
			BestFor:    bestFor,
			Notes:      perfume.Notes,
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].MatchScore > recommendations[j].MatchScore
	})
	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}
