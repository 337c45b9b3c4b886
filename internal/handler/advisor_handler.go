package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/internal/catalog"
	"github.com/scentalux/storefront/internal/matcher"
	"github.com/scentalux/storefront/pkg/logger"
	"github.com/scentalux/storefront/prometheus"
	"go.uber.org/zap"
)

// Recommend runs the matching engine over the published catalog. An empty
// result is a normal outcome carried with guidance, never an error.
func Recommend(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.RecommendationRequestsCounter.Inc()

	var profile matcher.Profile
	if err := c.Bind(&profile); err != nil {
		log.Error("Invalid recommendation profile", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request data"})
	}

	if len(profile.Preferences) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "at least one scent preference is required"})
	}
	if profile.Budget <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "budget must be positive"})
	}

	candidates := catalog.GetStore().Published()
	recommendations := matcher.Recommend(profile, candidates)

	log.Info("Recommendations computed",
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(recommendations)))

	if len(recommendations) == 0 {
		prometheus.RecommendationEmptyCounter.Inc()
		return c.JSON(http.StatusOK, echo.Map{
			"recommendations": []matcher.Recommendation{},
			"notice":          "No encontramos coincidencias perfectas. Intenta ajustar tus preferencias o aumentar tu presupuesto.",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"recommendations": recommendations})
}
