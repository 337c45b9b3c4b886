package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/scentalux/storefront/internal/catalog"
	"github.com/scentalux/storefront/internal/middleware"
	"github.com/scentalux/storefront/pkg/logger"
	"github.com/scentalux/storefront/prometheus"
	"go.uber.org/zap"
)

// ListPerfumes returns the published, customer-visible catalog with an
// optional category filter
func ListPerfumes(c echo.Context) error {
	log := logger.FromEcho(c)
	prometheus.CatalogOperationsCounter.WithLabelValues("list").Inc()

	perfumes := catalog.GetStore().Published()

	category := c.QueryParam("category")
	if category != "" {
		filtered := perfumes[:0]
		for _, p := range perfumes {
			if p.Category == category {
				filtered = append(filtered, p)
			}
		}
		perfumes = filtered
		log.Info("Filtering catalog by category", zap.String("category", category))
	}

	log.Info("Catalog listed", zap.Int("count", len(perfumes)))
	return c.JSON(http.StatusOK, perfumes)
}

// GetPerfume returns a single product. Unpublished products stay hidden
// from customers; admin sessions see the full set.
func GetPerfume(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid perfume id"})
	}

	perfume, ok := catalog.GetStore().Get(uint(id))
	if !ok {
		log.Warn("Perfume not found", zap.Uint64("perfume_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{"error": "perfume not found"})
	}

	if !perfume.Published {
		sess, authed := middleware.SessionFromContext(c)
		if !authed || !sess.IsAdmin() {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "perfume not found"})
		}
	}

	return c.JSON(http.StatusOK, perfume)
}

// RefreshCatalog re-reads the product list from the backend
func RefreshCatalog(c echo.Context) error {
	prometheus.CatalogOperationsCounter.WithLabelValues("refresh").Inc()
	if err := catalog.GetStore().Refresh(c.Request().Context()); err != nil {
		return handleBackendError(c, nil, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "catalog refreshed"})
}
