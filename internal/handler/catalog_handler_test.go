package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/scentalux/storefront/internal/matcher"
	"github.com/scentalux/storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListPerfumes_PublishedOnly(t *testing.T) {
	setupEnv(t, catalogMux())
	e := newRouter()

	rec := doJSON(e, http.MethodGet, "/api/perfumes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var perfumes []model.Perfume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perfumes))
	require.Len(t, perfumes, 2)
	for _, p := range perfumes {
		assert.True(t, p.Published)
	}
}

func TestListPerfumes_CategoryFilter(t *testing.T) {
	setupEnv(t, catalogMux())
	e := newRouter()

	rec := doJSON(e, http.MethodGet, "/api/perfumes?category=Para+Ella", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var perfumes []model.Perfume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perfumes))
	require.Len(t, perfumes, 1)
	assert.Equal(t, "Flor de Luna", perfumes[0].Name)
}

func TestGetPerfume_UnpublishedHiddenFromCustomers(t *testing.T) {
	setupEnv(t, catalogMux())
	e := newRouter()

	rec := doJSON(e, http.MethodGet, "/api/perfumes/3", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	customer := openSession(t, "ana", "USER")
	rec = doJSON(e, http.MethodGet, "/api/perfumes/3", customer.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPerfume_UnpublishedVisibleToAdmin(t *testing.T) {
	setupEnv(t, catalogMux())
	e := newRouter()
	admin := openSession(t, "jefa", "ADMIN")

	rec := doJSON(e, http.MethodGet, "/api/perfumes/3", admin.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var perfume model.Perfume
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &perfume))
	assert.Equal(t, "Prototipo 07", perfume.Name)
}

func TestRecommend_MatchesWithinBudget(t *testing.T) {
	setupEnv(t, catalogMux())
	e := newRouter()

	rec := doJSON(e, http.MethodPost, "/api/advisor/recommendations", "", map[string]interface{}{
		"scentPreferences": []string{"floral"},
		"intensity":        "suave",
		"duration":         "largo",
		"budget":           100,
		"occasion":         "diario",
		"season":           "primavera",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Recommendations []matcher.Recommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Recommendations, 1)

	// only the published perfume inside budget qualifies
	assert.Equal(t, uint(1), resp.Recommendations[0].PerfumeID)
	assert.NotEmpty(t, resp.Recommendations[0].Reasoning)
}

func TestRecommend_NoMatchCarriesNotice(t *testing.T) {
	setupEnv(t, catalogMux())
	e := newRouter()

	rec := doJSON(e, http.MethodPost, "/api/advisor/recommendations", "", map[string]interface{}{
		"scentPreferences": []string{"amaderado"},
		"budget":           10,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["notice"])
	assert.Empty(t, body["recommendations"])
}

func TestRecommend_RequiresPreferences(t *testing.T) {
	setupEnv(t, catalogMux())
	e := newRouter()

	rec := doJSON(e, http.MethodPost, "/api/advisor/recommendations", "", map[string]interface{}{
		"budget": 100,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
