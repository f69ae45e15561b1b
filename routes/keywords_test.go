package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keyword-extraction-service/internal/catalog"
	"keyword-extraction-service/internal/config"
	"keyword-extraction-service/internal/logger"
	"keyword-extraction-service/internal/matcher"
	"keyword-extraction-service/middleware"
	"keyword-extraction-service/models"
	"keyword-extraction-service/services"
)

const keywordsCSV = "KeywordID,KeywordNamesEN,KeywordNamesFR,IDF\n" +
	`KW1,Quality assurance specialist,"[""Spécialiste en assurance qualité"",""Expert en assurance qualité""]",5.2` + "\n" +
	`KW2,Amazon Cloud,"[""Amazon Cloud""]",4.1` + "\n" +
	`KW3,Amazon EC2,"[""Amazon EC2""]",4.7` + "\n"

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keywords.csv"), []byte(keywordsCSV), 0o644))
	cfg := &config.Config{
		AppEnv:        "test",
		GinMode:       "release",
		DataDir:       dir,
		KeywordsFile:  "keywords.csv",
		IDColumn:      "KeywordID",
		EnNameColumn:  "KeywordNamesEN",
		FrNamesColumn: "KeywordNamesFR",
		IDFColumn:     "IDF",
	}
	logger.InitLogger(cfg)
	return cfg
}

func buildRouter(t *testing.T, cfg *config.Config, load bool) (*gin.Engine, *services.State) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	schema := catalog.FieldSchema{
		IDField:     cfg.IDColumn,
		EnNameField: cfg.EnNameColumn,
		FrNameField: cfg.FrNamesColumn,
		IDFField:    cfg.IDFColumn,
	}
	state := services.NewState(schema)
	if load {
		require.NoError(t, state.Load(cfg.KeywordsPath()))
	}

	extractor := services.NewExtractor(state, matcher.NewLanguageDetector(), nil)

	router := gin.New()
	SetupHealthRoutes(router, state)
	SetupKeywordRoutes(router, cfg, state, extractor, nil, middleware.NewAuthMiddleware(cfg))
	return router, state
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestExtractKeywordWrongFormat(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t), true)

	w := postJSON(router, "/extract-keyword", `{"jobContet": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestExtractKeywordEmptyContent(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t), true)

	w := postJSON(router, "/extract-keyword", `{"jobContent": ""}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ExtractionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Keywords)
	assert.Contains(t, w.Body.String(), `"keywords":[]`)
}

func TestExtractKeywordValidRequest(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t), true)

	w := postJSON(router, "/extract-keyword",
		`{"jobContent": "We are looking for a Quality assurance specialist"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ExtractionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Keywords)

	var names []string
	for _, kw := range resp.Keywords {
		names = append(names, strings.ToLower(kw.Name.En))
	}
	assert.Contains(t, names, "quality assurance specialist")
}

func TestExtractKeywordFrenchContent(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t), true)

	w := postJSON(router, "/extract-keyword",
		`{"jobContent": "Nous recherchons un spécialiste en assurance qualité pour renforcer notre équipe"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ExtractionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Keywords, 1)
	assert.Equal(t, "KW1", resp.Keywords[0].ID)
	assert.Equal(t, "Spécialiste en assurance qualité", resp.Keywords[0].Name.Fr)
}

func TestExtractKeywordBeforeLoad(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t), false)

	// Startup window: empty results, not a rejection
	w := postJSON(router, "/extract-keyword", `{"jobContent": "Amazon Cloud expert wanted"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"keywords":[]`)
}

func TestSearchKeywords(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t), true)

	w := get(router, "/search-keywords?pattern=Ama")
	require.Equal(t, http.StatusOK, w.Code)

	var keywords []models.Keyword
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &keywords))
	require.Len(t, keywords, 2)
	assert.Equal(t, "KW2", keywords[0].ID)
	assert.Equal(t, "KW3", keywords[1].ID)
}

func TestSearchKeywordsNoMatches(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t), true)

	w := get(router, "/search-keywords?pattern=%21%40%23%21%23")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestSearchKeywordsWithoutPattern(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t), true)

	// Absent pattern behaves as the empty pattern: every keyword matches
	w := get(router, "/search-keywords")
	require.Equal(t, http.StatusOK, w.Code)

	var keywords []models.Keyword
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &keywords))
	assert.Len(t, keywords, 3)
}

func TestHealth(t *testing.T) {
	router, _ := buildRouter(t, testConfig(t), false)

	w := get(router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"alive"`)
}

func TestReadiness(t *testing.T) {
	cfg := testConfig(t)
	router, state := buildRouter(t, cfg, false)

	// Before the catalog loads the service is not ready
	w := get(router, "/ready")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	require.NoError(t, state.Load(cfg.KeywordsPath()))
	w = get(router, "/ready")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
}

func TestReadinessAfterLoadFailure(t *testing.T) {
	cfg := testConfig(t)
	router, state := buildRouter(t, cfg, true)

	// Simulated failed reload degrades the service
	require.Error(t, state.Load(filepath.Join(cfg.DataDir, "absent.csv")))

	w := get(router, "/ready")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "not_ready")
}

func TestReloadEndpoint(t *testing.T) {
	cfg := testConfig(t)
	router, _ := buildRouter(t, cfg, true)

	w := postJSON(router, "/reload", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ready"`)
	assert.Contains(t, w.Body.String(), `"keywords":3`)
}
