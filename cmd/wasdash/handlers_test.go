package main

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"wasdash/internal/constants"
	"wasdash/internal/models"
	"wasdash/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu       sync.Mutex
	nextID   int64
	analyses map[int64]*models.SavedAnalysis
}

func newMemoryStore() *memoryStore {
	return &memoryStore{analyses: make(map[int64]*models.SavedAnalysis)}
}

func (m *memoryStore) SaveAnalysis(ctx context.Context, analysis *models.SavedAnalysis) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	stored := *analysis
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.analyses[m.nextID] = &stored
	return m.nextID, nil
}

func (m *memoryStore) GetAnalysis(ctx context.Context, id int64) (*models.SavedAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analyses[id], nil
}

func (m *memoryStore) ListAnalyses(ctx context.Context) ([]models.AnalysisSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var summaries []models.AnalysisSummary
	for _, a := range m.analyses {
		summaries = append(summaries, models.AnalysisSummary{ID: a.ID, Name: a.Name})
	}
	return summaries, nil
}

func (m *memoryStore) DeleteAnalysis(ctx context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.analyses[id]; !ok {
		return false, nil
	}
	delete(m.analyses, id)
	return true, nil
}

func (m *memoryStore) DeleteAllAnalyses(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyses = make(map[int64]*models.SavedAnalysis)
	return nil
}

const testChat = "13/2/24, 10:00 - Ana: hola\n" +
	"13/2/24, 10:05 - Ben: hola Ana\n" +
	"13/2/24, 10:06 - Ana: mira https://example.com"

func newTestServer(t *testing.T) (*Server, *memoryStore) {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	cfg := &models.Config{
		Server: models.ServerConfig{
			Port:           0,
			MaxUploadBytes: constants.DefaultMaxUploadBytes,
		},
	}
	store := newMemoryStore()
	svc := service.NewAnalysisService(store, models.AnalysisConfig{}, logger)
	return NewServer(cfg, svc, logger), store
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "uptime_ms")
}

func TestParseEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/parse", analyzeRequest{Text: testChat})
	require.Equal(t, http.StatusOK, rec.Code)

	var body parseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.MessageCount)
	assert.Equal(t, []string{"Ana", "Ben"}, body.Participants)
	require.Len(t, body.Messages, 3)
	assert.Equal(t, "Ana", body.Messages[0].Sender)
}

func TestParseEndpointBadBody(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/parse", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{
		Text:     testChat,
		Sender:   "Ana",
		Receiver: "Ben",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Stats)
	assert.Equal(t, "Ana", body.Stats.SenderName)
	assert.Equal(t, 3, body.Stats.Total)
	assert.Zero(t, body.AnalysisID)
}

func TestAnalyzeEndpointMissingNames(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{Text: testChat})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeEndpointNotComputable(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{
		Text:     "esto no es un export",
		Sender:   "Ana",
		Receiver: "Ben",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAnalyzeEndpointSaves(t *testing.T) {
	s, store := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{
		Text:     testChat,
		Sender:   "Ana",
		Receiver: "Ben",
		Save:     true,
		Name:     "guardado",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var body analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.AnalysisID)

	saved, err := store.GetAnalysis(context.Background(), body.AnalysisID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "guardado", saved.Name)
}

func TestListAnalysesEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/analyses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetAnalysisLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{
		Text: testChat, Sender: "Ana", Receiver: "Ben", Save: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/analyses/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var saved models.SavedAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Equal(t, "Ana vs Ben", saved.Name)
	require.NotNil(t, saved.Stats)
	assert.Equal(t, 3, saved.Stats.Total)

	rec = doJSON(t, s, http.MethodGet, "/api/analyses/1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "analysis-1.json")

	rec = doJSON(t, s, http.MethodDelete, "/api/analyses/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/api/analyses/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/analyses/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAllAnalysesEndpoint(t *testing.T) {
	s, store := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/analyze", analyzeRequest{
		Text: testChat, Sender: "Ana", Receiver: "Ben", Save: true,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodDelete, "/api/analyses", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	summaries, err := store.ListAnalyses(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestExportCSVEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/export/csv", analyzeRequest{Text: testChat})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "date,time,sender,content,mediaKind,links")
	assert.Contains(t, rec.Body.String(), "hola Ana")
}

func TestMultipartZipUpload(t *testing.T) {
	s, _ := newTestServer(t)

	var zipBuf bytes.Buffer
	zw := zip.NewWriter(&zipBuf)
	member, err := zw.Create("_chat.txt")
	require.NoError(t, err)
	_, err = member.Write([]byte(testChat))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "export.zip")
	require.NoError(t, err)
	_, err = part.Write(zipBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("sender", "Ana"))
	require.NoError(t, mw.WriteField("receiver", "Ben"))
	require.NoError(t, mw.WriteField("save", "true"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp analyzeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Stats)
	assert.Equal(t, 3, resp.Stats.Total)
	assert.Equal(t, int64(1), resp.AnalysisID)
}

func TestUnknownAnalysisIDPath(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/analyses/999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Non-numeric IDs never match the route.
	rec = doJSON(t, s, http.MethodGet, "/api/analyses/abc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
