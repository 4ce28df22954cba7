package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"wasdash/internal/archive"
	"wasdash/internal/exporter"
	"wasdash/internal/metrics"
	"wasdash/internal/models"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// analyzeRequest is the JSON body accepted by the parse, analyze and CSV
// export endpoints. Zip exports can be submitted as multipart uploads
// instead; the "file" part then replaces Text.
type analyzeRequest struct {
	Text     string `json:"text"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
	Save     bool   `json:"save"`
	Name     string `json:"name"`
}

type analyzeResponse struct {
	AnalysisID   int64                    `json:"analysisId,omitempty"`
	Participants []string                 `json:"participants"`
	MessageCount int                      `json:"messageCount"`
	Stats        *models.StatisticsResult `json:"stats"`
}

type parseResponse struct {
	Participants []string         `json:"participants"`
	MessageCount int              `json:"messageCount"`
	Messages     []models.Message `json:"messages"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, err := s.readUpload(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result := s.analysis.Parse(r.Context(), req.Text)
	s.writeJSON(w, http.StatusOK, parseResponse{
		Participants: result.Participants,
		MessageCount: len(result.Messages),
		Messages:     result.Messages,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	req, err := s.readUpload(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Sender == "" || req.Receiver == "" {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("sender and receiver are required"))
		return
	}

	stats, result := s.analysis.Analyze(r.Context(), req.Text, req.Sender, req.Receiver)
	if stats == nil {
		s.writeError(w, r, http.StatusUnprocessableEntity,
			fmt.Errorf("statistics not computable for the given chat and participants"))
		return
	}

	resp := analyzeResponse{
		Participants: result.Participants,
		MessageCount: len(result.Messages),
		Stats:        stats,
	}

	if req.Save {
		id, err := s.analysis.SaveAnalysis(r.Context(), req.Name, stats)
		if err != nil {
			s.writeError(w, r, http.StatusInternalServerError, err)
			return
		}
		resp.AnalysisID = id
	}

	metrics.IncrementCounter("analyze_requests_total", nil, "Total analyze requests served")
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	req, err := s.readUpload(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result := s.analysis.Parse(r.Context(), req.Text)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="messages.csv"`)
	if err := exporter.WriteMessagesCSV(w, result.Messages); err != nil {
		s.logger.WithError(err).Error("Failed to stream CSV export")
	}
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.analysis.ListAnalyses(r.Context())
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if summaries == nil {
		summaries = []models.AnalysisSummary{}
	}
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	analysis, err := s.analysis.GetAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if analysis == nil {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("analysis %d not found", id))
		return
	}
	s.writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	deleted, err := s.analysis.DeleteAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if !deleted {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("analysis %d not found", id))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAllAnalyses(w http.ResponseWriter, r *http.Request) {
	if err := s.analysis.DeleteAllAnalyses(r.Context()); err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	analysis, err := s.analysis.GetAnalysis(r.Context(), id)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if analysis == nil {
		s.writeError(w, r, http.StatusNotFound, fmt.Errorf("analysis %d not found", id))
		return
	}

	data, err := exporter.StatsJSON(analysis.Stats)
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="analysis-%d.json"`, id))
	if _, err := w.Write(data); err != nil {
		s.logger.WithError(err).Error("Failed to stream analysis export")
	}
}

// readUpload extracts the chat text and analysis parameters from either a
// JSON body or a multipart upload. Zip archives are unwrapped to the chat
// transcript they contain.
func (s *Server) readUpload(r *http.Request) (analyzeRequest, error) {
	var req analyzeRequest
	r.Body = http.MaxBytesReader(nil, r.Body, s.cfg.Server.MaxUploadBytes)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
			return req, fmt.Errorf("failed to parse upload: %w", err)
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			return req, fmt.Errorf("missing file upload: %w", err)
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return req, fmt.Errorf("failed to read upload: %w", err)
		}

		text, err := archive.ExtractChatText(data)
		if err != nil {
			return req, fmt.Errorf("failed to extract chat: %w", err)
		}

		req.Text = text
		req.Sender = r.FormValue("sender")
		req.Receiver = r.FormValue("receiver")
		req.Name = r.FormValue("name")
		req.Save = r.FormValue("save") == "true"
		return req, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid request body: %w", err)
	}

	// JSON bodies may also carry a zip payload; only the magic bytes decide.
	text, err := archive.ExtractChatText([]byte(req.Text))
	if err != nil {
		return req, fmt.Errorf("failed to extract chat: %w", err)
	}
	req.Text = text

	return req, nil
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid analysis ID %q", raw)
	}
	return id, nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.WithFields(logrus.Fields{
		"status": status,
		"path":   r.URL.Path,
	}).WithError(err).Warn("Request failed")
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
