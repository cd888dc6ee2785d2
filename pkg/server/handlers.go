package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/matside/pkg/model"
)

type recordResponse struct {
	Success  bool          `json:"success"`
	Insights string        `json:"insights"`
	Data     *model.Record `json:"data"`
}

type analysisResponse struct {
	Insights    string          `json:"insights"`
	Sections    []model.Section `json:"sections"`
	ActionItems []string        `json:"actionItems"`
	Data        []*model.Record `json:"data"`
}

type alertsResponse struct {
	Alerts []*model.Alert `json:"alerts"`
}

type healthResponse struct {
	Status  string     `json:"status"`
	Service string     `json:"service"`
	Uptime  string     `json:"uptime"`
	Queue   *queueInfo `json:"queue,omitempty"`
}

type queueInfo struct {
	Pending      int        `json:"pending"`
	Issued       int64      `json:"issued"`
	Failed       int64      `json:"failed"`
	LastIssuedAt *time.Time `json:"lastIssuedAt,omitempty"`
}

func (s *Server) withDeadline(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), s.timeout)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "healthy",
		Service: "matside",
		Uptime:  time.Since(s.startedAt).Round(time.Second).String(),
	}

	if s.queueStats != nil {
		stats := s.queueStats()
		resp.Queue = &queueInfo{
			Pending: stats.Pending,
			Issued:  stats.Issued,
			Failed:  stats.Failed,
		}
		if !stats.LastIssuedAt.IsZero() {
			resp.Queue.LastIssuedAt = &stats.LastIssuedAt
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	category := model.Category(chi.URLParam(r, "category"))
	if err := category.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidType)
		return
	}

	data := map[string]any{}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	ctx, cancel := s.withDeadline(r)
	defer cancel()

	result, err := s.uc.Record(ctx, category, data)
	if err != nil {
		writeUseCaseError(w, r, err, fmt.Sprintf("Failed to save %s data", category))
		return
	}

	writeJSON(w, http.StatusOK, recordResponse{
		Success:  true,
		Insights: result.Insight,
		Data:     result.Record,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	category := model.Category(chi.URLParam(r, "type"))
	if err := category.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidType)
		return
	}

	records, err := s.uc.History(r.Context(), category)
	if err != nil {
		writeUseCaseError(w, r, err, msgHistoryError)
		return
	}

	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	category := model.Category(chi.URLParam(r, "type"))
	if err := category.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidType)
		return
	}

	ctx, cancel := s.withDeadline(r)
	defer cancel()

	result, err := s.uc.Analysis(ctx, category)
	if err != nil {
		writeUseCaseError(w, r, err, msgAnalysisFail)
		return
	}

	writeJSON(w, http.StatusOK, analysisResponse{
		Insights:    result.Insight.Text,
		Sections:    result.Insight.Sections,
		ActionItems: result.Insight.ActionItems,
		Data:        result.Records,
	})
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.uc.Alerts(r.Context())
	if err != nil {
		writeUseCaseError(w, r, err, msgAlertsFail)
		return
	}

	writeJSON(w, http.StatusOK, alertsResponse{Alerts: alerts})
}
