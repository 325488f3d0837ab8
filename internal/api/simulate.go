package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sponsorscope/sponsorscope/internal/scoring"
	"github.com/sponsorscope/sponsorscope/internal/simulator"
)

// SimulationService is the part of the simulator the HTTP layer depends on.
type SimulationService interface {
	Run(ctx context.Context, req simulator.Request) (*simulator.Result, error)
	CompareWeights(ctx context.Context, req simulator.CompareRequest) (*simulator.CompareResult, error)
	AnalyzeBrand(ctx context.Context, req simulator.Request) (*simulator.BrandScore, error)
	AnalyzeSentiment(ctx context.Context, req simulator.Request) (*simulator.SentimentScore, error)
	SummarizeComments(ctx context.Context, comments []string) (*simulator.CommentSummary, error)
}

type SimulateHandler struct {
	sim SimulationService
}

func NewSimulateHandler(sim SimulationService) *SimulateHandler {
	return &SimulateHandler{sim: sim}
}

func (h *SimulateHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req simulator.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ChannelID == "" || req.BrandName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "channel_id and brand_name required"})
		return
	}

	res, err := h.sim.Run(r.Context(), req)
	if err != nil {
		writeSimulationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *SimulateHandler) CompareWeights(w http.ResponseWriter, r *http.Request) {
	var req simulator.CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ChannelID == "" || req.BrandName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "channel_id and brand_name required"})
		return
	}

	res, err := h.sim.CompareWeights(r.Context(), req)
	if err != nil {
		writeSimulationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *SimulateHandler) BrandCompatibility(w http.ResponseWriter, r *http.Request) {
	var req simulator.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.ChannelID == "" || req.BrandName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "channel_id and brand_name required"})
		return
	}

	score, err := h.sim.AnalyzeBrand(r.Context(), req)
	if err != nil {
		writeSimulationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

func (h *SimulateHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	req := simulator.Request{ChannelID: chi.URLParam(r, "channelID")}
	if v := r.URL.Query().Get("num_videos"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid num_videos"})
			return
		}
		req.NumVideos = n
	}
	if v := r.URL.Query().Get("max_comments_per_video"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid max_comments_per_video"})
			return
		}
		req.MaxComments = n
	}
	score, err := h.sim.AnalyzeSentiment(r.Context(), req)
	if err != nil {
		writeSimulationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

type commentsSummaryRequest struct {
	Comments []string `json:"comments"`
}

func (h *SimulateHandler) CommentsSummary(w http.ResponseWriter, r *http.Request) {
	var req commentsSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Comments) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "comments required"})
		return
	}

	summary, err := h.sim.SummarizeComments(r.Context(), req.Comments)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeSimulationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulator.ErrChannelNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "channel not found"})
	case errors.Is(err, simulator.ErrNoUploads), errors.Is(err, simulator.ErrNoComments):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, scoring.ErrInvalidWeights):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}
