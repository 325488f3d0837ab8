package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sponsorscope/sponsorscope/internal/export"
	"github.com/sponsorscope/sponsorscope/internal/store"
)

// ChannelRefresher re-fetches one channel's upstream statistics on demand.
type ChannelRefresher interface {
	RefreshChannel(ctx context.Context, channelID string) error
}

type ChannelsHandler struct {
	store     store.Store
	refresher ChannelRefresher
}

func NewChannelsHandler(s store.Store, r ChannelRefresher) *ChannelsHandler {
	return &ChannelsHandler{store: s, refresher: r}
}

func (h *ChannelsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.ChannelFilter{
		Category: r.URL.Query().Get("category"),
		Limit:    50,
	}
	if v := r.URL.Query().Get("min_subscribers"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MinSubscribers = n
		}
	}
	if v := r.URL.Query().Get("max_subscribers"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxSubscribers = n
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			filter.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	channels, err := h.store.ListChannels(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if channels == nil {
		channels = []*store.Channel{}
	}
	writeJSON(w, http.StatusOK, channels)
}

func (h *ChannelsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ch, err := h.store.GetChannel(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if ch == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "channel not found"})
		return
	}
	writeJSON(w, http.StatusOK, ch)
}

func (h *ChannelsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.GetStats(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ChannelsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.refresher == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "refresher disabled"})
		return
	}
	if err := h.refresher.RefreshChannel(r.Context(), id); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "refreshed", "channel_id": id})
}

func (h *ChannelsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	ch, err := h.store.GetChannel(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if ch == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "channel not found"})
		return
	}
	if err := h.store.DeleteChannel(r.Context(), id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "channel_id": id})
}

func (h *ChannelsHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	channels, err := h.store.ListChannels(r.Context(), store.ChannelFilter{Limit: 10000})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="channels.csv"`)
	// The response is already committed once rows start streaming.
	_ = export.WriteChannelsCSV(w, channels)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
