// Package http exposes the backend REST API with a chi router.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/bijligrid/internal/logging"
	"github.com/dmitrijs2005/bijligrid/internal/server/models"
	"github.com/dmitrijs2005/bijligrid/internal/server/services"
)

const requestTimeout = 60 * time.Second

type ProfileSyncer interface {
	FindOrCreate(ctx context.Context, walletAddress, name string) (*models.Profile, error)
}

type AssetLister interface {
	ListByProfile(ctx context.Context, profileID string) ([]models.EnergyAsset, error)
}

type StatsProvider interface {
	Stats(ctx context.Context, profileID string) models.Stats
	Health(ctx context.Context) models.Health
}

type Handler struct {
	profiles ProfileSyncer
	assets   AssetLister
	stats    StatsProvider
	logger   logging.Logger
}

func NewHandler(p ProfileSyncer, a AssetLister, s StatsProvider, l logging.Logger) *Handler {
	return &Handler{profiles: p, assets: a, stats: s, logger: l.With("module", "http")}
}

// Router returns the API mux with the standard middleware stack.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Post("/profile", h.syncProfile)
		r.Get("/stats", h.getStats)
		r.Get("/stats/{profileID}", h.getStats)
		r.Get("/assets/{profileID}", h.listAssets)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Health(r.Context()))
}

type profileRequest struct {
	WalletAddress string `json:"walletAddress"`
	Name          string `json:"name"`
}

func (h *Handler) syncProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.profiles.FindOrCreate(r.Context(), req.WalletAddress, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrWalletAddressRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "profile sync failed", "wallet", req.WalletAddress, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to sync profile")
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stats.Stats(r.Context(), chi.URLParam(r, "profileID")))
}

func (h *Handler) listAssets(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	list, err := h.assets.ListByProfile(r.Context(), profileID)
	if err != nil {
		h.logger.Error(r.Context(), "asset listing failed", "profile", profileID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch assets")
		return
	}

	writeJSON(w, http.StatusOK, list)
}
