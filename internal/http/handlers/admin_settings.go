package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mirrorfinish/detailing-platform/internal/catalog"
	"github.com/mirrorfinish/detailing-platform/pkg/logging"
)

// Settings is the pricing-settings surface the admin endpoints mutate.
// Satisfied by catalog.SettingsStore and catalog.CachedSettings.
type Settings interface {
	catalog.SettingsReader
	SetDiscountPercent(ctx context.Context, pct int) error
	SetBasePriceOverride(ctx context.Context, slug string, price int) error
}

// AdminSettingsHandler serves the admin pricing controls: the global
// discount and per-package base price overrides.
type AdminSettingsHandler struct {
	settings Settings
	logger   *logging.Logger
}

// NewAdminSettingsHandler creates the admin settings handler.
func NewAdminSettingsHandler(settings Settings, logger *logging.Logger) *AdminSettingsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminSettingsHandler{settings: settings, logger: logger}
}

// Routes mounts the admin settings endpoints.
func (h *AdminSettingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/discount", h.GetDiscount)
	r.Put("/discount", h.SetDiscount)
	r.Get("/prices/{slug}", h.GetPrice)
	r.Put("/prices/{slug}", h.SetPrice)
	return r
}

// GetDiscount handles GET /admin/settings/discount.
func (h *AdminSettingsHandler) GetDiscount(w http.ResponseWriter, r *http.Request) {
	pct, err := h.settings.DiscountPercent(r.Context())
	if err != nil {
		h.logger.Error("load discount failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"percent": pct})
}

type discountRequest struct {
	Percent int `json:"percent"`
}

// SetDiscount handles PUT /admin/settings/discount.
func (h *AdminSettingsHandler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	var req discountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.settings.SetDiscountPercent(r.Context(), req.Percent); err != nil {
		writeSettingsError(w, h.logger, err)
		return
	}
	h.logger.Info("discount updated", "percent", req.Percent)
	writeJSON(w, http.StatusOK, map[string]int{"percent": req.Percent})
}

// GetPrice handles GET /admin/settings/prices/{slug}: the effective base
// price for a package and whether it is overridden.
func (h *AdminSettingsHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	pkg, ok := catalog.PackageBySlug(slug)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown package")
		return
	}

	price, overridden, err := h.settings.BasePriceOverride(r.Context(), slug)
	if err != nil {
		h.logger.Error("load price override failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !overridden {
		price = pkg.BasePrice
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"package":    slug,
		"base_price": price,
		"overridden": overridden,
	})
}

type priceRequest struct {
	Price int `json:"price"`
}

// SetPrice handles PUT /admin/settings/prices/{slug}.
func (h *AdminSettingsHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var req priceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.settings.SetBasePriceOverride(r.Context(), slug, req.Price); err != nil {
		writeSettingsError(w, h.logger, err)
		return
	}
	h.logger.Info("base price override set", "package", slug, "price", req.Price)
	writeJSON(w, http.StatusOK, map[string]any{"package": slug, "base_price": req.Price})
}

// writeSettingsError distinguishes rejected values from storage trouble.
func writeSettingsError(w http.ResponseWriter, logger *logging.Logger, err error) {
	if errors.Is(err, catalog.ErrInvalidSetting) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.Error("settings update failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}
