package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/de-tools/cost-lens/pkg/adapters"
	"github.com/de-tools/cost-lens/pkg/models/api"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/de-tools/cost-lens/pkg/services/aggregator"
	"github.com/de-tools/cost-lens/pkg/services/params"
	"github.com/de-tools/cost-lens/pkg/services/reports"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	registry   reports.Registry
	collector  reports.Collector
	aggregator *aggregator.Aggregator

	defaultScope domain.Scope
}

func NewHandler(
	registry reports.Registry,
	collector reports.Collector,
	agg *aggregator.Aggregator,
	defaultScope domain.Scope,
) *Handler {
	return &Handler{
		registry:     registry,
		collector:    collector,
		aggregator:   agg,
		defaultScope: defaultScope,
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	descriptors := make([]api.ReportDescriptor, 0)
	for _, name := range h.registry.Names() {
		module, err := h.registry.Create(name, h.collector)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		descriptors = append(descriptors, adapters.MapModuleToReportDescriptor(module))
	}

	if err := json.NewEncoder(w).Encode(descriptors); err != nil {
		logger.Error().Err(err).Msg("failed to encode report descriptors")
	}
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "report")

	module, err := h.registry.Create(name, h.collector)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapModuleToReportDescriptor(module)); err != nil {
		logger.Error().Err(err).Str("report", name).Msg("failed to encode report descriptor")
	}
}

func (h *Handler) RunReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	scope := h.scopeFromQuery(r)

	var selected []string
	if raw := r.URL.Query().Get("reports"); raw != "" {
		selected = strings.Split(raw, ",")
	}

	results, err := h.aggregator.Run(ctx, scope, selected)
	if err != nil {
		writeRunError(w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapRunToSummary(scope, results)); err != nil {
		logger.Error().Err(err).Msg("failed to encode run summary")
	}
}

func (h *Handler) RunReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	name := chi.URLParam(r, "report")
	scope := h.scopeFromQuery(r)

	results, err := h.aggregator.Run(ctx, scope, []string{name})
	if err != nil {
		writeRunError(w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapResultToApi(results[0])); err != nil {
		logger.Error().Err(err).Str("report", name).Msg("failed to encode report result")
	}
}

func (h *Handler) scopeFromQuery(r *http.Request) domain.Scope {
	scope := h.defaultScope
	if account := r.URL.Query().Get("account"); account != "" {
		scope.Account = account
	}
	if region := r.URL.Query().Get("region"); region != "" {
		scope.Regions = []string{region}
	}
	return scope
}

// writeRunError distinguishes caller mistakes (unknown report names, invalid
// parameter values) from engine failures.
func writeRunError(w http.ResponseWriter, err error) {
	var validation *params.ValidationError
	if errors.As(err, &validation) || strings.Contains(err.Error(), "unknown report") {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
