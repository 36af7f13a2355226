package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"wcidash/internal/canon"
	"wcidash/internal/config"
	"wcidash/internal/engine"
	"wcidash/internal/models"
	"wcidash/internal/observability"
)

type Handler struct {
	cache   *engine.Cache
	query   config.QueryConfig
	metrics *observability.Metrics
	logger  zerolog.Logger
}

// NewHandler serves snapshots from cache. metrics may be nil.
// Until the first load succeeds every data route answers 503.
func NewHandler(cache *engine.Cache, query config.QueryConfig, metrics *observability.Metrics, logger zerolog.Logger) *Handler {
	return &Handler{
		cache:   cache,
		query:   query,
		metrics: metrics,
		logger:  observability.Component(logger, "api"),
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/metrics/catalog", h.GetCatalog)
	api.GET("/map", h.GetMap)
	api.GET("/rankings", h.GetRanking)
	api.GET("/countries", h.GetCountries)
	api.GET("/countries/:country", h.GetCountry)
	api.GET("/attributions/:mode/export.arrow", h.ExportMatrix)
	api.GET("/attributions/:mode/:country", h.GetAttributions)
	api.POST("/reload", h.PostReload)
}

// Reload rebuilds the cached dataset and records the outcome. The previous
// snapshot keeps serving when the load fails.
func (h *Handler) Reload(ctx context.Context) (*engine.Dataset, error) {
	t0 := time.Now()
	d, err := h.cache.Reload(ctx)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordReloadFailure()
		}
		h.logger.Error().Err(err).Msg("dataset reload failed")
		return nil, err
	}

	status := reloadStatus(d)
	if h.metrics != nil {
		rows := map[string]int{"metrics": status.Countries}
		collisions := make(map[string]int, len(status.Modes))
		for slug, ms := range status.Modes {
			rows[slug] = ms.Rows
			collisions[slug] = ms.KeyCollisions
		}
		h.metrics.RecordReload(rows, collisions)
	}
	h.logger.Info().Int("countries", status.Countries).Dur("elapsed", time.Since(t0)).Msg("dataset ready")
	return d, nil
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (h *Handler) Health(c echo.Context) error {
	_, err := h.cache.Get()
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"loaded": err == nil,
	})
}

func (h *Handler) GetCatalog(c echo.Context) error {
	out := make([]models.MetricInfo, 0, len(engine.Catalog))
	for _, m := range engine.Catalog {
		kind := engine.SelectDisplayFormat(m.Label)
		out = append(out, models.MetricInfo{Label: m.Label, Column: m.Column, Format: kind.String(), Spec: kind.Spec()})
	}
	return c.JSON(http.StatusOK, out)
}

type metricParams struct {
	Metric string `query:"metric"`
	Limit  int    `query:"limit" validate:"gte=0"`
}

func (p *metricParams) label() string {
	if p.Metric == "" {
		return engine.ColWCI
	}
	return p.Metric
}

// choropleth data for one metric, WCI by default
func (h *Handler) GetMap(c echo.Context) error {
	d, err := h.cache.Get()
	if err != nil {
		return h.fail(c, err)
	}
	var p metricParams
	if err := bindAndValidate(c, &p); err != nil {
		return h.fail(c, err)
	}

	data, err := d.Metrics.MapView(p.label())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, data)
}

// returns the top countries of a metric, 20 unless limit is given
func (h *Handler) GetRanking(c echo.Context) error {
	d, err := h.cache.Get()
	if err != nil {
		return h.fail(c, err)
	}
	var p metricParams
	if err := bindAndValidate(c, &p); err != nil {
		return h.fail(c, err)
	}
	if p.Limit == 0 {
		p.Limit = 20
	}

	top, err := d.Metrics.Ranking(p.label(), p.Limit)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, top)
}

// country selector, alphabetical
func (h *Handler) GetCountries(c echo.Context) error {
	d, err := h.cache.Get()
	if err != nil {
		return h.fail(c, err)
	}

	names := d.Metrics.Countries()
	sort.Strings(names)
	total := len(names)
	limit, offset := getPaginationParams(c, total)

	if offset >= total {
		return c.JSON(http.StatusOK, models.CountryList{Data: []string{}, Total: total, Limit: limit, Offset: offset})
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, models.CountryList{
		Data:   names[offset:end],
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

func (h *Handler) GetCountry(c echo.Context) error {
	d, err := h.cache.Get()
	if err != nil {
		return h.fail(c, err)
	}
	var p metricParams
	if err := bindAndValidate(c, &p); err != nil {
		return h.fail(c, err)
	}
	metric, err := engine.MetricByLabel(p.label())
	if err != nil {
		return h.fail(c, err)
	}

	country, err := pathParam(c, c.Param("country"))
	if err != nil {
		return h.fail(c, err)
	}
	row, ok := d.Metrics.Lookup(country)
	if !ok {
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "unknown country: " + country})
	}

	v, _ := row.Value(metric.Column)
	return c.JSON(http.StatusOK, models.CountryDetail{
		Country: row.Country,
		ISO3:    row.ISO3,
		Metric:  metric.Label,
		Value:   v,
		Display: engine.SelectDisplayFormat(metric.Label).Format(v),
	})
}

type attributionParams struct {
	Mode    string `param:"mode" validate:"required"`
	Country string `param:"country" validate:"required,max=200"`
	Top     int    `query:"top" validate:"gte=0"`
}

// who attributes a country, for one mode
func (h *Handler) GetAttributions(c echo.Context) error {
	d, err := h.cache.Get()
	if err != nil {
		return h.fail(c, err)
	}
	var p attributionParams
	if err := bindAndValidate(c, &p); err != nil {
		return h.fail(c, err)
	}
	if p.Mode, err = pathParam(c, p.Mode); err != nil {
		return h.fail(c, err)
	}
	if p.Country, err = pathParam(c, p.Country); err != nil {
		return h.fail(c, err)
	}
	mode, err := engine.ParseMode(p.Mode)
	if err != nil {
		return h.fail(c, err)
	}
	top, err := h.topN(p.Top)
	if err != nil {
		return h.fail(c, err)
	}

	t0 := time.Now()
	res, err := d.Resolve(mode, p.Country, top)
	if err != nil {
		return h.fail(c, err)
	}
	if h.metrics != nil {
		h.metrics.RecordQuery(mode.Slug(), res.Orientation.String(), res.Empty(), time.Since(t0).Seconds())
	}

	chart := newAttributionChart(mode, canon.Clean(p.Country), res)
	if chart.Empty && h.query.Suggestions > 0 {
		chart.Suggestions = d.Suggest(p.Country, h.query.Suggestions)
	}
	return c.JSON(http.StatusOK, chart)
}

// the raw attribution matrix of a mode as an Arrow IPC stream
func (h *Handler) ExportMatrix(c echo.Context) error {
	d, err := h.cache.Get()
	if err != nil {
		return h.fail(c, err)
	}
	raw, err := pathParam(c, c.Param("mode"))
	if err != nil {
		return h.fail(c, err)
	}
	mode, err := engine.ParseMode(raw)
	if err != nil {
		return h.fail(c, err)
	}
	md, ok := d.Modes[mode]
	if !ok || md == nil || md.Matrix == nil {
		return h.fail(c, &engine.ConfigurationError{Mode: mode, Reason: "matrix not loaded"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.apache.arrow.stream")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+mode.Slug()+`.arrow"`)
	c.Response().WriteHeader(http.StatusOK)
	if err := engine.WriteMatrixIPC(c.Response(), md.Matrix); err != nil {
		h.logger.Error().Err(err).Str("mode", mode.Slug()).Msg("arrow export failed")
		return err
	}
	return nil
}

func (h *Handler) PostReload(c echo.Context) error {
	d, err := h.Reload(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, reloadStatus(d))
}

// pathParam decodes a path parameter. echo routes on URL.RawPath when the
// client's escaping differs from Go's, and params then arrive still escaped.
func pathParam(c echo.Context, v string) (string, error) {
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	out, err := url.PathUnescape(v)
	if err != nil {
		return "", &paramError{msg: "malformed path escape in " + strconv.Quote(v)}
	}
	return out, nil
}

// topN applies the configured default and ceiling to a requested count.
func (h *Handler) topN(requested int) (int, error) {
	if requested == 0 {
		requested = h.query.DefaultTopN
	}
	if h.query.MaxTopN > 0 && requested > h.query.MaxTopN {
		return 0, &paramError{msg: "top must not exceed " + strconv.Itoa(h.query.MaxTopN)}
	}
	return requested, nil
}

// fail maps an error to its status code and JSON body.
func (h *Handler) fail(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	var perr *paramError
	switch {
	case errors.Is(err, engine.ErrNotLoaded):
		status = http.StatusServiceUnavailable
	case errors.As(err, &perr),
		errors.Is(err, engine.ErrUnknownMetric),
		errors.Is(err, engine.ErrUnknownMode):
		status = http.StatusBadRequest
	case errors.Is(err, engine.ErrConfiguration):
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("configuration error")
	default:
		h.logger.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}
	return c.JSON(status, models.ErrorResponse{Error: err.Error()})
}

func reloadStatus(d *engine.Dataset) models.ReloadStatus {
	st := models.ReloadStatus{
		LoadedAt: d.LoadedAt,
		Modes:    make(map[string]models.ModeStatus, len(d.Modes)),
	}
	if d.Metrics != nil {
		st.Countries = len(d.Metrics.Rows)
	}
	for mode, md := range d.Modes {
		st.Modes[mode.Slug()] = models.ModeStatus{
			Rows:          md.Matrix.NumRows(),
			Columns:       md.Matrix.NumCols(),
			KeyCollisions: md.Index.CollisionCount(),
		}
	}
	return st
}
