// Package api serves availability calendars over HTTP.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/TudorHulban/availability"
	"github.com/TudorHulban/availability/internal/spacefile"
	goerrors "github.com/TudorHulban/go-errors"
	"github.com/asaskevich/govalidator"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type API struct {
	engine  *availability.Engine
	space   *availability.Space
	metrics *metrics
	handler http.Handler
	logger  zerolog.Logger
	now     func() time.Time

	defaultDays int
	maxDays     int
}

type ParamsNewAPI struct {
	Engine   *availability.Engine `valid:"required"`
	Space    *availability.Space  `valid:"-"` // served on GET, optional
	Registry *prometheus.Registry `valid:"-"`
	Logger   zerolog.Logger       `valid:"-"`
	Now      func() time.Time     `valid:"-"`

	DefaultDays int
	MaxDays     int
}

func NewAPI(params *ParamsNewAPI) (*API, error) {
	if params == nil {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewAPI",
				Issue: goerrors.ErrNilInput{
					InputName: "ParamsNewAPI",
				},
			}
	}

	if _, errValidation := govalidator.ValidateStruct(params); errValidation != nil {
		return nil,
			goerrors.ErrServiceValidation{
				ServiceName: "API",
				Caller:      "NewAPI",
				Issue:       errValidation,
			}
	}

	if params.MaxDays < 1 || params.DefaultDays < 1 || params.DefaultDays > params.MaxDays {
		return nil,
			goerrors.ErrValidation{
				Caller: "NewAPI",
				Issue: goerrors.ErrInvalidInput{
					Caller:     "NewAPI",
					InputName:  "DefaultDays",
					InputValue: params.DefaultDays,
					Issue: goerrors.ErrNegativeInput{
						InputName: "DefaultDays",
					},
				},
			}
	}

	registry := params.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	a := API{
		engine:      params.Engine,
		space:       params.Space,
		metrics:     newMetrics(registry),
		logger:      params.Logger,
		now:         params.Now,
		defaultDays: params.DefaultDays,
		maxDays:     params.MaxDays,
	}

	if a.now == nil {
		a.now = time.Now
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(a.metrics.middleware)

	r.Get("/healthz", a.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	a.AddAvailabilityRoutes(r)

	a.handler = r

	return &a,
		nil
}

func (a *API) AddAvailabilityRoutes(r chi.Router) {
	r.Route("/availability", func(r chi.Router) {
		r.Get("/", a.handleConfiguredCalendar)
		r.Post("/", a.handlePostedCalendar)
		r.Get("/intervals", a.handleConfiguredIntervals)
	})
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *API) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryParams reads days and now from the query string.
func (a *API) queryParams(r *http.Request) (int, time.Time, string) {
	days := a.defaultDays

	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, errConv := strconv.Atoi(raw)
		if errConv != nil || parsed < 1 || parsed > a.maxDays {
			return 0, time.Time{}, "invalid_days"
		}

		days = parsed
	}

	now := a.now()

	if raw := r.URL.Query().Get("now"); raw != "" {
		parsed, errParse := time.Parse(time.RFC3339, raw)
		if errParse != nil {
			return 0, time.Time{}, "invalid_now"
		}

		now = parsed
	}

	return days, now, ""
}

func (a *API) handleConfiguredCalendar(w http.ResponseWriter, r *http.Request) {
	if a.space == nil {
		writeError(w, http.StatusNotFound, "space_not_configured")
		return
	}

	a.serveCalendar(w, r, a.space)
}

func (a *API) handlePostedCalendar(w http.ResponseWriter, r *http.Request) {
	space, errDecode := spacefile.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if errDecode != nil {
		a.logger.Debug().Err(errDecode).Str("request_id", middleware.GetReqID(r.Context())).Msg("rejected space document")

		writeError(w, http.StatusUnprocessableEntity, "invalid_space")
		return
	}

	a.serveCalendar(w, r, space)
}

func (a *API) serveCalendar(w http.ResponseWriter, r *http.Request, space *availability.Space) {
	days, now, errCode := a.queryParams(r)
	if errCode != "" {
		writeError(w, http.StatusBadRequest, errCode)
		return
	}

	started := time.Now()

	calendar, errFetch := a.engine.FetchAvailability(
		&availability.ParamsFetchAvailability{
			Space:        space,
			NumberOfDays: days,
			Now:          now,
		},
	)

	a.metrics.observeQuery("calendar", started)

	if errFetch != nil {
		a.logger.Warn().Err(errFetch).Str("time_zone", space.TimeZone).Msg("availability query failed")

		writeError(w, http.StatusUnprocessableEntity, "invalid_space")
		return
	}

	writeJSON(w, http.StatusOK, calendar)
}

func (a *API) handleConfiguredIntervals(w http.ResponseWriter, r *http.Request) {
	if a.space == nil {
		writeError(w, http.StatusNotFound, "space_not_configured")
		return
	}

	days, now, errCode := a.queryParams(r)
	if errCode != "" {
		writeError(w, http.StatusBadRequest, errCode)
		return
	}

	started := time.Now()

	intervals, errFetch := a.engine.FetchIntervals(
		&availability.ParamsFetchAvailability{
			Space:        a.space,
			NumberOfDays: days,
			Now:          now,
		},
	)

	a.metrics.observeQuery("intervals", started)

	if errFetch != nil {
		a.logger.Warn().Err(errFetch).Str("time_zone", a.space.TimeZone).Msg("intervals query failed")

		writeError(w, http.StatusUnprocessableEntity, "invalid_space")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"intervals": intervals})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
