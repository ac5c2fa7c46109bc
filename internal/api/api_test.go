package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/TudorHulban/availability"
	"github.com/TudorHulban/availability/internal/spacefile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const spaceDocument = `{
	"timeZone": "America/New_York",
	"minimumNotice": 30,
	"openingTimes": {
		"1": {"open": {"hour": 9, "minute": 0}, "close": {"hour": 17, "minute": 0}},
		"2": {"open": {"hour": 9, "minute": 0}, "close": {"hour": 17, "minute": 0}}
	}
}`

// monday 2020-09-07 11:22 in New York
var testNow = time.Date(2020, 9, 7, 15, 22, 0, 0, time.UTC)

func newTestAPI(t *testing.T, withSpace bool) *API {
	t.Helper()

	engine, errEngine := availability.NewDefaultEngine(nil)
	require.NoError(t, errEngine)

	var space *availability.Space

	if withSpace {
		decoded, errDecode := spacefile.Decode(strings.NewReader(spaceDocument))
		require.NoError(t, errDecode)

		space = decoded
	}

	api, errCr := NewAPI(
		&ParamsNewAPI{
			Engine:   engine,
			Space:    space,
			Registry: prometheus.NewRegistry(),
			Logger:   zerolog.Nop(),
			Now: func() time.Time {
				return testNow
			},
			DefaultDays: 2,
			MaxDays:     10,
		},
	)
	require.NoError(t, errCr)
	require.NotNil(t, api)

	return api
}

func do(t *testing.T, handler http.Handler, method, target string, body io.Reader) (int, string) {
	t.Helper()

	req := httptest.NewRequest(method, target, body)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	return rec.Code, rec.Body.String()
}

func TestErrorsNewAPI(t *testing.T) {
	api, errNil := NewAPI(nil)
	require.Error(t, errNil)
	require.Nil(t, api)

	apiNoEngine, errNoEngine := NewAPI(
		&ParamsNewAPI{
			DefaultDays: 1,
			MaxDays:     1,
		},
	)
	require.Error(t, errNoEngine)
	require.Nil(t, apiNoEngine)

	engine, errEngine := availability.NewDefaultEngine(nil)
	require.NoError(t, errEngine)

	apiBadDays, errBadDays := NewAPI(
		&ParamsNewAPI{
			Engine:      engine,
			DefaultDays: 5,
			MaxDays:     2,
		},
	)
	require.Error(t, errBadDays)
	require.Nil(t, apiBadDays)
}

func TestConfiguredSpace(t *testing.T) {
	api := newTestAPI(t, true)

	t.Run(
		"1. health",
		func(t *testing.T) {
			code, body := do(t, api, http.MethodGet, "/healthz", nil)
			require.Equal(t, http.StatusOK, code)
			require.JSONEq(t, `{"status":"ok"}`, body)
		},
	)

	t.Run(
		"2. default days and clock",
		func(t *testing.T) {
			code, body := do(t, api, http.MethodGet, "/availability", nil)
			require.Equal(t, http.StatusOK, code)
			require.JSONEq(t,
				`{
					"2020-09-07": {"open": {"hour": 12, "minute": 0}, "close": {"hour": 17, "minute": 0}},
					"2020-09-08": {"open": {"hour": 9, "minute": 0}, "close": {"hour": 17, "minute": 0}}
				}`,
				body,
			)
		},
	)

	t.Run(
		"3. explicit days and now",
		func(t *testing.T) {
			code, body := do(t, api, http.MethodGet, "/availability?days=3&now=2020-09-07T21:00:00Z", nil)
			require.Equal(t, http.StatusOK, code)
			require.JSONEq(t,
				`{
					"2020-09-07": {},
					"2020-09-08": {"open": {"hour": 9, "minute": 0}, "close": {"hour": 17, "minute": 0}},
					"2020-09-09": {}
				}`,
				body,
			)
		},
	)

	t.Run(
		"4. invalid query",
		func(t *testing.T) {
			for target, errCode := range map[string]string{
				"/availability?days=0":         "invalid_days",
				"/availability?days=11":        "invalid_days",
				"/availability?days=x":         "invalid_days",
				"/availability?now=yesterday":  "invalid_now",
				"/availability/intervals?days": "",
			} {
				code, body := do(t, api, http.MethodGet, target, nil)

				if errCode == "" {
					require.Equal(t, http.StatusOK, code, target)

					continue
				}

				require.Equal(t, http.StatusBadRequest, code, target)
				require.JSONEq(t, `{"error":"`+errCode+`"}`, body, target)
			}
		},
	)

	t.Run(
		"5. intervals",
		func(t *testing.T) {
			code, body := do(t, api, http.MethodGet, "/availability/intervals", nil)
			require.Equal(t, http.StatusOK, code)

			var response struct {
				Intervals []availability.TimeInterval `json:"intervals"`
			}
			require.NoError(t, json.Unmarshal([]byte(body), &response))
			require.Len(t, response.Intervals, 2)
			require.Equal(t,
				time.Date(2020, 9, 7, 16, 0, 0, 0, time.UTC),
				response.Intervals[0].Start(),
			)
		},
	)

	t.Run(
		"6. metrics",
		func(t *testing.T) {
			code, body := do(t, api, http.MethodGet, "/metrics", nil)
			require.Equal(t, http.StatusOK, code)
			require.Contains(t, body, "availability_http_requests_total")
			require.Contains(t, body, `availability_query_duration_seconds_count{kind="calendar"}`)
		},
	)
}

func TestPostedSpace(t *testing.T) {
	api := newTestAPI(t, false)

	t.Run(
		"1. configured space missing",
		func(t *testing.T) {
			code, body := do(t, api, http.MethodGet, "/availability", nil)
			require.Equal(t, http.StatusNotFound, code)
			require.JSONEq(t, `{"error":"space_not_configured"}`, body)
		},
	)

	t.Run(
		"2. calendar for posted space",
		func(t *testing.T) {
			code, body := do(t, api, http.MethodPost, "/availability?days=1", strings.NewReader(spaceDocument))
			require.Equal(t, http.StatusOK, code)
			require.JSONEq(t,
				`{"2020-09-07": {"open": {"hour": 12, "minute": 0}, "close": {"hour": 17, "minute": 0}}}`,
				body,
			)
		},
	)

	t.Run(
		"3. invalid documents",
		func(t *testing.T) {
			for _, document := range []string{
				"",
				`{"minimumNotice": 10}`,
				`{"timeZone": "Mars/Base", "openingTimes": {}}`,
			} {
				code, body := do(t, api, http.MethodPost, "/availability", strings.NewReader(document))
				require.Equal(t, http.StatusUnprocessableEntity, code, document)
				require.JSONEq(t, `{"error":"invalid_space"}`, body, document)
			}
		},
	)
}
