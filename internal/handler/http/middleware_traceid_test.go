package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-sched/internal/logger"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeWithTraceID(h *Handler, header string) (*httptest.ResponseRecorder, *http.Request) {
	var captured *http.Request
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/appointments/", nil)
	if header != "" {
		req.Header.Set(traceIDHeader, header)
	}

	rr := httptest.NewRecorder()
	h.withTraceID(next).ServeHTTP(rr, req)
	return rr, captured
}

func TestWithTraceID_GeneratesID(t *testing.T) {
	rr, req := executeWithTraceID(&Handler{logger: logger.Nop()}, "")

	require.NotNil(t, req)
	traceID := rr.Header().Get(traceIDHeader)
	parsed, err := uuid.Parse(traceID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestWithTraceID_ReusesValidHeader(t *testing.T) {
	id := uuid.NewString()
	rr, _ := executeWithTraceID(&Handler{logger: logger.Nop()}, id)
	assert.Equal(t, id, rr.Header().Get(traceIDHeader))
}

func TestWithTraceID_ReplacesInvalidHeader(t *testing.T) {
	rr, _ := executeWithTraceID(&Handler{logger: logger.Nop()}, "not a uuid\r\n")

	traceID := rr.Header().Get(traceIDHeader)
	assert.NotEqual(t, "not a uuid\r\n", traceID)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err)
}

func TestWithTraceID_LoggerCarriesTraceID(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

	id := uuid.NewString()
	_, req := executeWithTraceID(h, id)
	require.NotNil(t, req)

	logger.FromRequest(req).Info().Msg("hello")
	assert.Contains(t, buf.String(), `"trace_id":"`+id+`"`)
}
