package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/snapshot/internal/gateway"
	"github.com/sells-group/snapshot/internal/model"
	"github.com/sells-group/snapshot/internal/research"
	"github.com/sells-group/snapshot/internal/session"
)

const testReportJSON = `{
	"name": "Stripe",
	"logo": "S",
	"tagline": "Payments infrastructure",
	"industry": "Financial Services",
	"foundingYear": 2010,
	"topCompetitors": [
		{"name": "Adyen", "type": "direct", "description": "Enterprise payments"},
		{"name": "PayPal", "type": "broader", "description": "Consumer payments"}
	]
}`

// fakeProvider answers every prompt with the same reply.
type fakeProvider struct {
	name string
	text string
	err  error
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) Send(context.Context, string) (string, error) {
	return p.text, p.err
}

func newTestServer(primary, validator gateway.Provider) (*apiServer, *session.Session) {
	sess := session.New()
	return &apiServer{
		orchestrator: research.New(primary, validator, sess),
		session:      sess,
		primary:      primary,
		validator:    validator,
		mode:         research.ModeLenient,
	}, sess
}

func doRequest(t *testing.T, srv *apiServer, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.routes([]string{"*"}).ServeHTTP(rec, req)
	return rec
}

func TestServeHealth(t *testing.T) {
	srv, _ := newTestServer(&fakeProvider{name: "claude"}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServeProviderProxy(t *testing.T) {
	srv, _ := newTestServer(
		&fakeProvider{name: "claude", text: "claude says hi"},
		&fakeProvider{name: "gemini", text: "gemini says hi"},
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/providers/claude", `{"prompt":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"claude says hi"}`, rec.Body.String())

	rec = doRequest(t, srv, http.MethodPost, "/api/providers/gemini", `{"prompt":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"gemini says hi"}`, rec.Body.String())
}

func TestServeProviderProxyErrors(t *testing.T) {
	srv, _ := newTestServer(
		&fakeProvider{name: "claude", err: eris.New("529 overloaded")},
		nil, // gemini unconfigured
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/providers/claude", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/providers/claude", `{"prompt":"hello"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "claude")

	rec = doRequest(t, srv, http.MethodPost, "/api/providers/gemini", `{"prompt":"hello"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeResearch(t *testing.T) {
	srv, sess := newTestServer(&fakeProvider{name: "claude", text: testReportJSON}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/research", `{"company":"Stripe"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "Stripe", report.Name)
	assert.NotNil(t, sess.Report())
	assert.Len(t, sess.Sources(), 1)
}

func TestServeResearchBadRequest(t *testing.T) {
	srv, _ := newTestServer(&fakeProvider{name: "claude", text: testReportJSON}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/research", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/research", `{"company":"Stripe","mode":"fast"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServeResearchStrictFailure(t *testing.T) {
	srv, sess := newTestServer(
		&fakeProvider{name: "claude", err: eris.New("down")},
		&fakeProvider{name: "gemini", text: "{}"},
	)

	rec := doRequest(t, srv, http.MethodPost, "/api/research", `{"company":"Stripe","mode":"strict"}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Nil(t, sess.Report())
}

func TestServeDeepDive(t *testing.T) {
	srv, sess := newTestServer(
		&fakeProvider{name: "claude", text: `{"fundingDetails":{"totalRaised":"$9.4B"}}`},
		nil,
	)

	// No report yet.
	rec := doRequest(t, srv, http.MethodPost, "/api/research/funding", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(testReportJSON), &report))
	sess.SetReport(&report)

	// Unknown section.
	rec = doRequest(t, srv, http.MethodPost, "/api/research/revenue", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, srv, http.MethodPost, "/api/research/funding", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, sess.Report().FundingDetails)
	assert.Equal(t, "$9.4B", sess.Report().FundingDetails.TotalRaised)

	// A dive already in flight is rejected.
	require.True(t, sess.Begin(session.SectionTeam))
	rec = doRequest(t, srv, http.MethodPost, "/api/research/team", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestServeDeepDiveCompetitorBody(t *testing.T) {
	srv, sess := newTestServer(
		&fakeProvider{name: "claude", text: `{"competitorDetails":[{"name":"Adyen"}]}`},
		nil,
	)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(testReportJSON), &report))
	sess.SetReport(&report)

	rec := doRequest(t, srv, http.MethodPost, "/api/research/competitors", `{"competitors":["Adyen"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sess.Report().CompetitorDetails, 1)

	sources := sess.Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, []string{"Adyen"}, sources[0].DataPoints)
}

// The selection must survive a chunked request, which carries no
// Content-Length header.
func TestServeDeepDiveChunkedBody(t *testing.T) {
	srv, sess := newTestServer(
		&fakeProvider{name: "claude", text: `{"competitorDetails":[{"name":"Adyen"}]}`},
		nil,
	)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(testReportJSON), &report))
	sess.SetReport(&report)

	req := httptest.NewRequest(http.MethodPost, "/api/research/competitors",
		strings.NewReader(`{"competitors":["Adyen"]}`))
	req.ContentLength = -1
	rec := httptest.NewRecorder()
	srv.routes([]string{"*"}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	sources := sess.Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, []string{"Adyen"}, sources[0].DataPoints)
}

func TestServeDeepDiveInvalidBody(t *testing.T) {
	srv, sess := newTestServer(&fakeProvider{name: "claude"}, nil)

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(testReportJSON), &report))
	sess.SetReport(&report)

	rec := doRequest(t, srv, http.MethodPost, "/api/research/competitors", `{"competitors":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// Researching a second company on the same server starts a fresh session:
// the ledger and deep-dive states of the previous company do not leak.
func TestServeResearchResetsSession(t *testing.T) {
	srv, sess := newTestServer(&fakeProvider{name: "claude", text: testReportJSON}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/research", `{"company":"Stripe"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	srv.primary = &fakeProvider{name: "claude", text: `{"fundingDetails":{"totalRaised":"$9.4B"}}`}
	srv.orchestrator = research.New(srv.primary, nil, sess)
	rec = doRequest(t, srv, http.MethodPost, "/api/research/funding", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, sess.Sources(), 2)

	srv.primary = &fakeProvider{name: "claude", text: `{"name":"Acme","topCompetitors":[]}`}
	srv.orchestrator = research.New(srv.primary, nil, sess)
	rec = doRequest(t, srv, http.MethodPost, "/api/research", `{"company":"Acme"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Acme", sess.Report().Name)
	assert.Nil(t, sess.Report().FundingDetails)

	sources := sess.Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, "Initial analysis of Acme", sources[0].Title)
	assert.Equal(t, session.SectionNotStarted, sess.State(session.SectionFunding))
}

func TestServeReportAndSources(t *testing.T) {
	srv, sess := newTestServer(&fakeProvider{name: "claude"}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/report", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, srv, http.MethodGet, "/api/sources", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	var report model.Report
	require.NoError(t, json.Unmarshal([]byte(testReportJSON), &report))
	sess.SetReport(&report)
	sess.AddSource(model.Source{Type: model.SourceWeb, Title: "Research: Stripe"})

	rec = doRequest(t, srv, http.MethodGet, "/api/report", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Stripe"`)

	rec = doRequest(t, srv, http.MethodGet, "/api/sources", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var sources []model.Source
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sources))
	require.Len(t, sources, 1)
	assert.Equal(t, "Research: Stripe", sources[0].Title)
	assert.NotEmpty(t, sources[0].ID)
}
