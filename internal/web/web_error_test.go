package web_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/puppybowl/internal/factory"
	"github.com/mcoot/puppybowl/internal/testutil"
	"github.com/mcoot/puppybowl/internal/web"
)

func TestUpstreamFailureRendersEmptyRosterWithFlash(t *testing.T) {
	ts := newWebTestServer(t)
	ts.api.FailWith(http.StatusInternalServerError)

	doc := ts.home()

	assertContainsElement(t, doc, "#all-players-container")
	assertNotContainsElement(t, doc, ".player-card")
	assertContainsText(t, doc, "#flash", "Trouble fetching players")
	assertContainsElement(t, doc, "#new-player-form")
}

func TestMalformedRosterRendersEmpty(t *testing.T) {
	ts := newWebTestServer(t)
	ts.api.OverrideList(`{"success":true,"data":{"players":"not a list"}}`)

	doc := ts.home()

	assertNotContainsElement(t, doc, ".player-card")
	assertNotContainsElement(t, doc, "#flash")
}

func TestFlashIsShownOnce(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.post("/players/9/remove", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)

	doc := parseHTML(ts.followRedirect(rr).Body)
	assertContainsElement(t, doc, "#flash")

	doc = ts.home()
	assertNotContainsElement(t, doc, "#flash")
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestWrongMethodIsRejected(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/players/9/remove")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newWebTestServer(t)
	ts.home()

	rr := ts.get("/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `puppybowl_http_requests_total{method="GET",route="/",status="200"} 1`)
	assert.Contains(t, rr.Body.String(), `puppybowl_upstream_requests_total{operation="list",outcome="success"} 1`)
}

// TestStaticFilesServed verifies the stylesheet linked from every page is served
func TestStaticFilesServed(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)
	app := factory.NewTestApp(api.URL())
	t.Cleanup(func() { _ = app.Close() })

	router := web.NewRouter(web.RouterConfig{
		Logger:           testutil.NopLogger(),
		RosterController: app.RosterController,
		ViewerService:    app.ViewerService,
		Hub:              app.Hub,
		StaticDir:        "static",
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/css/style.css", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), ".player-card")
}
