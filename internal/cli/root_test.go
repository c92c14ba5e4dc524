package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/puppybowl/internal/cards"
	"github.com/mcoot/puppybowl/internal/rosterapi"
	"github.com/mcoot/puppybowl/internal/testutil"
)

// run executes the root command against the fake API and returns stdout
func run(t *testing.T, api *testutil.FakeRosterAPI, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--api", api.URL()}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestPlayersListText(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)
	api.Seed(testutil.PlayerFixture(1, "Fido"), testutil.PlayerFixture(2, "Rex"))

	out, err := run(t, api, "players", "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Fido (#1)")
	assert.Contains(t, out, "Rex (#2)")
	assert.Contains(t, out, "Beagle")
	assert.NotContains(t, out, "bench", "status is hidden by default")
	assert.Contains(t, out, "use --details")
}

func TestPlayersListDetailsRevealsEverything(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)
	api.Seed(testutil.PlayerFixture(1, "Fido"))

	out, err := run(t, api, "-o", "json", "players", "list", "--details")
	require.NoError(t, err)

	var cs []cards.Card
	require.NoError(t, json.Unmarshal([]byte(out), &cs))
	require.Len(t, cs, 1)
	assert.True(t, cs[0].Revealed)
	assert.Len(t, cs[0].HiddenFields(), 3)
	assert.Len(t, cs[0].VisibleFields(), 8)
}

func TestPlayersListEmpty(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)

	out, err := run(t, api, "players", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No players on the roster")
}

func TestPlayersListBareEnvelope(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)
	api.UseBareEnvelope()
	api.Seed(testutil.PlayerFixture(3, "Biscuit"))

	out, err := run(t, api, "--envelope", "bare", "players", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Biscuit (#3)")
}

func TestPlayersGet(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)
	api.Seed(testutil.PlayerFixture(5, "Max"))

	out, err := run(t, api, "-o", "json", "players", "get", "5")
	require.NoError(t, err)

	var p PlayerResult
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "5", p.ID)
	assert.Equal(t, "Max", p.Name)
	assert.Equal(t, "bench", p.Status)
}

func TestPlayersGetNotFound(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)

	_, err := run(t, api, "players", "get", "404")
	require.Error(t, err)
	assert.ErrorIs(t, err, rosterapi.ErrNotFound)
}

func TestPlayersAdd(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)

	out, err := run(t, api, "-o", "json", "players", "add",
		"--name", "Luna", "--breed", "Husky", "--team-id", "4", "--cohort-id", "2302")
	require.NoError(t, err)

	var p PlayerResult
	require.NoError(t, json.Unmarshal([]byte(out), &p))
	assert.Equal(t, "1001", p.ID)
	assert.Equal(t, "Luna", p.Name)

	posts := api.RequestsFor(http.MethodPost)
	require.Len(t, posts, 1)
	body := posts[0].JSONBody()
	assert.Equal(t, "4", body["teamId"])
	assert.Equal(t, "Husky", body["breed"])
}

func TestPlayersAddRequiresName(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)

	_, err := run(t, api, "players", "add", "--breed", "Husky")
	require.Error(t, err)
	assert.Empty(t, api.Requests())
}

func TestPlayersRemove(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)
	api.Seed(testutil.PlayerFixture(1, "Fido"), testutil.PlayerFixture(2, "Rex"))

	out, err := run(t, api, "players", "remove", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed player #1")
	assert.Equal(t, []string{"2"}, api.PlayerIDs())
}

func TestUpstreamFailurePropagates(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)
	api.FailWith(http.StatusInternalServerError)

	_, err := run(t, api, "players", "list")
	require.Error(t, err)

	upstream, ok := rosterapi.AsError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
}

func TestHealth(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)
	api.Seed(testutil.PlayerFixture(1, "Fido"))

	out, err := run(t, api, "-o", "json", "health")
	require.NoError(t, err)

	var h HealthResult
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Equal(t, "ok", h.Status)
	assert.Equal(t, 1, h.Players)
	assert.Equal(t, api.URL(), h.API)
}

func TestInvalidFlagsAreRejected(t *testing.T) {
	api := testutil.NewFakeRosterAPI(t)

	_, err := run(t, api, "--envelope", "wrapped", "players", "list")
	require.Error(t, err)

	_, err = run(t, api, "-o", "yaml", "players", "list")
	require.Error(t, err)

	assert.Empty(t, api.Requests())
}

func TestConfigBaseURL(t *testing.T) {
	cfg := &Config{Cohort: "2109-UNF-HY-WEB-PT"}
	assert.Equal(t, rosterapi.URLForCohort("2109-UNF-HY-WEB-PT"), cfg.BaseURL())

	cfg.APIURL = "http://localhost:9999/api/x/players"
	assert.Equal(t, "http://localhost:9999/api/x/players", cfg.BaseURL())
}
