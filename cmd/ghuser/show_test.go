package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jointwt/ghuser/client"
	"github.com/jointwt/ghuser/types"
)

func TestShow(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"login":"octocat","html_url":"https://github.com/octocat","bio":"hi"}`))
	})
	mux.HandleFunc("/users/octocat/followers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"login":"hubot"},{"login":"defunkt"}]`))
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cli, err := client.NewClient(client.WithURI(srv.URL))
	require.NoError(t, err)

	t.Run("Text", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, show(cli, "octocat", false, buf))

		out := buf.String()
		assert.Contains(t, out, "octocat <https://github.com/octocat>")
		assert.Contains(t, out, "Followers (2):")
		assert.Contains(t, out, "@hubot")
		assert.Contains(t, out, "Repositories (0, 0 stars):")
		assert.Contains(t, out, "(warning: repositories could not be retrieved)")
	})

	t.Run("JSON", func(t *testing.T) {
		buf := &bytes.Buffer{}
		require.NoError(t, show(cli, "octocat", true, buf))

		res, err := types.NewCompositeResponse(buf)
		require.NoError(t, err)
		assert.Equal(t, "octocat", res.User.Profile.Login)
		assert.Equal(t, []string{"hubot", "defunkt"}, res.User.Followers.Logins())
		assert.Empty(t, res.User.Repositories)
		assert.Equal(t, []string{"repositories"}, res.Degraded)
	})
}

func TestPrintComposite(t *testing.T) {
	buf := &bytes.Buffer{}
	PrintComposite(buf, types.NewCompositeUser(
		types.UnknownProfile(),
		nil,
		types.Repositories{{Name: "big", Owner: types.Owner{Login: "x"}, Stars: 1234, Fork: true}},
	))

	out := buf.String()
	assert.Contains(t, out, "???\n")
	assert.Contains(t, out, "Repositories (1, 1,234 stars):")
	assert.Contains(t, out, "x/big ★1,234 (fork)")
}
