package dictionary

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := &Client{
		baseURL:    server.URL,
		httpClient: server.Client(),
	}
	return client, server
}

func TestIsWord_Recognized(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cat", r.URL.Query().Get("page"))
		assert.Equal(t, "parse", r.URL.Query().Get("action"))
		w.Write([]byte(`{"parse":{"title":"cat"}}`))
	})
	defer server.Close()

	known, err := client.IsWord("cat")
	require.NoError(t, err)
	assert.True(t, known)
}

func TestIsWord_MissingPage(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"code":"missingtitle"}}`))
	})
	defer server.Close()

	known, err := client.IsWord("xyzzyqq")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestIsWord_ServerFailureIsAnError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	_, err := client.IsWord("cat")
	require.Error(t, err)
}

func TestIsWord_BadResponseIsAnError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})
	defer server.Close()

	_, err := client.IsWord("cat")
	require.Error(t, err)
}
