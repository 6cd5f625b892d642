package dropbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSharedLink(t *testing.T) {
	link := "https://www.dropbox.com/s/abc123/17123-photo.png?dl=0"
	normalized := NormalizeSharedLink(link)

	assert.Equal(t, "https://dl.dropboxusercontent.com/s/abc123/17123-photo.png?raw=1", normalized)
}

func TestNormalizeSharedLink_Idempotent(t *testing.T) {
	link := "https://www.dropbox.com/s/abc123/17123-photo.png?dl=0"
	once := NormalizeSharedLink(link)
	twice := NormalizeSharedLink(once)

	assert.Equal(t, once, twice)
}

// testClient строит Client, направленный на httptest-сервер.
func testClient(srv *httptest.Server) *Client {
	return &Client{
		httpClient:  srv.Client(),
		accessToken: "test-token",
		apiBase:     srv.URL,
		contentBase: srv.URL,
	}
}

func TestUploadFile_CreatesSharedLink(t *testing.T) {
	var uploadedPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2/files/upload":
			var arg pathArg
			require.NoError(t, json.Unmarshal([]byte(r.Header.Get("Dropbox-API-Arg")), &arg))
			uploadedPath = arg.Path
			json.NewEncoder(w).Encode(uploadResponse{PathDisplay: arg.Path})
		case "/2/sharing/create_shared_link_with_settings":
			json.NewEncoder(w).Encode(sharedLinkResponse{URL: "https://www.dropbox.com/s/abc/photo.png?dl=0"})
		default:
			t.Fatalf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := testClient(srv)
	url, err := client.UploadFile(context.Background(), "/123-photo.png", strings.NewReader("x"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "https://dl.dropboxusercontent.com/s/abc/photo.png?raw=1", url)
	assert.Equal(t, "/123-photo.png", uploadedPath)
}

func TestUploadFile_SharedLinkAlreadyExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2/files/upload":
			json.NewEncoder(w).Encode(uploadResponse{PathDisplay: "/123-photo.png"})
		case "/2/sharing/create_shared_link_with_settings":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(apiError{ErrorSummary: "shared_link_already_exists/metadata/"})
		case "/2/sharing/list_shared_links":
			json.NewEncoder(w).Encode(listSharedLinksResponse{Links: []sharedLinkResponse{
				{URL: "https://www.dropbox.com/s/existing/photo.png?dl=0"},
				{URL: "https://www.dropbox.com/s/second/photo.png?dl=0"},
			}})
		default:
			t.Fatalf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := testClient(srv)
	url, err := client.UploadFile(context.Background(), "/123-photo.png", strings.NewReader("x"), "image/png")

	// берется первая из существующих ссылок
	require.NoError(t, err)
	assert.Equal(t, "https://dl.dropboxusercontent.com/s/existing/photo.png?raw=1", url)
}

func TestUploadFile_SharedLinkExistsButListEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2/files/upload":
			json.NewEncoder(w).Encode(uploadResponse{PathDisplay: "/123-photo.png"})
		case "/2/sharing/create_shared_link_with_settings":
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(apiError{ErrorSummary: "shared_link_already_exists/metadata/"})
		case "/2/sharing/list_shared_links":
			json.NewEncoder(w).Encode(listSharedLinksResponse{})
		}
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.UploadFile(context.Background(), "/123-photo.png", strings.NewReader("x"), "image/png")

	assert.Error(t, err)
}

func TestUploadFile_UploadFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.UploadFile(context.Background(), "/123-photo.png", strings.NewReader("x"), "image/png")

	assert.Error(t, err)
}

func TestUploadFile_OtherSharingErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/2/files/upload":
			json.NewEncoder(w).Encode(uploadResponse{PathDisplay: "/123-photo.png"})
		case "/2/sharing/create_shared_link_with_settings":
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(apiError{ErrorSummary: "path/not_found/"})
		default:
			t.Fatalf("unexpected request to %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	client := testClient(srv)
	_, err := client.UploadFile(context.Background(), "/123-photo.png", strings.NewReader("x"), "image/png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "path/not_found")
}
