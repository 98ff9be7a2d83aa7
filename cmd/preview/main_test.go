package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviepreview/internal/handlers/render"
	"moviepreview/internal/output"
	"moviepreview/internal/services"
	"moviepreview/internal/testutil"
)

func newCatalogServer(t *testing.T) *testutil.MockHTTPServer {
	t.Helper()
	server := testutil.NewMockHTTPServer()
	t.Cleanup(server.Close)
	t.Setenv("CATALOG_BASE_URL", server.URL())
	return server
}

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	err := cmd.ExecuteContext(context.Background())
	return exitCode(err), out.String(), errOut.String()
}

func TestPreviewCommand_Found(t *testing.T) {
	server := newCatalogServer(t)
	server.On("/in/search", testutil.SearchHandler(
		testutil.CatalogResponse(testutil.CatalogAlbum(testutil.LeoCollectionID, testutil.LeoAlbumName)),
		testutil.CatalogResponse(),
	))
	server.On("/in/lookup", testutil.JSONHandler(http.StatusOK, testutil.CatalogResponse(
		testutil.CatalogTrack(testutil.LeoTrackName, testutil.LeoArtistName, testutil.LeoAlbumName, testutil.LeoPreviewURL),
	)))

	code, out, _ := execute(t, "--json", "Leo")

	assert.Equal(t, exitFound, code)
	var body render.PreviewFoundResponse
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.NotNil(t, body.Result)
	assert.Equal(t, services.SourceAlbumLookup, body.Result.Source)
	assert.Equal(t, testutil.LeoPreviewURL, body.Result.PreviewURL)

	// album search then lookup; the song search never runs
	assert.Len(t, server.Requests(), 2)
}

func TestPreviewCommand_JoinsArguments(t *testing.T) {
	server := newCatalogServer(t)
	server.On("/in/search", testutil.SearchHandler(
		testutil.CatalogResponse(),
		testutil.CatalogResponse(testutil.CatalogTrack("Naa Ready", "Anirudh", "", testutil.FallbackPreviewURL)),
	))

	code, out, _ := execute(t, "--no-color", "Leo", "Naa", "Ready")

	assert.Equal(t, exitFound, code)
	assert.Contains(t, out, "✅ Found (song_search)")
	requests := server.Requests()
	require.NotEmpty(t, requests)
	assert.Equal(t, "Leo Naa Ready original motion picture soundtrack", requests[0].URL.Query().Get("term"))
}

func TestPreviewCommand_NotFound(t *testing.T) {
	server := newCatalogServer(t)
	server.On("/in/search", testutil.JSONHandler(http.StatusOK, testutil.CatalogResponse()))

	code, out, _ := execute(t, "--no-color", "Nothing")

	assert.Equal(t, exitNotFound, code)
	assert.Contains(t, out, "No preview found")
}

func TestPreviewCommand_CatalogFailure(t *testing.T) {
	server := newCatalogServer(t)
	server.On("/in/search", testutil.RawHandler(http.StatusInternalServerError, "boom"))

	code, out, errOut := execute(t, "--no-color", "Leo")

	assert.Equal(t, exitFailure, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "Checklist:")
}

func TestPreviewCommand_Timeout(t *testing.T) {
	server := newCatalogServer(t)
	server.On("/in/search", testutil.SlowHandler(2*time.Second))

	code, out, _ := execute(t, "--json", "--timeout", "50ms", "Leo")

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, out, render.ErrorCodeTimeout)
}

func TestPreviewCommand_Storefront(t *testing.T) {
	server := newCatalogServer(t)
	server.On("/us/search", testutil.JSONHandler(http.StatusOK, testutil.CatalogResponse()))

	code, _, _ := execute(t, "--storefront", "us", "Leo")

	assert.Equal(t, exitNotFound, code)
	for _, req := range server.Requests() {
		assert.True(t, strings.HasPrefix(req.URL.Path, "/us/"), req.URL.Path)
	}
}

func TestPreviewCommand_UsageErrors(t *testing.T) {
	newCatalogServer(t)

	code, _, _ := execute(t, "--timeout", "0s", "Leo")
	assert.Equal(t, exitUsage, code)

	code, _, _ = execute(t, "--unknown-flag", "Leo")
	assert.Equal(t, exitUsage, code)

	code, _, _ = execute(t, "   ")
	assert.Equal(t, exitUsage, code)
}

func TestInteractive(t *testing.T) {
	server := newCatalogServer(t)
	server.On("/in/search", testutil.JSONHandler(http.StatusOK, testutil.CatalogResponse()))

	resolver := services.NewPreviewResolutionService(services.NewCatalogService(services.CatalogOptions{
		BaseURL: server.URL(),
		Timeout: time.Second,
	}))

	var out, errOut bytes.Buffer
	o := output.New(output.Options{NoColor: true, Out: &out, Err: &errOut})

	err := interactive(context.Background(), resolver, o, strings.NewReader("\nNothing\nexit\nLeo\n"))

	require.NoError(t, err)
	assert.Contains(t, out.String(), render.EmptyQueryMessage)
	assert.Contains(t, out.String(), "No preview found")
	// "Leo" comes after exit and is never searched
	assert.Len(t, server.Requests(), 2)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitFound, exitCode(nil))
	assert.Equal(t, exitNotFound, exitCode(&exitError{code: exitNotFound}))
	assert.Equal(t, exitUsage, exitCode(errors.New("unknown flag")))
}
