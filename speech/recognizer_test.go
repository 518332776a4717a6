package speech

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relayworks/voicerelay/audio"
)

func testWAV(t *testing.T) []byte {
	t.Helper()
	samples := make([]int16, audio.DefaultSampleRate*2) // 2 seconds
	for i := range samples {
		samples[i] = int16(i % 2000)
	}
	wav, err := audio.EncodeWAV(samples, audio.DefaultSampleRate)
	require.NoError(t, err)
	return wav
}

func transcriptionServer(t *testing.T, status int, text string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		require.NoError(t, r.ParseMultipartForm(32<<20))
		_, _, err := r.FormFile("file")
		require.NoError(t, err, "transcription request must carry a file part")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"text": text})
	}))
}

func newTestRecognizer(t *testing.T, primaryURL string, offline *OfflineClient) Recognizer {
	t.Helper()
	return NewRecognizer("test-key", primaryURL+"/v1/", "en", http.Client{}, offline)
}

func TestRecognizeSuccess(t *testing.T) {
	srv := transcriptionServer(t, http.StatusOK, "hello there", nil)
	defer srv.Close()

	r := newTestRecognizer(t, srv.URL, nil)

	result := r.Recognize(context.Background(), testWAV(t))

	require.True(t, result.IsOK())
	assert.Equal(t, "hello there", result.Text)
}

func TestRecognizeEmptyTextMeansNoSpeech(t *testing.T) {
	srv := transcriptionServer(t, http.StatusOK, "   ", nil)
	defer srv.Close()

	r := newTestRecognizer(t, srv.URL, nil)

	result := r.Recognize(context.Background(), testWAV(t))

	assert.Equal(t, FailureNoSpeech, result.Failure)
}

func TestRecognizeServiceFailureWithoutFallback(t *testing.T) {
	srv := transcriptionServer(t, http.StatusBadRequest, "", nil)
	defer srv.Close()

	r := newTestRecognizer(t, srv.URL, nil)

	result := r.Recognize(context.Background(), testWAV(t))

	assert.Equal(t, FailureServiceUnavailable, result.Failure)
}

func TestRecognizeFallsBackToOffline(t *testing.T) {
	primary := transcriptionServer(t, http.StatusBadRequest, "", nil)
	defer primary.Close()

	offlineSrv := transcriptionServer(t, http.StatusOK, "offline transcript", nil)
	defer offlineSrv.Close()

	offline := NewOfflineClient(offlineSrv.URL, nil)
	r := newTestRecognizer(t, primary.URL, offline)

	result := r.Recognize(context.Background(), testWAV(t))

	require.True(t, result.IsOK())
	assert.Equal(t, "offline transcript", result.Text)
}

func TestRecognizeOfflineNotUsedWhenPrimarySucceeds(t *testing.T) {
	primary := transcriptionServer(t, http.StatusOK, "primary transcript", nil)
	defer primary.Close()

	var offlineHits atomic.Int32
	offlineSrv := transcriptionServer(t, http.StatusOK, "offline transcript", &offlineHits)
	defer offlineSrv.Close()

	offline := NewOfflineClient(offlineSrv.URL, nil)
	r := newTestRecognizer(t, primary.URL, offline)

	result := r.Recognize(context.Background(), testWAV(t))

	require.True(t, result.IsOK())
	assert.Equal(t, "primary transcript", result.Text)
	assert.Zero(t, offlineHits.Load(), "offline path runs only after the primary is unavailable")
}

func TestRecognizeBothPathsDownStaysUnavailable(t *testing.T) {
	primary := transcriptionServer(t, http.StatusBadRequest, "", nil)
	defer primary.Close()

	offlineSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer offlineSrv.Close()

	offline := NewOfflineClient(offlineSrv.URL, nil)
	r := newTestRecognizer(t, primary.URL, offline)

	result := r.Recognize(context.Background(), testWAV(t))

	assert.Equal(t, FailureServiceUnavailable, result.Failure)
}

func TestRecognizeTrimsCalibrationWindow(t *testing.T) {
	var receivedSize int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(32<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		receivedSize = header.Size
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": "ok"})
	}))
	defer srv.Close()

	wav := testWAV(t)
	r := newTestRecognizer(t, srv.URL, nil)

	result := r.Recognize(context.Background(), wav)
	require.True(t, result.IsOK())

	windowSamples := audio.DefaultSampleRate / 2 // 0.5s
	assert.Equal(t, int64(len(wav)-windowSamples*2), receivedSize,
		"the calibration window must be discarded before recognition")
}

func TestFailureKindStrings(t *testing.T) {
	assert.Equal(t, "none", FailureNone.String())
	assert.Equal(t, "no_speech", FailureNoSpeech.String())
	assert.Equal(t, "service_unavailable", FailureServiceUnavailable.String())
	assert.Equal(t, "download_failed", FailureDownload.String())
	assert.Equal(t, "transcode_failed", FailureTranscode.String())
}
