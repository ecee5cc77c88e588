package source

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"ados/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func testConfig() config.Config {
	return config.Config{FetchTimeoutMs: 1000, FetchRetries: 3}
}

func TestFetchTextRetriesOnServerError(t *testing.T) {
	attempt := 0
	f := NewFetcher(testConfig())
	f.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			attempt++
			if attempt == 1 {
				return &http.Response{
					StatusCode: http.StatusServiceUnavailable,
					Body:       io.NopCloser(strings.NewReader("busy")),
					Header:     make(http.Header),
				}, nil
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("a,b\n1,2\n")),
				Header:     make(http.Header),
			}, nil
		}),
	}

	text, err := f.FetchText(context.Background(), "https://example.test/sheet.csv")
	if err != nil {
		t.Fatal(err)
	}
	if attempt != 2 || !strings.HasPrefix(text, "a,b") {
		t.Fatalf("attempt=%d text=%q", attempt, text)
	}
}

func TestFetchTextNonSuccessSurfacesStatus(t *testing.T) {
	f := NewFetcher(testConfig())
	f.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(strings.NewReader("gone")),
				Header:     make(http.Header),
			}, nil
		}),
	}

	_, err := f.FetchText(context.Background(), "https://example.test/sheet.csv")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("err=%v", err)
	}
}

func TestFetchTextRejectsBadURL(t *testing.T) {
	f := NewFetcher(testConfig())
	if _, err := f.FetchText(context.Background(), "ftp://example.test/data"); err == nil {
		t.Fatal("expected scheme error")
	}
}
