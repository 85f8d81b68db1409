package collect

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetchManifest(t *testing.T) {
	tests := []struct {
		name       string
		mockStatus int
		mockBody   string
		wantErr    bool
		errMsg     string
	}{
		{
			name:       "full manifest",
			mockStatus: 200,
			mockBody:   `{"title":"Block pin","name":"pin","id":"joodo.block-pin","description":"Pin blocks","author":"Joodo","repo":"joodo/logseq-plugin-pin","version":"1.0.0","icon":"icon.png","effect":true}`,
			wantErr:    false,
		},
		{
			name:       "sparse manifest",
			mockStatus: 200,
			mockBody:   `{"title":"Block pin"}`,
			wantErr:    false,
		},
		{
			name:       "manifest not found",
			mockStatus: 404,
			mockBody:   `404: Not Found`,
			wantErr:    true,
			errMsg:     "failed to fetch manifest.json",
		},
		{
			name:       "malformed manifest",
			mockStatus: 200,
			mockBody:   `{title: Block pin`,
			wantErr:    true,
			errMsg:     "failed to parse manifest.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				w.WriteHeader(tt.mockStatus)
				w.Write([]byte(tt.mockBody))
			}))
			defer server.Close()

			client := NewClient(testOptions())
			client.SetRawBaseURL(server.URL)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			got, err := client.FetchManifest(ctx, "block-pin")
			if (err != nil) != tt.wantErr {
				t.Errorf("FetchManifest() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if gotPath != "/test-owner/test-repo/master/packages/block-pin/manifest.json" {
				t.Errorf("FetchManifest() requested path = %v, want /test-owner/test-repo/master/packages/block-pin/manifest.json", gotPath)
			}

			if tt.wantErr {
				if got != nil {
					t.Errorf("FetchManifest() = %+v, want nil on error", got)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("FetchManifest() error = %v, expected to contain %q", err, tt.errMsg)
				}
				if !errors.Is(err, &CollectError{Type: ErrorTypeManifest}) {
					t.Errorf("FetchManifest() error type = %T, want manifest CollectError", err)
				}
				return
			}

			if got == nil {
				t.Fatal("FetchManifest() returned nil manifest without error")
			}
			if got.Title != "Block pin" {
				t.Errorf("FetchManifest().Title = %v, want %v", got.Title, "Block pin")
			}
		})
	}
}

func TestFetchManifestFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte(`{"title":"Block pin","description":"Add \"Paste as pin\" shortcut for pdf and editor blocks.","author":"Joodo <wyattliang@gmail.com>","repo":"joodo/logseq-plugin-pin","icon":"icon.png","effect":true}`))
	}))
	defer server.Close()

	client := NewClient(testOptions())
	client.SetRawBaseURL(server.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	got, err := client.FetchManifest(ctx, "block-pin")
	if err != nil {
		t.Fatalf("FetchManifest() error = %v", err)
	}

	if got.Description != `Add "Paste as pin" shortcut for pdf and editor blocks.` {
		t.Errorf("FetchManifest().Description = %v", got.Description)
	}
	if got.Author != "Joodo <wyattliang@gmail.com>" {
		t.Errorf("FetchManifest().Author = %v", got.Author)
	}
	if got.Repo != "joodo/logseq-plugin-pin" {
		t.Errorf("FetchManifest().Repo = %v", got.Repo)
	}
	if got.Icon != "icon.png" {
		t.Errorf("FetchManifest().Icon = %v", got.Icon)
	}
	if !got.Effect {
		t.Error("FetchManifest().Effect = false, want true")
	}
	if got.Name != "" {
		t.Errorf("FetchManifest().Name = %v, want empty for undeclared field", got.Name)
	}
	if got.Version != "" {
		t.Errorf("FetchManifest().Version = %v, want empty for undeclared field", got.Version)
	}
}
