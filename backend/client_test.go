package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"
	"time"

	"lightdeck/panel"
)

func TestSelectSendsIndex(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/select" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		got = append(got, r.URL.Query().Get("pattern"))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < panel.NumPatterns; i++ {
		if err := c.Select(context.Background(), i); err != nil {
			t.Fatalf("Select(%d): %v", i, err)
		}
	}
	for i, v := range got {
		if v != strconv.Itoa(i) {
			t.Fatalf("request %d carried pattern=%q", i, v)
		}
	}
	if len(got) != panel.NumPatterns {
		t.Fatalf("sent %d requests, want %d", len(got), panel.NumPatterns)
	}
}

func TestSavePostsJSON(t *testing.T) {
	var body []byte
	var contentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/save" {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	sub := panel.Submission{Name: "dusk", Stages: [][]int{{1, 2, 3, 4}, {255, 128, 0, 9}}}
	if err := c.Save(context.Background(), sub); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if contentType != "application/json" {
		t.Fatalf("Content-Type = %q", contentType)
	}
	var decoded panel.Submission
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("decode body %q: %v", body, err)
	}
	if !reflect.DeepEqual(decoded, sub) {
		t.Fatalf("body = %+v, want %+v", decoded, sub)
	}
}

func TestNon2xxIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL)
	err := c.Select(context.Background(), 1)
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("err = %v, want ErrRejected", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Status != http.StatusServiceUnavailable || se.Op != "select" {
		t.Fatalf("StatusError = %+v", se)
	}
	if errors.Is(err, ErrTransport) {
		t.Fatal("rejection reported as transport failure")
	}
}

func TestUnreachableIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, _ := NewClient(url)
	err := c.Save(context.Background(), panel.Submission{Name: "x", Stages: [][]int{{0}}})
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
}

func TestTimeoutIsTransport(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, _ := NewClient(srv.URL, WithTimeout(50*time.Millisecond))
	if err := c.Select(context.Background(), 0); !errors.Is(err, ErrTransport) {
		t.Fatalf("err = %v, want ErrTransport", err)
	}
}

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"192.168.4.1", "http://192.168.4.1", false},
		{"lightdeck.local:8080", "http://lightdeck.local:8080", false},
		{"https://dev.example/panel", "https://dev.example/panel", false},
		{"", "", true},
		{"ftp://host", "", true},
		{"http://", "", true},
	}
	for _, tt := range tests {
		u, err := ParseBaseURL(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseBaseURL(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && u.String() != tt.want {
			t.Errorf("ParseBaseURL(%q) = %q, want %q", tt.in, u.String(), tt.want)
		}
	}
}

func TestBasePathIsKept(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL + "/device/")
	if err := c.Select(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	if path != "/device/select" {
		t.Fatalf("path = %q, want /device/select", path)
	}
}

func TestHTTPSWithCustomClient(t *testing.T) {
	var hits int
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer srv.Close()

	// The default client rejects the test certificate.
	plain, err := NewClient(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if err := plain.Select(context.Background(), 0); !errors.Is(err, ErrTransport) {
		t.Fatalf("untrusted cert: err = %v, want ErrTransport", err)
	}

	c, err := NewClient(srv.URL, WithHTTPClient(srv.Client()), WithTimeout(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Select(context.Background(), 1); err != nil {
		t.Fatalf("Select over https: %v", err)
	}
	if hits != 1 {
		t.Fatalf("hits = %d, want 1", hits)
	}
}
