package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestStatusPage(t *testing.T) {
	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("got method %s, want GET", r.Method)
		}
		if r.URL.Path != "/" {
			t.Errorf("got path %s, want /", r.URL.Path)
		}
		gotAccept = r.Header.Get("Accept")
		fmt.Fprint(w, "<html>ok</html>")
	}))
	defer srv.Close()

	client, err := NewModemClient(srv.URL, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	body, err := client.StatusPage()
	if err != nil {
		t.Fatal(err)
	}
	if string(body) != "<html>ok</html>" {
		t.Errorf("got body %q", body)
	}
	if gotAccept != "text/html" {
		t.Errorf("got Accept header %q, want text/html", gotAccept)
	}
}

func TestStatusPageNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewModemClient(srv.URL, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.StatusPage(); err == nil {
		t.Error("expected error for 503 response")
	}
}

func TestReboot(t *testing.T) {
	tests := []struct {
		restore  bool
		wantBody string
	}{
		{false, "Rebooting=1&RestoreFactoryDefault=0"},
		{true, "Rebooting=1&RestoreFactoryDefault=1"},
	}

	for _, tt := range tests {
		var gotPath, gotBody, gotContentType string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotContentType = r.Header.Get("Content-Type")
			b, _ := io.ReadAll(r.Body)
			gotBody = string(b)
		}))

		client, err := NewModemClient(srv.URL, time.Second)
		if err != nil {
			t.Fatal(err)
		}
		if err := client.Reboot(tt.restore); err != nil {
			t.Fatal(err)
		}
		if gotPath != "/goform/RgConfiguration.pl" {
			t.Errorf("got path %s, want /goform/RgConfiguration.pl", gotPath)
		}
		if gotBody != tt.wantBody {
			t.Errorf("restore=%v: got body %q, want %q", tt.restore, gotBody, tt.wantBody)
		}
		if gotContentType != "application/x-www-form-urlencoded" {
			t.Errorf("got Content-Type %q", gotContentType)
		}
		srv.Close()
	}
}

func TestNewModemClientBareAddress(t *testing.T) {
	client, err := NewModemClient("192.168.100.1", time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if got := client.resolve("/"); got != "http://192.168.100.1/" {
		t.Errorf("got root URL %q", got)
	}
	if got := client.resolve("goform/RgConfiguration.pl"); got != "http://192.168.100.1/goform/RgConfiguration.pl" {
		t.Errorf("got reboot URL %q", got)
	}
}
