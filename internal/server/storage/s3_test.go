package storage

import (
	"testing"

	sc "github.com/dmitrijs2005/flowspace/internal/server/config"
)

func TestPublicURL_FromEndpoint(t *testing.T) {
	s := NewS3Store(&sc.Config{
		S3BaseEndpoint: "http://127.0.0.1:9000/",
		S3Bucket:       "profilepicture",
	})

	got := s.PublicURL("u1_abc.jpg")
	want := "http://127.0.0.1:9000/profilepicture/u1_abc.jpg"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}

func TestPublicURL_WithBaseOverride(t *testing.T) {
	s := NewS3Store(&sc.Config{
		S3BaseEndpoint:  "http://127.0.0.1:9000/",
		S3Bucket:        "profilepicture",
		S3PublicURLBase: "https://cdn.example.com/avatars/",
	})

	got := s.PublicURL("u1_abc.jpg")
	want := "https://cdn.example.com/avatars/u1_abc.jpg"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"http://127.0.0.1:9000/profilepicture/u1_abc.jpg", "u1_abc.jpg"},
		{"u1_abc.jpg", "u1_abc.jpg"},
		{"https://cdn.example.com/a/b/c.png", "c.png"},
	}
	for _, tc := range tests {
		if got := KeyFromURL(tc.url); got != tc.want {
			t.Fatalf("KeyFromURL(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}
