package services

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestYOLODetectorPostsImageAndParsesFoods(t *testing.T) {
	image := []byte("fake-jpeg-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/detect" {
			t.Errorf("path = %q, want /detect", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("not a multipart request: %v", err)
		}
		f, _, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("missing image field: %v", err)
		}
		defer f.Close()
		got, _ := io.ReadAll(f)
		if !bytes.Equal(got, image) {
			t.Error("uploaded bytes do not match the capture")
		}
		w.Write([]byte(`{"foods": ["apple", "banana"]}`))
	}))
	defer srv.Close()

	d := NewYOLODetector(srv.URL)
	foods, err := d.DetectFoods(context.Background(), image)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(foods) != 2 || foods[0] != "apple" || foods[1] != "banana" {
		t.Errorf("foods = %v", foods)
	}
}

func TestYOLODetectorEmptyDetection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods": []}`))
	}))
	defer srv.Close()

	d := NewYOLODetector(srv.URL)
	foods, err := d.DetectFoods(context.Background(), []byte("img"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(foods) != 0 {
		t.Errorf("foods = %v, want none", foods)
	}
}

func TestYOLODetectorSurfacesServerErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	d := NewYOLODetector(srv.URL)
	if _, err := d.DetectFoods(context.Background(), []byte("img")); err == nil {
		t.Fatal("expected an error for a 503 response")
	}
}
