package jsonpath

import (
	"errors"
	"testing"

	"github.com/vegasq/flatcat/internal/document"
)

const articleDoc = `{
	"status": "OK",
	"response": {
		"docs": [
			{"web_url": "https://example.com/1", "headline": {"main": "H1"}},
			{"web_url": "https://example.com/2", "headline": {"main": "H2"}}
		],
		"meta": {"hits": 2}
	}
}`

func TestExtract(t *testing.T) {
	doc, err := document.Parse([]byte(articleDoc))
	if err != nil {
		t.Fatalf("failed to parse test document: %v", err)
	}

	t.Run("scalar at path", func(t *testing.T) {
		got, err := Extract(doc, "status")
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if got != "OK" {
			t.Errorf("Extract() = %v, want OK", got)
		}
	})

	t.Run("array at path", func(t *testing.T) {
		got, err := Extract(doc, "response.docs")
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		arr, ok := got.([]any)
		if !ok {
			t.Fatalf("Extract() = %T, want []any", got)
		}
		if len(arr) != 2 {
			t.Errorf("Extract() returned %d docs, want 2", len(arr))
		}
	})

	t.Run("value behind index", func(t *testing.T) {
		got, err := Extract(doc, "response.docs[1].headline.main")
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if got != "H2" {
			t.Errorf("Extract() = %v, want H2", got)
		}
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := Extract(doc, "response.articles")
		var notFound *document.KeyNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("Extract() error = %v, want *KeyNotFoundError", err)
		}
		if notFound.Key != "articles" {
			t.Errorf("missing key = %q, want articles", notFound.Key)
		}
		if notFound.Path != ".response" {
			t.Errorf("failure path = %q, want .response", notFound.Path)
		}
	})

	t.Run("index out of range", func(t *testing.T) {
		_, err := Extract(doc, "response.docs[5]")
		var notFound *document.KeyNotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("Extract() error = %v, want *KeyNotFoundError", err)
		}
		if notFound.Key != "5" {
			t.Errorf("missing index = %q, want 5", notFound.Key)
		}
	})

	t.Run("key lookup in array", func(t *testing.T) {
		_, err := Extract(doc, "response.docs.headline")
		var mismatch *document.TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("Extract() error = %v, want *TypeMismatchError", err)
		}
		if mismatch.Want != "object" || mismatch.Got != "array" {
			t.Errorf("mismatch = want %s got %s, expected object/array", mismatch.Want, mismatch.Got)
		}
	})

	t.Run("index lookup in object", func(t *testing.T) {
		_, err := Extract(doc, "response[0]")
		var mismatch *document.TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("Extract() error = %v, want *TypeMismatchError", err)
		}
		if mismatch.Want != "array" {
			t.Errorf("mismatch want = %s, expected array", mismatch.Want)
		}
	})

	t.Run("key lookup in scalar", func(t *testing.T) {
		_, err := Extract(doc, "status.value")
		var mismatch *document.TypeMismatchError
		if !errors.As(err, &mismatch) {
			t.Fatalf("Extract() error = %v, want *TypeMismatchError", err)
		}
		if mismatch.Got != "string" {
			t.Errorf("mismatch got = %s, expected string", mismatch.Got)
		}
	})

	t.Run("invalid path reported before navigation", func(t *testing.T) {
		if _, err := Extract(doc, "response..docs"); err == nil {
			t.Errorf("Extract() expected parse error for invalid path")
		}
	})
}

func TestExtract_NonASCIIKeys(t *testing.T) {
	doc, err := document.Parse([]byte(`{"café": "ok", "título": {"main": "T1"}}`))
	if err != nil {
		t.Fatalf("failed to parse test document: %v", err)
	}

	tests := []struct {
		name string
		path string
		want any
	}{
		{name: "quoted", path: `"café"`, want: "ok"},
		{name: "unquoted", path: "título.main", want: "T1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(doc, tt.path)
			if err != nil {
				t.Fatalf("Extract(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestNavigate_RootIndex(t *testing.T) {
	doc, err := document.Parse([]byte(articleDoc))
	if err != nil {
		t.Fatalf("failed to parse test document: %v", err)
	}
	docs, err := Extract(doc, "response.docs")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	got, err := Extract(docs, "[0].web_url")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if got != "https://example.com/1" {
		t.Errorf("Extract() = %v, want first web_url", got)
	}
}
