package validation

import (
	"strings"
	"testing"

	"github.com/selah-content-api/internal/models"
)

func checkFields(t *testing.T, errors []ValidationError, wantFields []string) {
	t.Helper()
	for _, wantField := range wantFields {
		found := false
		for _, err := range errors {
			if err.Field == wantField {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected error for field '%s' but not found. Errors: %v", wantField, errors)
		}
	}
}

func TestValidateDate(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		value      string
		wantErrors int
	}{
		{name: "valid date", value: "2025-08-11", wantErrors: 0},
		{name: "leap day", value: "2024-02-29", wantErrors: 0},
		{name: "missing", value: "", wantErrors: 1},
		{name: "wrong separator", value: "2025/08/11", wantErrors: 1},
		{name: "unpadded month", value: "2025-8-11", wantErrors: 1},
		{name: "impossible day", value: "2025-02-30", wantErrors: 1},
		{name: "not a date", value: "tomorrow", wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateDate("date", tt.value)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateDate() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}

func TestValidateCount(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		value      string
		wantCount  int
		wantErrors int
	}{
		{name: "absent applies default", value: "", wantCount: DefaultArticleCount},
		{name: "explicit value", value: "5", wantCount: 5},
		{name: "lower bound", value: "1", wantCount: 1},
		{name: "upper bound", value: "12", wantCount: 12},
		{name: "zero", value: "0", wantErrors: 1},
		{name: "negative", value: "-3", wantErrors: 1},
		{name: "too large", value: "13", wantErrors: 1},
		{name: "not an integer", value: "three", wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, errors := validator.ValidateCount(tt.value)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateCount() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			if tt.wantErrors == 0 && count != tt.wantCount {
				t.Errorf("ValidateCount() = %d, want %d", count, tt.wantCount)
			}
		})
	}
}

func TestValidateTopicAndTheme(t *testing.T) {
	validator := NewValidator()
	validator.SetTopicCache([]string{"ethics", "prayer", "faith-reason"})
	validator.SetThemeCache([]string{"mindfulness", "hope"})

	tests := []struct {
		name       string
		topic      string
		theme      string
		wantErrors int
	}{
		{name: "known keys", topic: "ethics", theme: "mindfulness", wantErrors: 0},
		{name: "hyphenated key", topic: "faith-reason", theme: "hope", wantErrors: 0},
		{name: "unknown keys", topic: "alchemy", theme: "melancholy", wantErrors: 2},
		{name: "missing keys", topic: "", theme: "", wantErrors: 2},
		{name: "bad shape", topic: "Ethics", theme: "mind fulness", wantErrors: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := append(validator.ValidateTopic(tt.topic), validator.ValidateTheme(tt.theme)...)
			if len(errors) != tt.wantErrors {
				t.Errorf("got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}

func TestValidateTopic_NoCacheSkipsExistenceCheck(t *testing.T) {
	validator := NewValidator()

	if errors := validator.ValidateTopic("anything-kebab"); len(errors) != 0 {
		t.Errorf("without a cache only the shape should be checked, got %v", errors)
	}
}

func TestValidateArticleID(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		id         string
		wantErrors int
	}{
		{name: "generated id", id: "ethics-20250811-1", wantErrors: 0},
		{name: "mapping key", id: "ethics-primer", wantErrors: 0},
		{name: "missing", id: "", wantErrors: 1},
		{name: "uppercase", id: "Ethics-20250811-1", wantErrors: 1},
		{name: "path traversal", id: "../etc/passwd", wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateArticleID(tt.id)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateArticleID() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}

func TestValidateImageURL(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		url        string
		wantErrors int
	}{
		{name: "https", url: "https://images.example.com/a.jpg", wantErrors: 0},
		{name: "http", url: "http://images.example.com/a.jpg", wantErrors: 0},
		{name: "query string", url: "https://source.unsplash.com/1600x900/?candle,serene", wantErrors: 0},
		{name: "missing", url: "", wantErrors: 1},
		{name: "relative path", url: "/images/a.jpg", wantErrors: 1},
		{name: "wrong scheme", url: "ftp://example.com/a.jpg", wantErrors: 1},
		{name: "schemeless", url: "example.com/a.jpg", wantErrors: 1},
		{name: "over length cap", url: "https://example.com/" + strings.Repeat("a", 2048), wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateImageURL("url", tt.url)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateImageURL() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}

func TestValidateOverride(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		override   *models.ContentOverride
		wantErrors int
		wantFields []string
	}{
		{
			name:       "title only",
			override:   &models.ContentOverride{Title: "An Edited Title"},
			wantErrors: 0,
		},
		{
			name: "all fields",
			override: &models.ContentOverride{
				Title:   "An Edited Title",
				Excerpt: "A fresh excerpt.",
				Body:    []string{"First paragraph.", "Second paragraph."},
				Tags:    []string{"ethics", "conscience"},
				Quote:   &models.Quote{Text: "A quote.", Author: "Someone"},
			},
			wantErrors: 0,
		},
		{
			name:       "empty override",
			override:   &models.ContentOverride{},
			wantErrors: 1,
			wantFields: []string{"override"},
		},
		{
			name:       "title too long",
			override:   &models.ContentOverride{Title: strings.Repeat("x", 201)},
			wantErrors: 1,
			wantFields: []string{"title"},
		},
		{
			name:       "blank paragraph",
			override:   &models.ContentOverride{Body: []string{"Fine.", "   "}},
			wantErrors: 1,
			wantFields: []string{"body[1]"},
		},
		{
			name:       "too many paragraphs",
			override:   &models.ContentOverride{Body: make13Paragraphs()},
			wantErrors: 1,
			wantFields: []string{"body"},
		},
		{
			name:       "empty tag",
			override:   &models.ContentOverride{Tags: []string{"ethics", ""}},
			wantErrors: 1,
			wantFields: []string{"tags[1]"},
		},
		{
			name:       "quote without text",
			override:   &models.ContentOverride{Quote: &models.Quote{Author: "Someone"}},
			wantErrors: 1,
			wantFields: []string{"quote.text"},
		},
		{
			name: "multiple validation errors",
			override: &models.ContentOverride{
				Title:   strings.Repeat("x", 201),
				Excerpt: strings.Repeat("y", 501),
				Tags:    []string{""},
			},
			wantErrors: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateOverride(tt.override)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateOverride() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
			if tt.wantFields != nil {
				checkFields(t, errors, tt.wantFields)
			}
		})
	}
}

func make13Paragraphs() []string {
	ps := make([]string, 13)
	for i := range ps {
		ps[i] = "A paragraph."
	}
	return ps
}

func TestValidateDigestKind(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		kind       string
		wantErrors int
	}{
		{name: "daily", kind: "daily", wantErrors: 0},
		{name: "weekly", kind: "weekly", wantErrors: 0},
		{name: "monthly", kind: "monthly", wantErrors: 1},
		{name: "empty", kind: "", wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateDigestKind(tt.kind)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateDigestKind() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}

func TestValidateExportFormat(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		format     string
		wantErrors int
	}{
		{name: "empty defaults later", format: "", wantErrors: 0},
		{name: "csv", format: "csv", wantErrors: 0},
		{name: "json", format: "json", wantErrors: 0},
		{name: "xml", format: "xml", wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateExportFormat(tt.format)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateExportFormat() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	validator := NewValidator()

	tests := []struct {
		name       string
		value      string
		wantErrors int
	}{
		{name: "valid email", value: "reader@example.com", wantErrors: 0},
		{name: "subdomain", value: "reader@mail.example.co.uk", wantErrors: 0},
		{name: "missing", value: "", wantErrors: 1},
		{name: "no domain", value: "reader@", wantErrors: 1},
		{name: "no at sign", value: "reader.example.com", wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errors := validator.ValidateEmail("to", tt.value)
			if len(errors) != tt.wantErrors {
				t.Errorf("ValidateEmail() got %d errors, want %d. Errors: %v", len(errors), tt.wantErrors, errors)
			}
		})
	}
}
