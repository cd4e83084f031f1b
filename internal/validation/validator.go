package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/selah-content-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Article count bounds for list requests.
const (
	DefaultArticleCount = 3
	MaxArticleCount     = 12
)

// Override payload caps. Generated content never approaches these; they
// exist so a hand-written override cannot grow without bound.
const (
	maxTitleLength     = 200
	maxExcerptLength   = 500
	maxBodyParagraphs  = 12
	maxParagraphLength = 2000
	maxTags            = 8
	maxTagLength       = 40
	maxQuoteLength     = 500
	maxAuthorLength    = 120
	maxURLLength       = 2048
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator provides validation methods
type Validator struct {
	topicCache map[string]bool
	themeCache map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		topicCache: make(map[string]bool),
		themeCache: make(map[string]bool),
	}
}

// SetTopicCache sets the known topic keys for existence validation
func (v *Validator) SetTopicCache(keys []string) {
	for _, k := range keys {
		v.topicCache[k] = true
	}
}

// SetThemeCache sets the known theme keys for existence validation
func (v *Validator) SetThemeCache(keys []string) {
	for _, k := range keys {
		v.themeCache[k] = true
	}
}

// ValidateDate validates an ISO calendar date parameter
func (v *Validator) ValidateDate(field, value string) []ValidationError {
	var errors []ValidationError

	if value == "" {
		errors = append(errors, ValidationError{Field: field, Message: field + " is required"})
	} else if _, err := time.Parse("2006-01-02", value); err != nil {
		errors = append(errors, ValidationError{Field: field, Message: "invalid date, expected YYYY-MM-DD", Value: value})
	}

	return errors
}

// ValidateCount validates the article count parameter, applying the
// default when the parameter is absent
func (v *Validator) ValidateCount(value string) (int, []ValidationError) {
	if value == "" {
		return DefaultArticleCount, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, []ValidationError{{Field: "count", Message: "count must be an integer", Value: value}}
	}
	if n < 1 || n > MaxArticleCount {
		return 0, []ValidationError{{Field: "count", Message: fmt.Sprintf("count must be between 1 and %d", MaxArticleCount), Value: value}}
	}

	return n, nil
}

// ValidateTopic validates a topic key
func (v *Validator) ValidateTopic(key string) []ValidationError {
	var errors []ValidationError

	if key == "" {
		errors = append(errors, ValidationError{Field: "topic", Message: "topic is required"})
	} else if !slugRegex.MatchString(key) {
		errors = append(errors, ValidationError{Field: "topic", Message: "topic must be kebab-case (lowercase letters, numbers, hyphens)", Value: key})
	} else if len(v.topicCache) > 0 && !v.topicCache[key] {
		errors = append(errors, ValidationError{Field: "topic", Message: "unknown topic", Value: key})
	}

	return errors
}

// ValidateTheme validates a reflection theme key
func (v *Validator) ValidateTheme(key string) []ValidationError {
	var errors []ValidationError

	if key == "" {
		errors = append(errors, ValidationError{Field: "theme", Message: "theme is required"})
	} else if !slugRegex.MatchString(key) {
		errors = append(errors, ValidationError{Field: "theme", Message: "theme must be kebab-case (lowercase letters, numbers, hyphens)", Value: key})
	} else if len(v.themeCache) > 0 && !v.themeCache[key] {
		errors = append(errors, ValidationError{Field: "theme", Message: "unknown theme", Value: key})
	}

	return errors
}

// ValidateArticleID validates an article ID parameter. Both generated IDs
// and mapping keys are kebab-case, so one shape check covers both.
func (v *Validator) ValidateArticleID(id string) []ValidationError {
	var errors []ValidationError

	if id == "" {
		errors = append(errors, ValidationError{Field: "id", Message: "id is required"})
	} else if !slugRegex.MatchString(id) {
		errors = append(errors, ValidationError{Field: "id", Message: "id must be kebab-case (lowercase letters, numbers, hyphens)", Value: id})
	}

	return errors
}

// ValidateImageURL validates an override image URL
func (v *Validator) ValidateImageURL(field, raw string) []ValidationError {
	var errors []ValidationError

	if raw == "" {
		errors = append(errors, ValidationError{Field: field, Message: field + " is required"})
		return errors
	}
	if len(raw) > maxURLLength {
		errors = append(errors, ValidationError{Field: field, Message: fmt.Sprintf("%s exceeds maximum length of %d", field, maxURLLength)})
		return errors
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errors = append(errors, ValidationError{Field: field, Message: "must be an absolute http or https URL", Value: raw})
	}

	return errors
}

// ValidateOverride validates a content override payload
func (v *Validator) ValidateOverride(o *models.ContentOverride) []ValidationError {
	var errors []ValidationError

	// An all-empty override would persist as a no-op; clearing is a
	// separate operation.
	if o.Empty() {
		errors = append(errors, ValidationError{Field: "override", Message: "override must set at least one field"})
		return errors
	}

	// Validate title
	if utf8.RuneCountInString(o.Title) > maxTitleLength {
		errors = append(errors, ValidationError{Field: "title", Message: fmt.Sprintf("title exceeds maximum of %d characters", maxTitleLength)})
	}

	// Validate excerpt
	if utf8.RuneCountInString(o.Excerpt) > maxExcerptLength {
		errors = append(errors, ValidationError{Field: "excerpt", Message: fmt.Sprintf("excerpt exceeds maximum of %d characters", maxExcerptLength)})
	}

	// Validate body paragraphs
	if len(o.Body) > maxBodyParagraphs {
		errors = append(errors, ValidationError{Field: "body", Message: fmt.Sprintf("body exceeds maximum of %d paragraphs", maxBodyParagraphs)})
	}
	for i, p := range o.Body {
		if strings.TrimSpace(p) == "" {
			errors = append(errors, ValidationError{Field: fmt.Sprintf("body[%d]", i), Message: "paragraph must not be blank"})
		} else if utf8.RuneCountInString(p) > maxParagraphLength {
			errors = append(errors, ValidationError{Field: fmt.Sprintf("body[%d]", i), Message: fmt.Sprintf("paragraph exceeds maximum of %d characters", maxParagraphLength)})
		}
	}

	// Validate tags
	if len(o.Tags) > maxTags {
		errors = append(errors, ValidationError{Field: "tags", Message: fmt.Sprintf("tags exceed maximum of %d entries", maxTags)})
	}
	for i, tag := range o.Tags {
		if tag == "" {
			errors = append(errors, ValidationError{Field: fmt.Sprintf("tags[%d]", i), Message: "tag must not be empty"})
		} else if utf8.RuneCountInString(tag) > maxTagLength {
			errors = append(errors, ValidationError{Field: fmt.Sprintf("tags[%d]", i), Message: fmt.Sprintf("tag exceeds maximum of %d characters", maxTagLength)})
		}
	}

	// Validate quote
	if o.Quote != nil {
		if o.Quote.Text == "" {
			errors = append(errors, ValidationError{Field: "quote.text", Message: "quote text is required"})
		} else if utf8.RuneCountInString(o.Quote.Text) > maxQuoteLength {
			errors = append(errors, ValidationError{Field: "quote.text", Message: fmt.Sprintf("quote text exceeds maximum of %d characters", maxQuoteLength)})
		}
		if utf8.RuneCountInString(o.Quote.Author) > maxAuthorLength {
			errors = append(errors, ValidationError{Field: "quote.author", Message: fmt.Sprintf("quote author exceeds maximum of %d characters", maxAuthorLength)})
		}
	}

	return errors
}

// ValidateDigestKind validates the digest kind parameter
func (v *Validator) ValidateDigestKind(kind string) []ValidationError {
	var errors []ValidationError

	if kind != string(models.DigestDaily) && kind != string(models.DigestWeekly) {
		errors = append(errors, ValidationError{Field: "kind", Message: "kind must be 'daily' or 'weekly'", Value: kind})
	}

	return errors
}

// ValidateExportFormat validates the mapping export format parameter.
// Empty is allowed; callers default to CSV.
func (v *Validator) ValidateExportFormat(format string) []ValidationError {
	var errors []ValidationError

	if format != "" && format != "csv" && format != "json" {
		errors = append(errors, ValidationError{Field: "format", Message: "format must be 'csv' or 'json'", Value: format})
	}

	return errors
}

// ValidateEmail validates a newsletter address
func (v *Validator) ValidateEmail(field, value string) []ValidationError {
	var errors []ValidationError

	if value == "" {
		errors = append(errors, ValidationError{Field: field, Message: field + " is required"})
	} else if !emailRegex.MatchString(value) {
		errors = append(errors, ValidationError{Field: field, Message: "invalid email format", Value: value})
	}

	return errors
}
