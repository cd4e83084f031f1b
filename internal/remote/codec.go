package remote

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/selah-content-api/internal/models"
)

// Format identifies the wire encoding of a mapping payload.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Detect sniffs the payload encoding from its first significant byte.
// Anything that does not open a JSON document is treated as CSV.
func Detect(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatCSV
}

// Parse decodes a mapping payload in either supported encoding. Malformed
// input yields empty tables, never an error; a mapping file that cannot
// be read must not take the site down with it.
func Parse(data []byte, log zerolog.Logger) models.MappingSet {
	if Detect(data) == FormatJSON {
		return ParseJSON(data, log)
	}
	return ParseCSV(data, log)
}

// ParseJSON decodes {"topics": {...}, "articles": {...}}. Missing or
// null tables come back allocated and empty.
func ParseJSON(data []byte, log zerolog.Logger) models.MappingSet {
	var m models.MappingSet
	if err := json.Unmarshal(data, &m); err != nil {
		log.Warn().Err(err).Msg("discarding malformed JSON mapping payload")
		return models.NewMappingSet()
	}
	if m.Topics == nil {
		m.Topics = make(map[string]string)
	}
	if m.Articles == nil {
		m.Articles = make(map[string]string)
	}
	return m
}

// ParseCSV decodes the type,key,url form. The header is case-insensitive
// and accepts id for key and image for url. Rows missing any of the three
// fields are skipped individually; rows whose type is neither topic nor
// article are ignored. A payload without a usable header yields empty
// tables.
func ParseCSV(data []byte, log zerolog.Logger) models.MappingSet {
	out := models.NewMappingSet()

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if err != io.EOF {
			log.Warn().Err(err).Msg("discarding CSV mapping payload with unreadable header")
		}
		return out
	}

	cols := make(map[string]int)
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "type":
			cols["type"] = i
		case "key", "id":
			cols["key"] = i
		case "url", "image":
			cols["url"] = i
		}
	}
	if len(cols) < 3 {
		log.Warn().Strs("header", header).Msg("CSV mapping header missing type/key/url columns")
		return out
	}

	skipped := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		kind := strings.ToLower(field(record, cols["type"]))
		key := field(record, cols["key"])
		url := field(record, cols["url"])
		if kind == "" || key == "" || url == "" {
			skipped++
			continue
		}

		switch kind {
		case "topic":
			out.Topics[key] = url
		case "article":
			out.Articles[key] = url
		default:
			skipped++
		}
	}
	if skipped > 0 {
		log.Debug().Int("skipped", skipped).Msg("skipped unusable CSV mapping rows")
	}
	return out
}

// ToCSV serializes a mapping set in the same form ParseCSV reads, with
// sorted keys so repeated exports of the same data are byte-identical.
func ToCSV(m models.MappingSet) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	w.Write([]string{"type", "key", "url"})
	for _, k := range sortedKeys(m.Topics) {
		w.Write([]string{"topic", k, m.Topics[k]})
	}
	for _, k := range sortedKeys(m.Articles) {
		w.Write([]string{"article", k, m.Articles[k]})
	}
	w.Flush()
	return buf.String()
}

// ToJSON serializes a mapping set as an indented document. Map keys are
// sorted by the encoder, so exports are stable here too.
func ToJSON(m models.MappingSet) string {
	if m.Topics == nil {
		m.Topics = make(map[string]string)
	}
	if m.Articles == nil {
		m.Articles = make(map[string]string)
	}
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return `{"topics":{},"articles":{}}`
	}
	return string(raw)
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
