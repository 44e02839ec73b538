// Package loader ingests the Þjóðskrá gervigögn "Einstaklingar" sample XML
// and runs each record's kennitala through the core validation pipeline.
// The loader owns no validation logic: every judgement in the per-record
// summary comes from the kennitala package.
package loader

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/vignirvignir/ice-ken/kennitala"
)

// knownIssueRe matches the duplicated self-closing SidastaIslLogh tag seen
// in the published sample file.
var knownIssueRe = regexp.MustCompile(`(<SidastaIslLogh[^>]*/>)\s*/>`)

// Record is one Einstaklingur element: its kennitala plus every child
// field as text. A nil field value means the element was empty or carried
// xsi:nil="true".
type Record struct {
	Kennitala string
	Fields    map[string]*string
}

// Validation is the per-record summary the loader's consumers receive.
type Validation struct {
	Relaxed    bool    `json:"relaxed"`
	Strict     bool    `json:"strict"`
	IsDataset  bool    `json:"is_dataset"`
	EntityType *string `json:"entity_type"`
	BirthDate  *string `json:"birth_date"`
}

// ValidatedRecord pairs a record with its validation summary.
type ValidatedRecord struct {
	Kennitala  string             `json:"kennitala"`
	Fields     map[string]*string `json:"fields"`
	Validation Validation         `json:"validation"`
}

// Report is the JSON envelope written by WriteJSON.
type Report struct {
	RunID         string            `json:"run_id"`
	GeneratedAt   time.Time         `json:"generated_at"`
	Count         int               `json:"count"`
	Einstaklingar []ValidatedRecord `json:"einstaklingar"`
}

type xmlRoot struct {
	XMLName xml.Name    `xml:"Einstaklingar"`
	People  []xmlPerson `xml:"Einstaklingur"`
}

type xmlPerson struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Value   string     `xml:",chardata"`
}

// Records decodes the Einstaklingar XML from r, applying the known-issue
// sanitizer first.
func Records(r io.Reader) ([]Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read xml: %w", err)
	}
	raw = knownIssueRe.ReplaceAll(raw, []byte("${1}"))

	var root xmlRoot
	if err := xml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	records := make([]Record, 0, len(root.People))
	for _, person := range root.People {
		rec := Record{Fields: make(map[string]*string, len(person.Fields))}
		for _, f := range person.Fields {
			rec.Fields[f.XMLName.Local] = f.text()
		}
		if kt := rec.Fields["Kennitala"]; kt != nil {
			rec.Kennitala = *kt
		}
		records = append(records, rec)
	}
	return records, nil
}

// LoadFile reads and decodes the sample XML at path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Records(f)
}

// text returns the field's trimmed content, or nil for empty or
// xsi:nil="true" elements.
func (f xmlField) text() *string {
	for _, a := range f.Attrs {
		if a.Name.Local == "nil" && strings.EqualFold(a.Value, "true") {
			return nil
		}
	}
	s := strings.TrimSpace(f.Value)
	if s == "" {
		return nil
	}
	return &s
}

// Validate runs every record's kennitala through the core and attaches the
// summary. Records with malformed kennitala get all-false flags and a nil
// entity type rather than an error; the report is meant to describe the
// dataset, not reject it.
func Validate(records []Record) []ValidatedRecord {
	out := make([]ValidatedRecord, 0, len(records))
	for _, rec := range records {
		kt := strings.TrimSpace(rec.Kennitala)
		v := Validation{
			Relaxed:   kennitala.IsValidRelaxed(kt),
			Strict:    kennitala.IsValid(kt),
			IsDataset: kennitala.IsDatasetID(kt),
		}
		switch {
		case kennitala.IsCompany(kt):
			v.EntityType = ptr(kennitala.Company.String())
		case kennitala.IsPersonal(kt):
			v.EntityType = ptr(kennitala.Individual.String())
		}
		if v.Relaxed {
			if p, err := kennitala.ParseRelaxed(kt); err == nil {
				v.BirthDate = ptr(p.BirthDate.Format(time.DateOnly))
			}
		}
		out = append(out, ValidatedRecord{
			Kennitala:  kt,
			Fields:     rec.Fields,
			Validation: v,
		})
	}
	return out
}

func ptr(s string) *string { return &s }

// NewReport wraps validated records in a report envelope with a fresh run
// ID and timestamp.
func NewReport(records []ValidatedRecord) Report {
	return Report{
		RunID:         uuid.NewString(),
		GeneratedAt:   time.Now().UTC(),
		Count:         len(records),
		Einstaklingar: records,
	}
}

// WriteJSON encodes the report to w, indented when pretty is set.
func WriteJSON(w io.Writer, report Report, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(report)
}
