package diagfmt

import (
	"io"

	"grsbridge/internal/grs"
	"grsbridge/internal/offset"
)

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName    string
	ToolVersion string
	Units       offset.Units
}

// SarifInput is one scanned artifact.
type SarifInput struct {
	Path    string
	Records []Record
}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool     `json:"tool"`
	ColumnKind string        `json:"columnKind"`
	Results    []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version,omitempty"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysical `json:"physicalLocation"`
}

type sarifPhysical struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           sarifRegion   `json:"region"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	CharOffset int `json:"charOffset"`
	CharLength int `json:"charLength"`
}

// Sarif writes records as a SARIF v2.1.0 log with one run.
// Character offsets follow meta.Units.
func Sarif(w io.Writer, inputs []SarifInput, meta SarifRunMeta) error {
	kindToRule := make(map[string]grs.Rule)
	rules := make([]sarifRule, 0, len(grs.DefaultRules))
	for _, r := range grs.AllRules() {
		kind := SnakeCase(r.String())
		kindToRule[kind] = r
		rules = append(rules, sarifRule{
			ID:               r.Code(),
			Name:             kind,
			ShortDescription: sarifMessage{Text: r.Title()},
		})
	}

	results := make([]sarifResult, 0)
	for _, in := range inputs {
		for _, rec := range in.Records {
			id := rec.Kind
			msg := rec.Kind
			if r, ok := kindToRule[rec.Kind]; ok {
				id = r.Code()
				msg = r.Title()
			}
			if rec.Fix != nil {
				msg += ": " + *rec.Fix
			}
			results = append(results, sarifResult{
				RuleID:  id,
				Level:   "warning",
				Message: sarifMessage{Text: msg},
				Locations: []sarifLocation{{
					PhysicalLocation: sarifPhysical{
						ArtifactLocation: sarifArtifact{URI: in.Path},
						Region:           sarifRegion{CharOffset: rec.Range.Start, CharLength: rec.Range.Len()},
					},
				}},
			})
		}
	}

	columnKind := "unicodeCodePoints"
	if meta.Units == offset.UnitsUTF16 {
		columnKind = "utf16CodeUnits"
	}
	log := sarifLog{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs: []sarifRun{{
			Tool:       sarifTool{Driver: sarifDriver{Name: meta.ToolName, Version: meta.ToolVersion, Rules: rules}},
			ColumnKind: columnKind,
			Results:    results,
		}},
	}
	return WriteJSON(w, log)
}
