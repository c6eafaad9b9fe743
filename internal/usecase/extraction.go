package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/neuraview/internal/dto"
	"github.com/fadilmartias/neuraview/internal/util"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

var ErrMalformedExtraction = errors.New("malformed extraction result")

// Every key is optional; values the model tends to emit as numbers are allowed.
const extractionSchema = `{
  "type": "object",
  "properties": {
    "candidateName": {"type": ["string", "null"]},
    "skills":        {"type": ["string", "array", "null"]},
    "topic":         {"type": ["string", "null"]},
    "difficulty":    {"type": ["string", "null"]},
    "mode":          {"type": ["string", "null"]},
    "experience":    {"type": ["string", "number", "null"]},
    "education":     {"type": ["string", "null"]},
    "projects": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "properties": {
          "title":       {"type": ["string", "null"]},
          "description": {"type": ["string", "null"]}
        }
      }
    }
  }
}`

var extractionSchemaLoader = gojsonschema.NewStringLoader(extractionSchema)

// ExtractionResult is either Fields (success) or Err with a diagnostic.
type ExtractionResult struct {
	Fields *dto.ExtractedResume
	Err    error
}

func (r ExtractionResult) OK() bool {
	return r.Err == nil && r.Fields != nil
}

func extractionFailure(format string, args ...any) ExtractionResult {
	return ExtractionResult{Err: fmt.Errorf("%w: %s", ErrMalformedExtraction, fmt.Sprintf(format, args...))}
}

// ParseExtraction turns the relay's raw text into typed resume fields. It never
// panics on model output.
func ParseExtraction(raw string) ExtractionResult {
	text := util.CleanJSONBlock(raw)
	if text == "" {
		return extractionFailure("empty response")
	}
	if !gjson.Valid(text) {
		return extractionFailure("response is not JSON: %.80q", text)
	}

	result, err := gojsonschema.Validate(extractionSchemaLoader, gojsonschema.NewStringLoader(text))
	if err != nil {
		return extractionFailure("schema check: %v", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return extractionFailure("unexpected shape: %s", strings.Join(problems, "; "))
	}

	doc := gjson.Parse(text)
	fields := &dto.ExtractedResume{
		CandidateName: strings.TrimSpace(doc.Get("candidateName").String()),
		Skills:        skillsValue(doc.Get("skills")),
		Topic:         strings.TrimSpace(doc.Get("topic").String()),
		Difficulty:    strings.TrimSpace(doc.Get("difficulty").String()),
		Mode:          strings.TrimSpace(doc.Get("mode").String()),
		Experience:    strings.TrimSpace(doc.Get("experience").String()),
		Education:     strings.TrimSpace(doc.Get("education").String()),
	}
	if projects := doc.Get("projects"); projects.IsArray() {
		for _, project := range projects.Array() {
			fields.Projects = append(fields.Projects, dto.ExtractedProject{
				Title:       strings.TrimSpace(project.Get("title").String()),
				Description: strings.TrimSpace(project.Get("description").String()),
			})
		}
	}
	return ExtractionResult{Fields: fields}
}

// skillsValue accepts the requested comma-joined string and also a JSON array.
func skillsValue(v gjson.Result) string {
	if v.IsArray() {
		var skills []string
		for _, s := range v.Array() {
			if s := strings.TrimSpace(s.String()); s != "" {
				skills = append(skills, s)
			}
		}
		return strings.Join(skills, ",")
	}
	return strings.TrimSpace(v.String())
}
