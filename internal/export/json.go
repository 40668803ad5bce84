package export

import (
	"fmt"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/analysis"
	"github.com/hoanghuy2403-byte/tool-ai-sub/internal/subtitle"
)

// DefaultJSONFields is the simplified record layout of the json profile.
func DefaultJSONFields() []string {
	return []string{"index", "start_time", "end_time", "word", "important", "category", "style"}
}

func renderJSON(req Request) ([]byte, error) {
	fields := req.Options.Fields
	if len(fields) == 0 {
		fields = DefaultJSONFields()
	}

	doc := "[]"
	for i := range req.Result.Words {
		rec, err := jsonRecord(req, i, fields)
		if err != nil {
			return nil, err
		}
		doc, err = sjson.SetRaw(doc, "-1", rec)
		if err != nil {
			return nil, err
		}
	}

	out := []byte(doc)
	if req.Options.Pretty {
		out = pretty.Pretty(out)
	}
	return out, nil
}

func jsonRecord(req Request, i int, fields []string) (string, error) {
	w := &req.Result.Words[i]
	rec := "{}"
	var err error
	for _, field := range fields {
		switch field {
		case "index":
			rec, err = sjson.Set(rec, field, i+1)
		case "start_time":
			rec, err = sjson.Set(rec, field, subtitle.FormatSRTTime(w.Start))
		case "end_time":
			rec, err = sjson.Set(rec, field, subtitle.FormatSRTTime(w.End))
		case "start":
			rec, err = sjson.Set(rec, field, w.Start)
		case "end":
			rec, err = sjson.Set(rec, field, w.End)
		case "word":
			rec, err = sjson.Set(rec, field, w.Text)
		case "cue":
			rec, err = sjson.Set(rec, field, w.Cue)
		case "pos":
			rec, err = sjson.Set(rec, field, w.POS)
		case "important":
			rec, err = sjson.Set(rec, field, w.Important)
		case "importance":
			rec, err = sjson.Set(rec, field, w.Importance)
		case "category":
			rec, err = sjson.Set(rec, field, w.Category)
		case "sentiment":
			rec, err = sjson.Set(rec, field, w.Sentiment)
		case "sentiment_score":
			rec, err = sjson.Set(rec, field, w.SentimentScore)
		case "context":
			rec, err = sjson.Set(rec, field, w.Context)
		case "style":
			rec, err = jsonStyle(rec, req, w)
		default:
			return "", fmt.Errorf("json export: unknown field %q", field)
		}
		if err != nil {
			return "", err
		}
	}
	return rec, nil
}

func jsonStyle(rec string, req Request, w *analysis.WordInfo) (string, error) {
	s := req.Resolver.Resolve(*w)
	weight := "normal"
	if s.Bold {
		weight = "bold"
	}
	rec, err := sjson.Set(rec, "style.color", s.Color)
	if err != nil {
		return "", err
	}
	rec, err = sjson.Set(rec, "style.font_weight", weight)
	if err != nil {
		return "", err
	}
	return sjson.Set(rec, "style.icon", s.Icon)
}
