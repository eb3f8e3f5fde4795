package forms

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"tincadia/catalog"
)

// FileRef points at an uploaded file
type FileRef struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Field is one rendered value of a submission. Exactly one of the value members is set, per Kind.
type Field struct {
	Key   string            `json:"key"`
	Label string            `json:"label"`
	Kind  catalog.FieldKind `json:"kind"`
	Text  string            `json:"text,omitempty"`
	Bool  *bool             `json:"bool,omitempty"`
	Items []string          `json:"items,omitempty"`
	File  *FileRef          `json:"file,omitempty"`
}

// RenderFields renders submission data in schema order. Keys the schema does not declare follow,
// sorted, as strings.
func RenderFields(schema catalog.FormType, data map[string]interface{}) []Field {
	out := make([]Field, 0, len(data))
	declared := make(map[string]bool, len(schema.Fields))

	for _, f := range schema.Fields {
		declared[f.Key] = true
		raw, ok := data[f.Key]
		if !ok || raw == nil {
			continue
		}
		out = append(out, renderField(f, raw))
	}

	var extra []string
	for k, v := range data {
		if !declared[k] && v != nil {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		out = append(out, renderField(catalog.Field{Key: k, Label: k, Kind: catalog.KindString}, data[k]))
	}
	return out
}

func renderField(f catalog.Field, raw interface{}) Field {
	field := Field{Key: f.Key, Label: f.Label, Kind: f.Kind}
	switch f.Kind {
	case catalog.KindBoolean:
		b := asBool(raw)
		field.Bool = &b
	case catalog.KindArray:
		field.Items = asStrings(raw)
	case catalog.KindFile:
		field.File = asFile(raw)
	default:
		field.Kind = catalog.KindString
		field.Text = asText(raw)
	}
	return field
}

func asText(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "Sí"
		}
		return "No"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []interface{}:
		return strings.Join(asStrings(t), ", ")
	default:
		return fmt.Sprint(t)
	}
}

func asBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "si", "sí", "yes", "1", "on":
			return true
		}
	case float64:
		return t != 0
	}
	return false
}

func asStrings(v interface{}) []string {
	switch t := v.(type) {
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if item != nil {
				out = append(out, asText(item))
			}
		}
		return out
	case []string:
		return t
	case string:
		if strings.TrimSpace(t) == "" {
			return nil
		}
		parts := strings.Split(t, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return []string{asText(v)}
}

func asFile(v interface{}) *FileRef {
	switch t := v.(type) {
	case string:
		if t == "" {
			return nil
		}
		return &FileRef{URL: t, Name: path.Base(t)}
	case map[string]interface{}:
		ref := &FileRef{}
		if u, ok := t["url"].(string); ok {
			ref.URL = u
		}
		if n, ok := t["name"].(string); ok {
			ref.Name = n
		}
		if ref.Name == "" && ref.URL != "" {
			ref.Name = path.Base(ref.URL)
		}
		if ref.URL == "" {
			return nil
		}
		return ref
	}
	return nil
}
