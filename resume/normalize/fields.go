package normalize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// object reads fields out of one untrusted JSON object. Every key looked up
// is remembered so the rest can be reported as unknown.
type object struct {
	fields  map[string]any
	path    string
	report  *Report
	seen    map[string]struct{}
	invalid string
}

func newObject(fields map[string]any, path string, report *Report) *object {
	return &object{
		fields: fields,
		path:   path,
		report: report,
		seen:   make(map[string]struct{}, len(fields)),
	}
}

func (o *object) fieldPath(key string) string {
	if o.path == "" {
		return key
	}
	return o.path + "." + key
}

func (o *object) lookup(key string) (any, bool) {
	o.seen[key] = struct{}{}
	v, ok := o.fields[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (o *object) fail(key, reason string) {
	if o.invalid == "" {
		o.invalid = key + " " + reason
	}
}

func (o *object) valid() bool {
	return o.invalid == ""
}

// finish reports keys that no parser asked for.
func (o *object) finish() {
	unknown := make([]string, 0)
	for key := range o.fields {
		if _, ok := o.seen[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		o.report.add(o.fieldPath(key), ActionDropped, "unknown field")
	}
}

// required returns a non-blank string or marks the object invalid.
func (o *object) required(key string) string {
	v, ok := o.lookup(key)
	if !ok {
		o.fail(key, "is missing")
		return ""
	}
	s, ok := o.scalar(key, v)
	if !ok {
		o.fail(key, "is not a string")
		return ""
	}
	if s == "" {
		o.fail(key, "is empty")
	}
	return s
}

// marker returns a string that may be empty when unknown. A missing key
// becomes the empty marker.
func (o *object) marker(key string) string {
	v, ok := o.lookup(key)
	if !ok {
		o.report.add(o.fieldPath(key), ActionDefaulted, "missing, marked unknown")
		return ""
	}
	s, ok := o.scalar(key, v)
	if !ok {
		o.report.add(o.fieldPath(key), ActionDefaulted, "not a string, marked unknown")
		return ""
	}
	return s
}

// optional returns a trimmed non-empty string or nil.
func (o *object) optional(key string) *string {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	s, ok := o.scalar(key, v)
	if !ok {
		o.report.add(o.fieldPath(key), ActionDropped, "not a string")
		return nil
	}
	if s == "" {
		return nil
	}
	return &s
}

// text is like optional but never converts non-string values.
func (o *object) text(key string) (string, bool) {
	v, ok := o.lookup(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// strings reads a list of strings, dropping blank and non-string items.
func (o *object) strings(key string) []string {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	items, ok := v.([]any)
	if !ok {
		o.report.add(o.fieldPath(key), ActionDropped, "not a list")
		return nil
	}
	var out []string
	for i, item := range items {
		itemPath := fmt.Sprintf("%s[%d]", key, i)
		if item == nil {
			o.report.add(o.fieldPath(itemPath), ActionDropped, "null item")
			continue
		}
		s, ok := o.scalar(itemPath, item)
		if !ok || s == "" {
			o.report.add(o.fieldPath(itemPath), ActionDropped, "not a non-empty string")
			continue
		}
		out = append(out, s)
	}
	return out
}

// nested returns the sub-object stored under key, or nil.
func (o *object) nested(key string) *object {
	v, ok := o.lookup(key)
	if !ok {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		o.report.add(o.fieldPath(key), ActionDropped, "not an object")
		return nil
	}
	return newObject(m, o.fieldPath(key), o.report)
}

// scalar accepts strings and finite numbers. Numbers are the same datum
// written without quotes and are rendered in their shortest form.
func (o *object) scalar(key string, v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return "", false
		}
		o.report.add(o.fieldPath(key), ActionConverted, "number rendered as text")
		return strconv.FormatFloat(t, 'f', -1, 64), true
	default:
		return "", false
	}
}
