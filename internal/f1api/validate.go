package f1api

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// shape describes the top-level JSON form an endpoint must return and picks
// the part of the document that gets decoded.
type shape struct {
	want    string
	extract func(root gjson.Result) (gjson.Result, string)
}

var (
	arrayShape = shape{
		want: "array",
		extract: func(root gjson.Result) (gjson.Result, string) {
			if !root.IsArray() {
				return gjson.Result{}, "top-level value is " + describe(root)
			}
			return root, ""
		},
	}

	nextEventShape = shape{
		want: "object",
		extract: func(root gjson.Result) (gjson.Result, string) {
			if !root.IsObject() {
				return gjson.Result{}, "top-level value is " + describe(root)
			}
			if sessions := root.Get("sessions"); sessions.Exists() && sessions.Type != gjson.Null && !sessions.IsArray() {
				return gjson.Result{}, "sessions is " + describe(sessions)
			}
			return root, ""
		},
	}

	countdownShape = shape{
		want: "object with days, hours, minutes, seconds",
		extract: func(root gjson.Result) (gjson.Result, string) {
			if !root.IsObject() {
				return gjson.Result{}, "top-level value is " + describe(root)
			}
			for _, field := range []string{"days", "hours", "minutes", "seconds"} {
				v := root.Get(field)
				if v.Type != gjson.Number {
					return gjson.Result{}, field + " is " + describe(v)
				}
				if v.Num < 0 || v.Num != math.Trunc(v.Num) {
					return gjson.Result{}, field + " is not a non-negative integer"
				}
			}
			return root, ""
		},
	}
)

// objectWithArray requires an object whose field holds an array, and
// extracts that array.
func objectWithArray(field string) shape {
	return shape{
		want: "object with array " + field,
		extract: func(root gjson.Result) (gjson.Result, string) {
			if !root.IsObject() {
				return gjson.Result{}, "top-level value is " + describe(root)
			}
			inner := root.Get(field)
			if !inner.IsArray() {
				return gjson.Result{}, field + " is " + describe(inner)
			}
			return inner, ""
		},
	}
}

// decode validates body against s and unmarshals the extracted part into dest.
func decode(endpoint string, body []byte, s shape, dest any) error {
	if !gjson.ValidBytes(body) {
		return &ShapeError{Endpoint: endpoint, Want: s.want, Reason: "body is not valid JSON"}
	}
	payload, reason := s.extract(gjson.ParseBytes(body))
	if reason != "" {
		return &ShapeError{Endpoint: endpoint, Want: s.want, Reason: reason}
	}
	if err := json.Unmarshal([]byte(payload.Raw), dest); err != nil {
		return &ShapeError{Endpoint: endpoint, Want: s.want, Reason: err.Error()}
	}
	return nil
}

func describe(r gjson.Result) string {
	switch {
	case !r.Exists():
		return "missing"
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	case r.Type == gjson.True || r.Type == gjson.False:
		return "boolean"
	default:
		return strings.ToLower(r.Type.String())
	}
}
