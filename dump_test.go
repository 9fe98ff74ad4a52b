package goshape_test

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape"
)

func TestElementMarshalJSON(t *testing.T) {
	type doc struct {
		Name    string
		Color   Color
		Tags    []string
		Timeout time.Duration
	}
	el, err := goshape.EncodeOf(doc{Name: "Ann", Color: Blue, Tags: []string{"a"}, Timeout: time.Second})
	require.NoError(t, err)

	b, err := json.Marshal(el)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"kind": "object",
		"type": "goshape_test.doc",
		"properties": [
			{"identifier": "Name", "value": {"kind": "value", "type": "string", "primitive": "string", "value": "Ann"}},
			{"identifier": "Color", "value": {"kind": "enum", "type": "goshape_test.Color", "options": ["Red", "Green", "Blue"], "selected": 2}},
			{"identifier": "Tags", "value": {
				"kind": "array",
				"type": "[]string",
				"template": {"kind": "value", "type": "string", "primitive": "string", "value": ""},
				"items": [{"kind": "value", "type": "string", "primitive": "string", "value": "a"}]
			}},
			{"identifier": "Timeout", "value": {"kind": "value", "type": "time.Duration", "primitive": "duration", "value": "1s"}}
		]
	}`, string(b))

	b, err = json.Marshal(goshape.Element{})
	require.NoError(t, err)
	require.Equal(t, "null", string(b))
}
