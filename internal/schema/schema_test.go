package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want bool
	}{
		{"one", `{"optional": 1}`, true},
		{"string one", `{"optional": "1"}`, false},
		{"zero", `{"optional": 0}`, false},
		{"absent", `{}`, false},
		{"bool true", `{"optional": true}`, false},
		{"other number", `{"optional": 2}`, false},
		{"garbage", `{"optional": {"nested": 1}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Param
			require.NoError(t, json.Unmarshal([]byte(tt.json), &p))
			assert.Equal(t, tt.want, bool(p.Optional))
		})
	}
}

func TestNumberUnmarshal(t *testing.T) {
	var p Param
	require.NoError(t, json.Unmarshal([]byte(`{"minimum": 3, "maximum": "16"}`), &p))
	assert.True(t, p.Minimum.Valid)
	assert.Equal(t, 3.0, p.Minimum.Value)
	assert.True(t, p.Maximum.Valid)
	assert.Equal(t, 16.0, p.Maximum.Value)

	var q Param
	require.NoError(t, json.Unmarshal([]byte(`{"minimum": "lots", "maximum": [1]}`), &q))
	assert.False(t, q.Minimum.Valid)
	assert.False(t, q.Maximum.Valid)
}

func TestEnumUnmarshalToleratesNonArray(t *testing.T) {
	var p Param
	require.NoError(t, json.Unmarshal([]byte(`{"enum": "single"}`), &p))
	assert.Empty(t, p.Enum)

	require.NoError(t, json.Unmarshal([]byte(`{"enum": ["a", "b"]}`), &p))
	assert.Equal(t, Enum{"a", "b"}, p.Enum)
}

func TestLooseStringUnmarshal(t *testing.T) {
	var p Param
	require.NoError(t, json.Unmarshal([]byte(`{"format": {"vmid": {}}}`), &p))
	assert.Empty(t, p.Format)

	require.NoError(t, json.Unmarshal([]byte(`{"format": "pve-node"}`), &p))
	assert.Equal(t, LooseString("pve-node"), p.Format)
}

func TestSegmentPrefersPath(t *testing.T) {
	assert.Equal(t, "qemu", (&Node{Path: "qemu", Text: "ignored"}).Segment())
	assert.Equal(t, "lxc", (&Node{Text: "lxc"}).Segment())
	assert.Equal(t, "", (&Node{}).Segment())
}

func TestPropsNilSafe(t *testing.T) {
	var m *Method
	assert.Nil(t, m.Props())
	assert.Nil(t, (&Method{}).Props())

	withBag := &Method{Parameters: &Params{Properties: map[string]*Param{"x": {Type: "string"}}}}
	require.Len(t, withBag.Props(), 1)
}

func TestUnknownFieldsIgnored(t *testing.T) {
	src := `{
		"text": "version",
		"info": {
			"GET": {
				"name": "version",
				"description": "API version details.",
				"allowtoken": 1,
				"method": "GET",
				"parameters": {"additionalProperties": 0},
				"returns": {"type": "object", "properties": {"release": {"type": "string"}}}
			}
		}
	}`
	var n Node
	require.NoError(t, json.Unmarshal([]byte(src), &n))
	require.Contains(t, n.Info, "GET")
	assert.Equal(t, "version", n.Info["GET"].Name)
	require.NotNil(t, n.Info["GET"].Returns)
	assert.Equal(t, "object", n.Info["GET"].Returns.Type)
}
