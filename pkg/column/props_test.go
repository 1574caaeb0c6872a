package column

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestProps_SetKeepsPosition(t *testing.T) {
	p := P("a", 1, "b", 2)
	p.Set("a", 10)
	p.Set("c", 3)
	assert.Equal(t, []string{"a", "b", "c"}, p.Names())
	assert.Equal(t, 10, p.Value("a"))

	assert.True(t, p.Delete("b"))
	assert.False(t, p.Delete("b"))
	assert.Equal(t, []string{"a", "c"}, p.Names())
}

func TestP_PanicsOnBadArguments(t *testing.T) {
	assert.Panics(t, func() { P("a") })
	assert.Panics(t, func() { P(1, "a") })
}

func TestProps_YAMLKeepsOrder(t *testing.T) {
	var doc struct {
		Extra Props `yaml:"extra"`
	}
	src := "extra:\n  format: YYYY\n  width: 120\n  default: N/A\n  ellipses: true\n"
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))

	assert.Equal(t, []string{"format", "width", "default", "ellipses"}, doc.Extra.Names())
	assert.Equal(t, 120, doc.Extra.Value("width"))
	assert.Equal(t, true, doc.Extra.Value("ellipses"))

	out, err := yaml.Marshal(doc.Extra)
	require.NoError(t, err)
	assert.Equal(t, "format: YYYY\nwidth: 120\ndefault: N/A\nellipses: true\n", string(out))
}

func TestProps_YAMLRejectsSequence(t *testing.T) {
	var p Props
	err := yaml.Unmarshal([]byte("- a\n- b\n"), &p)
	require.Error(t, err)
}

func TestProps_JSONKeepsOrder(t *testing.T) {
	var p Props
	require.NoError(t, json.Unmarshal([]byte(`{"z":1,"a":"x","m":[1,2]}`), &p))
	assert.Equal(t, []string{"z", "a", "m"}, p.Names())

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"z":1,"a":"x","m":[1,2]}`, string(out))
	assert.Equal(t, `{"z":1,"a":"x","m":[1,2]}`, string(out))

	var empty Props
	require.NoError(t, json.Unmarshal([]byte(`null`), &empty))
	assert.Nil(t, empty)
	require.Error(t, json.Unmarshal([]byte(`[1]`), &empty))
}
