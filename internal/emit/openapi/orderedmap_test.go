package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrderedMapPreservesInsertionOrderInJSON(t *testing.T) {
	m := newOrderedMap()
	m.Set("zebra", 1)
	m.Set("apple", 2)
	m.Set("mango", 3)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":1,"apple":2,"mango":3}`, string(data))
}

func TestOrderedMapPreservesInsertionOrderInYAML(t *testing.T) {
	m := newOrderedMap()
	m.Set("zebra", 1)
	m.Set("apple", 2)

	data, err := yaml.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, "zebra: 1\napple: 2\n", string(data))
}

func TestOrderedMapSetOverwritesValueNotOrder(t *testing.T) {
	m := newOrderedMap()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("a", 99)

	assert.Equal(t, 2, m.Len())
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"a":99,"b":2}`, string(data))
}

func TestOrderedMapNestedMapsAndSlices(t *testing.T) {
	inner := newOrderedMap()
	inner.Set("x", 1)
	outer := newOrderedMap()
	outer.Set("list", []any{1, 2, 3})
	outer.Set("inner", inner)

	data, err := json.Marshal(outer)
	require.NoError(t, err)
	assert.Equal(t, `{"list":[1,2,3],"inner":{"x":1}}`, string(data))
}
