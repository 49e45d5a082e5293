package baasbox

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		kind Kind
	}{
		{``, KindNull},
		{`  `, KindNull},
		{`null`, KindNull},
		{`true`, KindBool},
		{`12`, KindNumber},
		{`"s"`, KindString},
		{`[1,2]`, KindArray},
		{`{"a":1}`, KindObject},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.in, func(t *testing.T) {
			v, err := ParseValue([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}

	_, err := ParseValue([]byte(`{`))
	assert.Error(t, err)
}

func TestValue_LargeNumbersKeepPrecision(t *testing.T) {
	v, err := ParseValue([]byte(`{"id":9007199254740993}`))
	require.NoError(t, err)

	n, ok := v.Get("id").AsInt64()
	require.True(t, ok)
	assert.EqualValues(t, 9007199254740993, n)
	assert.Equal(t, `{"id":9007199254740993}`, v.String())
}

func TestValue_Accessors(t *testing.T) {
	v, err := ParseValue([]byte(`{"s":"x","b":false,"f":1.5,"a":[1,"two"],"o":{"k":null}}`))
	require.NoError(t, err)

	s, ok := v.Get("s").AsString()
	assert.True(t, ok)
	assert.Equal(t, "x", s)

	b, ok := v.Get("b").AsBool()
	assert.True(t, ok)
	assert.False(t, b)

	f, ok := v.Get("f").AsFloat64()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	_, ok = v.Get("f").AsInt64()
	assert.False(t, ok)

	assert.Equal(t, 2, v.Get("a").Len())
	assert.Equal(t, "two", mustString(t, v.Get("a").Index(1)))
	assert.True(t, v.Get("a").Index(5).IsNull())
	assert.True(t, v.Get("a").Index(-1).IsNull())
	assert.Len(t, v.Get("a").Slice(), 2)

	assert.True(t, v.Get("o").Get("k").IsNull())
	assert.Len(t, v.Get("o").Map(), 1)
	assert.Equal(t, 5, v.Len())

	assert.True(t, v.Get("missing").Get("deeper").IsNull())
	assert.Nil(t, v.Get("s").Map())
	assert.Nil(t, v.Get("s").Slice())
	_, ok = v.Get("b").AsString()
	assert.False(t, ok)
}

func TestValue_JSONRoundTrip(t *testing.T) {
	type wrapper struct {
		Payload Value `json:"payload"`
	}

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"payload":{"n":3}}`), &w))
	assert.Equal(t, KindObject, w.Payload.Kind())

	out, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"payload":{"n":3}}`, string(out))

	assert.Equal(t, "null", Value{}.String())
}

func TestValue_Decode(t *testing.T) {
	type post struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Likes int      `json:"likes"`
		Tags  []string `json:"tags"`
	}

	v, err := ParseValue([]byte(`{"id":"p1","title":"hello","likes":4,"tags":["a","b"],"@class":"posts"}`))
	require.NoError(t, err)

	var p post
	require.NoError(t, v.Decode(&p))
	assert.Equal(t, post{ID: "p1", Title: "hello", Likes: 4, Tags: []string{"a", "b"}}, p)

	var notAPointer post
	assert.Error(t, v.Decode(notAPointer))
}
