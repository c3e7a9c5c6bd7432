package rights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"xmlcreator/internal/rights"
)

func TestResolve(t *testing.T) {
	registry := rights.NewRegistry("news", "sports", "weather")

	cases := []struct {
		name string
		raw  string
		want []string
		ok   bool
	}{
		{name: "comma separated", raw: "news, sports", want: []string{"news", "sports"}, ok: true},
		{name: "line separated", raw: "news\nsports", want: []string{"news", "sports"}, ok: true},
		{name: "windows line endings", raw: "news\r\nsports\r\n", want: []string{"news", "sports"}, ok: true},
		{name: "unknown dropped", raw: "news, unknown", want: []string{"news"}, ok: true},
		{name: "only unknown", raw: "unknown", ok: false},
		{name: "blank", raw: "  \n ", ok: false},
		{name: "empty", raw: "", ok: false},
		{name: "input order kept", raw: "weather,news", want: []string{"weather", "news"}, ok: true},
		{name: "duplicates kept", raw: "news,news", want: []string{"news", "news"}, ok: true},
		{name: "comma wins over newline", raw: "news\nsports, weather", want: []string{"weather"}, ok: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := rights.Resolve(tc.raw, registry)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveIsCaseSensitive(t *testing.T) {
	registry := rights.NewRegistry("news")
	_, ok := rights.Resolve("News", registry)
	assert.False(t, ok)
}

func TestNewRegistryTrimsNames(t *testing.T) {
	registry := rights.NewRegistry(" news ", "", "sports")
	assert.Equal(t, 2, registry.Len())
	assert.True(t, registry.Contains("news"))
	assert.Equal(t, []string{"news", "sports"}, registry.Names())
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"a b", "c"}, rights.Tokens(" a b ,, c "))
	assert.Empty(t, rights.Tokens(","))
}
