package notation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"snpgen/internal/model"
)

func TestTreeAndFlat(t *testing.T) {
	tests := []struct {
		name string
		rule model.Rule
		tree string
		flat string
	}{
		{
			name: "unit rule",
			rule: model.MustRule("a", 1, 1, 0),
			tree: `a/a\to a;0`,
			flat: "a/a->a;0",
		},
		{
			name: "wildcard with powers",
			rule: model.MustRule(`a^\ast`, 2, 3, 5),
			tree: `a^\ast/a^2\to a^3;5`,
			flat: "a*/2a->3a;5",
		},
		{
			name: "even counts consume one",
			rule: model.MustRule(`(a^2)^\ast`, 1, 1, 0),
			tree: `(a^2)^\ast/a\to a;0`,
			flat: "(2a)*/a->a;0",
		},
		{
			name: "even counts produce two",
			rule: model.MustRule(`(a^2)^\ast`, 1, 2, 0),
			tree: `(a^2)^\ast/a\to a^2;0`,
			flat: "(2a)*/a->2a;0",
		},
		{
			name: "forgetting rule",
			rule: model.MustRule("a^3", 3, 0, 0),
			tree: `a^3/a^3\to a^0;0`,
			flat: "3a/3a->0a;0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.tree, Tree(tt.rule))
			assert.Equal(t, tt.flat, Flat(tt.rule))
		})
	}
}

func TestTreeSuperscripts(t *testing.T) {
	for k := 2; k <= 12; k++ {
		r := model.MustRule("a", k, 1, 0)
		assert.Contains(t, Tree(r), "/a^"+strconv.Itoa(k)+`\to a;`)
		r = model.MustRule("a", 1, k, 0)
		assert.Contains(t, Tree(r), `/a\to a^`+strconv.Itoa(k)+";")
	}
}

func TestNormalizeLanguage(t *testing.T) {
	tests := map[string]string{
		"a":              "a",
		"a^12":           "12a",
		`a^\ast`:         "a*",
		`(a^2)^\ast`:     "(2a)*",
		`a^3(a^2)^\ast`:  "3a(2a)*",
		`a^2a^10`:        "2a10a",
		`\ast`:           "*",
		"a^+":            "a+",
		`a(a^\ast)^{10}`: "a(a*){10}",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeLanguage(in), in)
	}
}
