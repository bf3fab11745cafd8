package render

import (
	"regexp"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeholderRe = regexp.MustCompile(`\{\{\s*(\w+)\s*\}\}`)

func referenced(src string) []string {
	set := map[string]struct{}{}
	for _, m := range placeholderRe.FindAllStringSubmatch(src, -1) {
		set[m[1]] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestStubsReferenceExactlyDeclaredPlaceholders(ttt *testing.T) {
	r := New()
	for _, id := range Templates() {
		ttt.Run(string(id), func(t *testing.T) {
			src, err := r.Source(id)
			require.NoError(t, err)

			declared := Placeholders(id)
			sort.Strings(declared)
			if diff := cmp.Diff(declared, referenced(src), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("placeholders mismatch (-declared +referenced):\n%s", diff)
			}
		})
	}
}

func TestRenderLeavesNoPlaceholders(ttt *testing.T) {
	r := New()
	for _, id := range Templates() {
		ttt.Run(string(id), func(t *testing.T) {
			values := map[string]string{}
			for _, k := range Placeholders(id) {
				values[k] = "X" + k
			}
			out, err := r.Render(id, values)
			require.NoError(t, err)
			assert.NotContains(t, out, "{{")
			assert.NotContains(t, out, "{%")
			for _, k := range Placeholders(id) {
				assert.Contains(t, out, "X"+k)
			}
		})
	}
}

func TestRenderDoesNotEscape(t *testing.T) {
	out, err := New().Render(Resource, map[string]string{
		"namespace":      `App\Http\Resources`,
		"resourceName":   "OrderResource",
		"resourceFields": `            'name' => $this->name,`,
	})
	require.NoError(t, err)
	assert.Contains(t, out, `namespace App\Http\Resources;`)
	assert.Contains(t, out, `'name' => $this->name,`)
	assert.Contains(t, out, "if (empty($this->resource)) {\n            return [];\n        }")
}

func TestRenderOverride(t *testing.T) {
	overrides := fstest.MapFS{
		"resource.stub": {Data: []byte("class {{ resourceName }} {}\n")},
	}
	r := New(WithOverrides(overrides))

	out, err := r.Render(Resource, map[string]string{"resourceName": "OrderResource"})
	require.NoError(t, err)
	assert.Equal(t, "class OrderResource {}\n", out)

	// stubs missing from the override set fall back to the embedded ones
	out, err = r.Render(SkeletonCollection, map[string]string{"namespace": "App", "collectionName": "OrderCollection"})
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, "class OrderCollection extends ResourceCollection"))
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := New().Render("nope", nil)
	require.ErrorIs(t, err, ErrUnknownTemplate)
}
