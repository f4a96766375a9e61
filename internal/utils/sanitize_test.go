package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("<b>hello</b>"))
	assert.Equal(t, "", SanitizeString("<script>alert(1)</script>"))
	assert.Equal(t, "plain text", SanitizeString("plain text"))
}

func TestSanitizeString_KeepsPlainTextCharacters(t *testing.T) {
	assert.Equal(t, "R&D", SanitizeString("R&D"))
	assert.Equal(t, "a < b", SanitizeString("a < b"))
	assert.Equal(t, `say "hi"`, SanitizeString(`say "hi"`))
	assert.Equal(t, "Tom's & Jerry's", SanitizeString("<em>Tom's</em> & Jerry's"))
}

func TestSanitizeValue_Nested(t *testing.T) {
	in := map[string]any{
		"name":  "<i>Ann</i>",
		"age":   float64(31),
		"tags":  []any{"<b>a</b>", "b", true},
		"notes": []string{"<p>x</p>"},
		"file":  map[string]any{"originalName": "<img src=x>cv.pdf"},
	}

	out := SanitizeValue(in).(map[string]any)

	assert.Equal(t, "Ann", out["name"])
	assert.Equal(t, float64(31), out["age"])
	assert.Equal(t, []any{"a", "b", true}, out["tags"])
	assert.Equal(t, []string{"x"}, out["notes"])
	assert.Equal(t, map[string]any{"originalName": "cv.pdf"}, out["file"])
}
