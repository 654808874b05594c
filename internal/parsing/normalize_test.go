package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Lowercases", "Python Developer", "python developer"},
		{"Digits become spaces", "worked3years", "worked years"},
		{"Digit runs collapse", "2019-2023 intern", "intern"},
		{"Punctuation stripped", "Go, Python; (SQL)!", "go python sql"},
		{"Punctuation inside word joins", "node.js", "nodejs"},
		{"Whitespace collapsed", "  a \t\n  b  ", "a b"},
		{"Empty string", "", ""},
		{"Only punctuation", "!!!...", ""},
		{"Non-ASCII kept", "Café Résumé", "café résumé"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeText(tt.input))
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	inputs := []string{"Built 3 APIs, led 2 teams.", "C++ / C# | Go", "  mixed\tCASE  "}
	for _, in := range inputs {
		once := NormalizeText(in)
		assert.Equal(t, once, NormalizeText(once), "input %q", in)
	}
}

func TestNormalizeSkills(t *testing.T) {
	assert.Equal(t, []string{"python", "sql"}, NormalizeSkills([]string{" Python", "SQL ", "python", ""}))
	assert.Empty(t, NormalizeSkills(nil))
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"python", "sql", "excel"}, SplitSkills("Python, SQL, Excel"))
	assert.Equal(t, []string{"python"}, SplitSkills("python,,  ,PYTHON"))
	assert.Empty(t, SplitSkills(""))
}

func TestSkillSet(t *testing.T) {
	set := SkillSet([]string{"Python", " sql"})
	assert.True(t, set["python"])
	assert.True(t, set["sql"])
	assert.Len(t, set, 2)
}
