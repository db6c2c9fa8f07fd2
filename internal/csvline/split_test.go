package csvline

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		line string
		sep  rune
		want []string
	}{
		{
			name: "plain fields",
			line: "a,b,c",
			sep:  ',',
			want: []string{"a", "b", "c"},
		},
		{
			name: "quoted field containing separator",
			line: `a,"b,c",d`,
			sep:  ',',
			want: []string{"a", "b,c", "d"},
		},
		{
			name: "escaped quote",
			line: `"a""b",c`,
			sep:  ',',
			want: []string{`a"b`, "c"},
		},
		{
			name: "empty line yields one empty field",
			line: "",
			sep:  ',',
			want: []string{""},
		},
		{
			name: "separators only",
			line: ",,",
			sep:  ',',
			want: []string{"", "", ""},
		},
		{
			name: "trailing separator keeps final empty field",
			line: "a,b,",
			sep:  ',',
			want: []string{"a", "b", ""},
		},
		{
			name: "unterminated quote runs to end of line",
			line: `a,"b,c`,
			sep:  ',',
			want: []string{"a", "b,c"},
		},
		{
			name: "quotes in the middle of a field are dropped",
			line: `ab"c,d"e,f`,
			sep:  ',',
			want: []string{"abc,de", "f"},
		},
		{
			name: "whitespace is preserved",
			line: " a , b ",
			sep:  ',',
			want: []string{" a ", " b "},
		},
		{
			name: "alternate separator",
			line: `x;"y;z";w`,
			sep:  ';',
			want: []string{"x", "y;z", "w"},
		},
		{
			name: "multibyte text",
			line: `Zürich,"Prüfzentrum, Süd"`,
			sep:  ',',
			want: []string{"Zürich", "Prüfzentrum, Süd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.line, tt.sep)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Split(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplit_RoundTrip(t *testing.T) {
	inputs := [][]string{
		{"one"},
		{"one", "two", "three"},
		{"", "middle", ""},
		{"Site-1", "Pump leak", "critical", "open"},
		{"  padded  ", "tab\there"},
	}

	for _, fields := range inputs {
		line := strings.Join(fields, ",")
		t.Run(line, func(t *testing.T) {
			got := Split(line, ',')
			if !reflect.DeepEqual(got, fields) {
				t.Errorf("Split(%q) = %q, want %q", line, got, fields)
			}
		})
	}
}

func TestSplit_NoStateBetweenCalls(t *testing.T) {
	line := `"open quote,a""b`

	first := Split(line, ',')
	second := Split(line, ',')

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Split is not repeatable: %q then %q", first, second)
	}
	if next := Split("x,y", ','); !reflect.DeepEqual(next, []string{"x", "y"}) {
		t.Errorf("Split after unterminated quote = %q, want [x y]", next)
	}
}

func TestSplit_FieldCountMatchesSeparators(t *testing.T) {
	lines := []string{"", "a", "a,b", ",,,,", "a,,b,"}

	for _, line := range lines {
		got := len(Split(line, ','))
		want := strings.Count(line, ",") + 1
		if got != want {
			t.Errorf("len(Split(%q)) = %d, want %d", line, got, want)
		}
	}
}
