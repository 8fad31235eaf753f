// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"testing"

	"github.com/tnkrsec/gist-hunter/pkg/types"
)

func gistWith(description string, filenames ...string) types.Gist {
	files := make(map[string]types.GistFile, len(filenames))
	for _, name := range filenames {
		files[name] = types.GistFile{Filename: name, Size: 10}
	}
	return types.Gist{ID: "g", HTMLURL: "u", Description: description, Files: files}
}

func TestMetadata(t *testing.T) {
	tests := []struct {
		name  string
		gist  types.Gist
		terms []string
		want  bool
	}{
		{"exact substring in description", gistWith("auth token leak"), []string{"token"}, true},
		{"match in filename", gistWith("", "aws_credentials.txt"), []string{"credentials"}, true},
		{"no similarity", gistWith("weekend chili recipe"), []string{"kubeconfig"}, false},
		{"empty metadata", gistWith(""), []string{"token"}, false},
		{"empty terms", gistWith("auth token leak"), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Metadata(tt.gist, tt.terms); got != tt.want {
				t.Errorf("Metadata(%q, %v) = %v, want %v", tt.gist.Description, tt.terms, got, tt.want)
			}
		})
	}
}

// Adding terms may flip the result to true but never back to false.
func TestMetadataMonotonic(t *testing.T) {
	g := gistWith("prod database password dump")
	terms := []string{"password"}
	if !Metadata(g, terms) {
		t.Fatal("base term should match")
	}
	widened := append(terms, "zzzzqqqq", "another unrelated term")
	if !Metadata(g, widened) {
		t.Error("adding terms flipped a match to false")
	}
}

func TestContentRanksByScore(t *testing.T) {
	content := "token = os.environ\nexport tokn=abc123\nsome unrelated line about weather\n"
	got := Content(content, []string{"token"}, 50)

	lines := got["token"]
	if len(lines) < 2 {
		t.Fatalf("Content() matched %d lines, want >= 2: %v", len(lines), lines)
	}
	if lines[0].Line != "token = os.environ" || lines[0].Score != 100 {
		t.Errorf("exact substring should rank first with score 100, got %+v", lines[0])
	}
	for i := 1; i < len(lines); i++ {
		if lines[i].Score > lines[i-1].Score {
			t.Errorf("lines not in descending score order: %v", lines)
		}
	}
	for _, lm := range lines {
		if lm.Score < 50 {
			t.Errorf("line %q scored %d, below cutoff", lm.Line, lm.Score)
		}
	}
}

func TestContentOmitsEmptyTerms(t *testing.T) {
	content := "alpha\nbravo\ncharlie\n"
	got := Content(content, []string{"alpha", "zzzzzqqqqqxxxxx"}, 50)

	if _, ok := got["zzzzzqqqqqxxxxx"]; ok {
		t.Error("term with no qualifying line should be omitted")
	}
	for term, lines := range got {
		if len(lines) == 0 {
			t.Errorf("term %q has empty line list", term)
		}
	}
}

func TestContentCutoffTunable(t *testing.T) {
	content := "aws secret key rotation notes\ntotally different text\n"
	loose := Content(content, []string{"secret key"}, 50)
	strict := Content(content, []string{"secret key"}, 100)

	if len(loose["secret key"]) == 0 {
		t.Fatal("expected a match at cutoff 50")
	}
	if len(strict["secret key"]) > len(loose["secret key"]) {
		t.Error("raising the cutoff must not add matches")
	}
}

func TestContentEmptyInput(t *testing.T) {
	if got := Content("", []string{"token"}, 50); len(got) != 0 {
		t.Errorf("Content(\"\") = %v, want empty", got)
	}
	if got := Content("token here", nil, 50); len(got) != 0 {
		t.Errorf("Content with no terms = %v, want empty", got)
	}
}
