package analysis

import "testing"

func TestLooksLikeResume(t *testing.T) {
	cases := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"whitespace only", "   \n\t  ", false},
		{"plain sentence", "the quick brown fox jumps over the lazy dog", false},
		{"experience keyword", "5 years of Experience in backend development", true},
		{"education keyword", "EDUCATION: B.Sc. Computer Science", true},
		{"keyword inside word", "my coworker list", true},
		{"skills section", "Skills: Go, SQL, Docker", true},
		{"invoice text", "Invoice #123 total due $500", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LooksLikeResume(tc.text); got != tc.want {
				t.Fatalf("LooksLikeResume(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}

func TestResultClamp(t *testing.T) {
	res := &Result{
		Overall: 150,
		Detailed: map[string]int{
			CriterionClarity: -10,
			CriterionGrammar: 100,
		},
	}
	res.Clamp()

	if res.Overall != 100 {
		t.Fatalf("expected overall clamped to 100, got %d", res.Overall)
	}
	if res.Detailed[CriterionClarity] != 0 {
		t.Fatalf("expected clarity clamped to 0, got %d", res.Detailed[CriterionClarity])
	}
	if res.Detailed[CriterionGrammar] != 100 {
		t.Fatalf("expected grammar unchanged, got %d", res.Detailed[CriterionGrammar])
	}
}
