package extract

import (
	"strings"
	"testing"

	"github.com/ppiankov/credence/internal/model"
)

func TestLexicalExtractor_BasicExtraction(t *testing.T) {
	extractor := NewLexicalExtractor()

	content := "Water boils at 100 degrees Celsius. According to research, hydration matters. What a day!"

	claims := extractor.Extract(content)

	if len(claims) != 2 {
		t.Fatalf("Expected 2 claims, got %d", len(claims))
	}

	foundBoils := false
	foundAccording := false
	for _, claim := range claims {
		if strings.Contains(claim.Text, "boils") {
			foundBoils = true
			if claim.Type != model.ClaimNumerical {
				t.Errorf("Expected numerical claim, got %s", claim.Type)
			}
		}
		if strings.Contains(strings.ToLower(claim.Text), "according to") {
			foundAccording = true
		}
	}

	if !foundBoils {
		t.Error("Expected to find claim with 'boils'")
	}
	if !foundAccording {
		t.Error("Expected to find claim with 'according to'")
	}
}

func TestLexicalExtractor_DeterministicIDs(t *testing.T) {
	extractor := NewLexicalExtractor()
	content := "The sky is blue. Grass is green."

	first := extractor.Extract(content)
	second := extractor.Extract(content)

	if len(first) != len(second) {
		t.Fatalf("Expected identical claim counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Expected stable ID at %d, got %s and %s", i, first[i].ID, second[i].ID)
		}
	}
	if len(first) > 0 && first[0].ID != "claim-1" {
		t.Errorf("Expected first ID claim-1, got %s", first[0].ID)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"two sentences", "First sentence. Second sentence.", 2},
		{"mixed punctuation", "Really? Yes! Done.", 3},
		{"no terminal punctuation", "trailing fragment", 1},
		{"empty", "", 0},
		{"newlines", "First line.\nSecond line.", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.input)
			if len(got) != tt.want {
				t.Errorf("Expected %d sentences, got %d: %v", tt.want, len(got), got)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		sentence string
		want     model.ClaimType
	}{
		{"The population grew by 12 million.", model.ClaimNumerical},
		{"The unemployment rate is falling.", model.ClaimStatistical},
		{"The medieval castle is well preserved.", model.ClaimHistorical},
		{"The theory of evolution is widely accepted.", model.ClaimScientific},
		{"Osmosis refers to the movement of water.", model.ClaimDefinition},
		{"The sky is blue.", model.ClaimFactual},
	}

	for _, tt := range tests {
		if got := classify(tt.sentence); got != tt.want {
			t.Errorf("classify(%q) = %s, want %s", tt.sentence, got, tt.want)
		}
	}
}

func TestClaimConfidence(t *testing.T) {
	// Digits and citation cues raise confidence, hedging lowers it.
	cited := claimConfidence("According to research, the population grew in 2020.")
	if cited != 0.8 {
		t.Errorf("Expected 0.8 for cited numeric claim, got %v", cited)
	}

	hedged := claimConfidence("This is possibly wrong.")
	if hedged >= 0.6 {
		t.Errorf("Expected hedged claim below base confidence, got %v", hedged)
	}

	plain := claimConfidence("The sky is blue.")
	if plain != 0.6 {
		t.Errorf("Expected base confidence 0.6, got %v", plain)
	}
}

func TestIsClaim(t *testing.T) {
	if isClaim("Hello there!") {
		t.Error("Expected greeting not to qualify as a claim")
	}
	if !isClaim("The sky is blue.") {
		t.Error("Expected copula sentence to qualify as a claim")
	}
	if !isClaim("It grew by 40 units.") {
		t.Error("Expected numeric sentence to qualify as a claim")
	}
}

func TestKeywords(t *testing.T) {
	kws := keywords("The experiment confirmed the experiment hypothesis.")

	if len(kws) != 3 {
		t.Fatalf("Expected 3 deduplicated keywords, got %d: %v", len(kws), kws)
	}
	if kws[0] != "experiment" || kws[1] != "confirmed" || kws[2] != "hypothesis" {
		t.Errorf("Unexpected keywords: %v", kws)
	}
}
