package textmetrics

import "testing"

func TestClarityNoAnswers(t *testing.T) {
	if got := Clarity(nil); got != 0 {
		t.Fatalf("Clarity(nil) = %d, want 0", got)
	}
	if got := Clarity([]string{"", "   "}); got != 0 {
		t.Fatalf("Clarity of blank answers = %d, want 0", got)
	}
}

func TestClarityShortSentenceBelowIdealBand(t *testing.T) {
	short := Clarity([]string{"I like Go."})
	ideal := Clarity([]string{"We plan the work and then we test the code and ship it all on time."})

	if short <= 0 || short > 100 {
		t.Fatalf("short answer score out of range: %d", short)
	}
	if ideal <= 0 || ideal > 100 {
		t.Fatalf("ideal answer score out of range: %d", ideal)
	}
	if short >= ideal {
		t.Fatalf("short sentence (%d) should score below ideal sentence length (%d)", short, ideal)
	}
}

func TestClarityRange(t *testing.T) {
	answers := []string{
		"Containers isolate processes using namespaces and cgroups.",
		"I would add an index, measure with the profiler, then re-check the query plan.",
	}
	got := Clarity(answers)
	if got < 0 || got > 100 {
		t.Fatalf("score out of range: %d", got)
	}
}

func TestSentimentNeutralWithoutLexiconWords(t *testing.T) {
	if got := Sentiment([]string{"the weather seems ordinary today"}); got != 50 {
		t.Fatalf("lexicon-absent answer = %d, want exactly 50", got)
	}
	if got := Sentiment(nil); got != 50 {
		t.Fatalf("no answers = %d, want 50", got)
	}
}

func TestSentimentPolarity(t *testing.T) {
	positive := Sentiment([]string{"great work overall"})
	negative := Sentiment([]string{"that was a terrible awful experience"})

	if positive <= 50 {
		t.Fatalf("positive answer scored %d, want > 50", positive)
	}
	if negative >= 50 {
		t.Fatalf("negative answer scored %d, want < 50", negative)
	}
}

func TestSentimentNegationFlipsWeight(t *testing.T) {
	plain := Sentiment([]string{"the project went good"})
	negated := Sentiment([]string{"the project went not good"})

	if plain <= 50 {
		t.Fatalf("plain positive scored %d, want > 50", plain)
	}
	if negated >= 50 {
		t.Fatalf("negated positive scored %d, want < 50", negated)
	}
}

func TestSentimentIgnoresPunctuationAndCase(t *testing.T) {
	if got := Sentiment([]string{"Excellent!!! Truly EXCELLENT."}); got != 100 {
		t.Fatalf("saturated positive = %d, want 100", got)
	}
}

func TestResponseStats(t *testing.T) {
	total, ratio := ResponseStats([]string{"the cat", "the dog"})
	if total != 4 {
		t.Fatalf("total words = %d, want 4", total)
	}
	if ratio != 0.75 {
		t.Fatalf("unique ratio = %v, want 0.75", ratio)
	}

	total, ratio = ResponseStats(nil)
	if total != 0 || ratio != 0 {
		t.Fatalf("empty stats = (%d, %v), want (0, 0)", total, ratio)
	}
}
