package heuristic

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talhabaig007/PhishStop/internal/feature"
	"github.com/talhabaig007/PhishStop/internal/model"
)

func TestScore(t *testing.T) {
	scorer := NewScorer(DefaultRules())

	tests := []struct {
		name        string
		url         string
		wantScore   int
		wantReasons []string
		wantHard    bool
	}{
		{
			name:        "free tld on https",
			url:         "https://paypal-secure.tk/login",
			wantScore:   30,
			wantReasons: []string{"Suspicious TLD"},
			wantHard:    false,
		},
		{
			name:        "ip literal over http",
			url:         "http://192.168.1.5/login",
			wantScore:   70,
			wantReasons: []string{"Uses IP address", "Not using HTTPS"},
			wantHard:    true,
		},
		{
			name:        "deep subdomains over http",
			url:         "http://a.b.c.d.e.example.com/x",
			wantScore:   35,
			wantReasons: []string{"Not using HTTPS", "Excessive subdomains"},
			wantHard:    false,
		},
		{
			name:        "clean https url",
			url:         "https://example.com/about",
			wantScore:   0,
			wantReasons: nil,
			wantHard:    false,
		},
		{
			name:        "very long url",
			url:         "https://example.com/" + strings.Repeat("x", 120),
			wantScore:   10,
			wantReasons: []string{"Very long URL"},
			wantHard:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := feature.Extract(tt.url)
			require.NoError(t, err)

			score, reasons, hard := scorer.Score(f)
			assert.Equal(t, tt.wantScore, score)
			assert.Equal(t, tt.wantReasons, reasons)
			assert.Equal(t, tt.wantHard, hard)
		})
	}
}

func TestScoreAllRulesFire(t *testing.T) {
	scorer := NewScorer(DefaultRules())

	f := model.URLFeatures{
		Length:         150,
		IsIPLiteral:    true,
		TLD:            "tk",
		Scheme:         model.SchemeHTTP,
		SubdomainDepth: 4,
	}

	score, reasons, hard := scorer.Score(f)

	// 10+50+30+20+15 = 125, clamped to 100.
	assert.Equal(t, 100, score)
	assert.True(t, hard)
	assert.Equal(t, []string{
		"Very long URL",
		"Uses IP address",
		"Suspicious TLD",
		"Not using HTTPS",
		"Excessive subdomains",
	}, reasons)
}

func TestScoreMonotonic(t *testing.T) {
	scorer := NewScorer(DefaultRules())

	// Each step fires one more rule than the last; the score must never drop.
	steps := []model.URLFeatures{
		{Scheme: model.SchemeHTTPS},
		{Scheme: model.SchemeHTTPS, Length: 150},
		{Scheme: model.SchemeHTTPS, Length: 150, TLD: "ml"},
		{Scheme: model.SchemeHTTP, Length: 150, TLD: "ml"},
		{Scheme: model.SchemeHTTP, Length: 150, TLD: "ml", SubdomainDepth: 3},
		{Scheme: model.SchemeHTTP, Length: 150, TLD: "ml", SubdomainDepth: 3, IsIPLiteral: true},
	}

	prev := -1
	for _, f := range steps {
		score, _, _ := scorer.Score(f)
		assert.GreaterOrEqual(t, score, prev)
		prev = score
	}
}

func TestEvaluate(t *testing.T) {
	scorer := NewScorer(DefaultRules())
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("safe verdict below suspicious threshold", func(t *testing.T) {
		f, err := feature.Extract("https://paypal-secure.tk/login")
		require.NoError(t, err)

		v := scorer.Evaluate(f, at)
		assert.Equal(t, "https://paypal-secure.tk/login", v.URL)
		assert.Equal(t, 30, v.RiskScore)
		assert.Equal(t, model.LabelSafe, v.Label)
		assert.Equal(t, 45, v.Confidence)
		assert.Equal(t, []model.DetectionMethod{model.MethodHeuristic}, v.Methods)
		assert.Equal(t, at, v.ComputedAt)
	})

	t.Run("hard indicator forces phishing", func(t *testing.T) {
		f, err := feature.Extract("http://192.168.1.5/login")
		require.NoError(t, err)

		v := scorer.Evaluate(f, at)
		assert.Equal(t, 70, v.RiskScore)
		assert.Equal(t, model.LabelPhishing, v.Label)
		assert.Equal(t, 100, v.Confidence)
	})

	t.Run("borderline score stays safe", func(t *testing.T) {
		f, err := feature.Extract("http://a.b.c.d.e.example.com/x")
		require.NoError(t, err)

		v := scorer.Evaluate(f, at)
		assert.Equal(t, 35, v.RiskScore)
		assert.Equal(t, model.LabelSafe, v.Label)
		assert.Equal(t, 52, v.Confidence)
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		want  model.Label
		score int
		hard  bool
	}{
		{name: "zero is safe", score: 0, want: model.LabelSafe},
		{name: "just below suspicious", score: 39, want: model.LabelSafe},
		{name: "suspicious lower bound", score: 40, want: model.LabelSuspicious},
		{name: "just below phishing", score: 59, want: model.LabelSuspicious},
		{name: "phishing lower bound", score: 60, want: model.LabelPhishing},
		{name: "maximum score", score: 100, want: model.LabelPhishing},
		{name: "hard indicator overrides zero score", score: 0, hard: true, want: model.LabelPhishing},
		{name: "hard indicator overrides mid score", score: 45, hard: true, want: model.LabelPhishing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.score, tt.hard))
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		score int
		want  int
	}{
		{score: 0, want: 0},
		{score: 30, want: 45},
		{score: 35, want: 52},
		{score: 40, want: 60},
		{score: 66, want: 99},
		{score: 67, want: 100},
		{score: 100, want: 100},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Confidence(tt.score), "score %d", tt.score)
	}
}
