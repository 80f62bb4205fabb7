package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talhabaig007/PhishStop/internal/model"
)

func TestFormatLabel(t *testing.T) {
	tests := []struct {
		label model.Label
		want  string
	}{
		{model.LabelSafe, "SAFE"},
		{model.LabelSuspicious, "SUSPICIOUS"},
		{model.LabelPhishing, "PHISHING"},
	}

	for _, tt := range tests {
		t.Run(string(tt.label), func(t *testing.T) {
			assert.Contains(t, FormatLabel(tt.label), tt.want)
		})
	}
}

func TestRenderVerdict(t *testing.T) {
	v := model.Verdict{
		URL:        "http://192.168.1.5/login",
		Label:      model.LabelPhishing,
		Methods:    []model.DetectionMethod{model.MethodHeuristic},
		Reasons:    []string{"Uses IP address", "Not using HTTPS"},
		RiskScore:  70,
		Confidence: 100,
	}

	out := RenderVerdict(v)
	assert.Contains(t, out, "URL Analysis")
	assert.Contains(t, out, "http://192.168.1.5/login")
	assert.Contains(t, out, "PHISHING")
	assert.Contains(t, out, "70/100")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "heuristic")
	assert.Contains(t, out, "Uses IP address")
	assert.Contains(t, out, "Not using HTTPS")
}

func TestRenderVerdictNoReasons(t *testing.T) {
	v := model.Verdict{
		URL:   "https://example.com",
		Label: model.LabelSafe,
	}

	out := RenderVerdict(v)
	assert.Contains(t, out, "SAFE")
	assert.Contains(t, out, "none")
}

func TestRenderVerdictLine(t *testing.T) {
	v := model.Verdict{
		URL:        "https://paypal-secure.tk/login",
		Label:      model.LabelSuspicious,
		RiskScore:  50,
		Confidence: 75,
	}

	line := RenderVerdictLine(v)
	assert.Contains(t, line, "https://paypal-secure.tk/login")
	assert.Contains(t, line, "suspicious")
	assert.Contains(t, line, "score 50")
	assert.Contains(t, line, "confidence 75%")
}

func TestRenderStats(t *testing.T) {
	out := RenderStats(model.StatsSnapshot{
		TotalAnalyzed:    42,
		PhishingDetected: 7,
		AvgRiskScore:     33.25,
	})

	assert.Contains(t, out, "Detection Statistics")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "33.2")
}
