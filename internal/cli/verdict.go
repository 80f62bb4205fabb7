package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/talhabaig007/PhishStop/internal/model"
)

// LabelStyle returns the color style for a verdict label.
func LabelStyle(l model.Label) lipgloss.Style {
	switch l {
	case model.LabelPhishing:
		return PhishingStyle
	case model.LabelSuspicious:
		return SuspiciousStyle
	default:
		return SafeStyle
	}
}

func labelIcon(l model.Label) string {
	switch l {
	case model.LabelPhishing:
		return ErrorIcon
	case model.LabelSuspicious:
		return WarningIcon
	default:
		return SuccessIcon
	}
}

// FormatLabel renders a label uppercased in its verdict color.
func FormatLabel(l model.Label) string {
	return LabelStyle(l).Bold(true).Render(labelIcon(l) + " " + strings.ToUpper(string(l)))
}

// RenderVerdict renders one verdict as a boxed summary.
func RenderVerdict(v model.Verdict) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", BoldStyle.Render("Verdict:"), FormatLabel(v.Label))
	fmt.Fprintf(&b, "  URL:        %s\n", v.URL)
	fmt.Fprintf(&b, "  Risk score: %d/100\n", v.RiskScore)
	fmt.Fprintf(&b, "  Confidence: %d%%\n", v.Confidence)
	fmt.Fprintf(&b, "  Methods:    %s\n", joinMethods(v.Methods))

	if len(v.Reasons) > 0 {
		b.WriteString("  Reasons:\n")
		for _, r := range v.Reasons {
			fmt.Fprintf(&b, "    • %s\n", r)
		}
	} else {
		fmt.Fprintf(&b, "  Reasons:    %s\n", SubtleStyle.Render("none"))
	}

	return RenderBox("URL Analysis", strings.TrimRight(b.String(), "\n"))
}

// RenderVerdictLine renders a one-line verdict for batch output.
func RenderVerdictLine(v model.Verdict) string {
	return fmt.Sprintf("%s %s %s",
		LabelStyle(v.Label).Render(labelIcon(v.Label)),
		v.URL,
		SubtleStyle.Render(fmt.Sprintf("%s (score %d, confidence %d%%)",
			v.Label, v.RiskScore, v.Confidence)))
}

// RenderStats renders the aggregate counters as a boxed summary.
func RenderStats(s model.StatsSnapshot) string {
	content := fmt.Sprintf("%s Totals:\n", ChartIcon) +
		fmt.Sprintf("  • URLs analyzed: %d\n", s.TotalAnalyzed) +
		fmt.Sprintf("  • Phishing detected: %d\n", s.PhishingDetected) +
		fmt.Sprintf("  • Average risk score: %.1f", s.AvgRiskScore)

	return RenderBox("Detection Statistics", content)
}

func joinMethods(methods []model.DetectionMethod) string {
	if len(methods) == 0 {
		return SubtleStyle.Render("none")
	}

	parts := make([]string, len(methods))
	for i, m := range methods {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}
