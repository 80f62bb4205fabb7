package nav

import (
	"context"

	"github.com/talhabaig007/PhishStop/internal/model"
)

// VerdictSource produces a verdict for a URL. Implementations never fail;
// the analysis pipeline absorbs its own errors into degraded verdicts.
type VerdictSource interface {
	Analyze(ctx context.Context, url string) model.Verdict
}

// ActionDispatcher performs protective actions against the browser/UI
// collaborator. Dispatch is fire-and-forget: the engine logs failures and
// its state advances regardless.
type ActionDispatcher interface {
	Block(ctx context.Context, tabID int, v model.Verdict) error
	ShowWarning(ctx context.Context, tabID int, v model.Verdict) error
	ShowSuspiciousWarning(ctx context.Context, tabID int, v model.Verdict) error
}

// Settings are the protection policy booleans read at decision time.
type Settings struct {
	RealTimeProtection bool
	BlockPages         bool
	ShowWarnings       bool
}

// SettingsProvider supplies the current policy. The engine treats it as
// external read-only configuration, not owned state.
type SettingsProvider interface {
	Settings() Settings
}

// StaticSettings is a fixed-policy SettingsProvider.
type StaticSettings Settings

// Settings returns the fixed policy.
func (s StaticSettings) Settings() Settings {
	return Settings(s)
}
