// Package nav drives protective actions at the two checkpoints of a
// browser navigation: before the navigation completes and once it is
// committed. At most one protective action is taken per navigation,
// enforced by per-navigation state rather than by event ordering.
package nav

import (
	"context"
	"log/slog"
	"sync"

	"github.com/talhabaig007/PhishStop/internal/model"
)

// Phase tracks how far a navigation has progressed through its
// checkpoints. Phases only move forward; ActionTaken is terminal.
type Phase int

// Navigation phases.
const (
	PhaseUnchecked Phase = iota
	PhasePreChecked
	PhasePostChecked
	PhaseActionTaken
)

func (p Phase) String() string {
	switch p {
	case PhasePreChecked:
		return "pre_checked"
	case PhasePostChecked:
		return "post_checked"
	case PhaseActionTaken:
		return "action_taken"
	default:
		return "unchecked"
	}
}

// Action is the protective decision for one checkpoint evaluation.
type Action int

// Protective actions. Block is reserved for phishing verdicts; a
// suspicious verdict at most warns.
const (
	ActionAllow Action = iota
	ActionWarn
	ActionBlock
)

func (a Action) String() string {
	switch a {
	case ActionWarn:
		return "warn"
	case ActionBlock:
		return "block"
	default:
		return "allow"
	}
}

// Decision is the outcome of one checkpoint evaluation.
type Decision struct {
	Verdict model.Verdict
	Action  Action
}

// navState is the per-(tab, navigation) record. A tab holds state for at
// most one navigation; a new navigation replaces it.
type navState struct {
	navID   string
	verdict model.Verdict
	phase   Phase
}

// Engine is the navigation decision engine. One engine serves all tabs;
// navigations in different tabs proceed independently.
type Engine struct {
	source     VerdictSource
	dispatcher ActionDispatcher
	settings   SettingsProvider
	logger     *slog.Logger
	states     map[int]*navState
	mu         sync.Mutex
}

// NewEngine creates an engine over the given verdict source, dispatcher,
// and settings provider.
func NewEngine(source VerdictSource, dispatcher ActionDispatcher, settings SettingsProvider, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		source:     source,
		dispatcher: dispatcher,
		settings:   settings,
		logger:     logger,
		states:     make(map[int]*navState),
	}
}

// PreCheck evaluates a navigation before the browser completes it. A
// phishing verdict blocks (policy permitting) and terminates the
// navigation; an allow here does not consume the action budget.
func (e *Engine) PreCheck(ctx context.Context, tabID int, navID, url string) Decision {
	return e.checkpoint(ctx, tabID, navID, url, PhasePreChecked)
}

// PostCheck evaluates the committed URL once the browser lands on it. If
// the pre-check already acted, the post-check observes ActionTaken and
// does nothing.
func (e *Engine) PostCheck(ctx context.Context, tabID int, navID, url string) Decision {
	return e.checkpoint(ctx, tabID, navID, url, PhasePostChecked)
}

func (e *Engine) checkpoint(ctx context.Context, tabID int, navID, url string, phase Phase) Decision {
	settings := e.settings.Settings()
	if !settings.RealTimeProtection {
		return Decision{Action: ActionAllow}
	}

	e.ensureState(tabID, navID)

	if e.actionAlreadyTaken(tabID, navID) {
		e.logger.Debug("checkpoint skipped, action already taken",
			"tab_id", tabID,
			"nav_id", navID,
			"checkpoint", phase)
		return Decision{Action: ActionAllow}
	}

	v := e.source.Analyze(ctx, url)

	e.mu.Lock()
	st, ok := e.states[tabID]
	if !ok || st.navID != navID {
		e.mu.Unlock()
		// The navigation went away while we were analyzing. The verdict
		// is cached for later, but there is nothing to act against.
		e.logger.Debug("verdict arrived for stale navigation",
			"tab_id", tabID,
			"nav_id", navID,
			"url", url)
		return Decision{Action: ActionAllow, Verdict: v}
	}
	if st.phase == PhaseActionTaken {
		e.mu.Unlock()
		return Decision{Action: ActionAllow, Verdict: v}
	}

	st.verdict = v
	if phase > st.phase {
		st.phase = phase
	}

	action := decideAction(v.Label, settings)
	if action != ActionAllow {
		st.phase = PhaseActionTaken
	}
	e.mu.Unlock()

	if action != ActionAllow {
		e.dispatch(ctx, tabID, action, v)
	}

	e.logger.Info("navigation checkpoint decided",
		"tab_id", tabID,
		"nav_id", navID,
		"url", url,
		"label", v.Label,
		"risk_score", v.RiskScore,
		"action", action)

	return Decision{Action: action, Verdict: v}
}

// NavigatedAway drops state for a navigation the tab abandoned. An
// analysis still in flight for it completes into the cache but is not
// acted upon.
func (e *Engine) NavigatedAway(tabID int, navID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if st, ok := e.states[tabID]; ok && st.navID == navID {
		delete(e.states, tabID)
	}
}

// TabClosed drops all state for a tab.
func (e *Engine) TabClosed(tabID int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.states, tabID)
}

// ActiveNavigations reports how many navigations currently hold state.
func (e *Engine) ActiveNavigations() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.states)
}

// ensureState installs fresh state for (tabID, navID), replacing state
// left over from any previous navigation in the tab.
func (e *Engine) ensureState(tabID int, navID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.states[tabID]
	if !ok || st.navID != navID {
		e.states[tabID] = &navState{navID: navID, phase: PhaseUnchecked}
	}
}

func (e *Engine) actionAlreadyTaken(tabID int, navID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, ok := e.states[tabID]
	return ok && st.navID == navID && st.phase == PhaseActionTaken
}

// decideAction maps a verdict label to the protective action the policy
// permits. Block is reserved for phishing; suspicious never blocks.
func decideAction(label model.Label, s Settings) Action {
	switch label {
	case model.LabelPhishing:
		if s.BlockPages {
			return ActionBlock
		}
		if s.ShowWarnings {
			return ActionWarn
		}
	case model.LabelSuspicious:
		if s.ShowWarnings {
			return ActionWarn
		}
	}
	return ActionAllow
}

// dispatch performs the action against the UI collaborator. Failures are
// logged, never propagated: the phase guard, not the dispatch result, is
// what keeps actions single-shot.
func (e *Engine) dispatch(ctx context.Context, tabID int, action Action, v model.Verdict) {
	var err error
	switch {
	case action == ActionBlock:
		err = e.dispatcher.Block(ctx, tabID, v)
	case v.Label == model.LabelPhishing:
		err = e.dispatcher.ShowWarning(ctx, tabID, v)
	default:
		err = e.dispatcher.ShowSuspiciousWarning(ctx, tabID, v)
	}

	if err != nil {
		e.logger.Error("action dispatch failed",
			"tab_id", tabID,
			"action", action,
			"url", v.URL,
			"error", err)
	}
}
