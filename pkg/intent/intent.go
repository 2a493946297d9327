// Package intent classifies transcribed utterances into assistant
// commands. The primary classifier asks an OpenAI-compatible LLM; a
// deterministic local phrase matcher serves as the offline fallback.
package intent

import "context"

// Kind identifies what the user asked the assistant to do.
type Kind string

const (
	// KindSwitchTab focuses an already open tab
	KindSwitchTab Kind = "switch_tab"

	// KindNavigate loads a destination in the current tab
	KindNavigate Kind = "navigate"

	// KindOpenTab loads a destination in a new tab
	KindOpenTab Kind = "open_tab"

	// KindListTabs reads back the open tabs
	KindListTabs Kind = "list_tabs"

	// KindHelp explains what the assistant can do
	KindHelp Kind = "help"

	// KindUnknown is returned when no intent could be recognized
	KindUnknown Kind = "unknown"
)

// Intent is a classified utterance.
type Intent struct {
	// Kind is the recognized command
	Kind Kind

	// Target is the free-text argument: the tab query for switch_tab,
	// the destination phrase for navigate/open_tab
	Target string

	// Confidence is the classifier's self-reported certainty in [0,1]
	Confidence float64

	// Source names the classifier that produced this intent ("llm" or "local")
	Source string
}

// Classifier turns a transcribed utterance into an Intent.
type Classifier interface {
	Classify(ctx context.Context, utterance string) (Intent, error)
}
