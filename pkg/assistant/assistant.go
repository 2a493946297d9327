// Package assistant dispatches classified voice commands: it feeds tab
// snapshots to the resolver, performs the resulting browser effects,
// and phrases the outcome the way a voice front-end would speak it.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/voxpilot/voxpilot/pkg/intent"
	"github.com/voxpilot/voxpilot/pkg/logging"
	"github.com/voxpilot/voxpilot/pkg/resolve"
)

// ErrEmptyUtterance is returned when the transcript is blank. Blank
// input is rejected here, before the resolver ever sees it.
var ErrEmptyUtterance = errors.New("empty utterance")

const helpText = "You can say: \"switch to <tab>\", \"go to <site>\", " +
	"\"open a new tab with <site>\", or \"list tabs\"."

// TabSession is the slice of browser capability the assistant needs.
// *browser.Session satisfies it; tests substitute a fake.
type TabSession interface {
	Tabs() ([]resolve.Tab, error)
	ActivateTab(id string) error
	NavigateActive(url string) error
	OpenTab(url string) (resolve.Tab, error)
}

// Response is what the assistant would speak back to the user after a
// command, along with the data the front-end may want to display.
type Response struct {
	// Text is the spoken/displayed reply
	Text string

	// Intent is the classification the reply acted on
	Intent intent.Intent

	// URL is the resolved destination, when the command navigated
	URL string

	// Tab is the selected tab, when the command switched tabs
	Tab *resolve.ScoredTab
}

// Assistant wires intent classification, resolution, and browser
// effects together.
type Assistant struct {
	session    TabSession
	classifier intent.Classifier
	fallback   intent.Classifier
	resolver   *resolve.Resolver
	policy     *NavigationPolicy
	logger     *logging.Logger
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithClassifier sets the primary classifier (typically LLM-backed).
func WithClassifier(c intent.Classifier) Option {
	return func(a *Assistant) {
		a.classifier = c
	}
}

// WithFallbackClassifier sets the classifier used when the primary
// one returns an error.
func WithFallbackClassifier(c intent.Classifier) Option {
	return func(a *Assistant) {
		a.fallback = c
	}
}

// WithResolver sets a configured resolver.
func WithResolver(r *resolve.Resolver) Option {
	return func(a *Assistant) {
		a.resolver = r
	}
}

// WithPolicy sets the navigation deny policy.
func WithPolicy(p *NavigationPolicy) Option {
	return func(a *Assistant) {
		a.policy = p
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *Assistant) {
		a.logger = l
	}
}

// New creates an Assistant over the given browser session. Without
// options it classifies locally and resolves with the defaults.
func New(session TabSession, opts ...Option) *Assistant {
	a := &Assistant{
		session:    session,
		classifier: intent.NewLocalClassifier(),
		resolver:   resolve.New(),
		logger:     logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle processes one transcribed utterance end to end.
func (a *Assistant) Handle(ctx context.Context, utterance string) (Response, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return Response{}, ErrEmptyUtterance
	}

	in, err := a.classifier.Classify(ctx, utterance)
	if err != nil {
		if a.fallback == nil {
			return Response{}, fmt.Errorf("intent classification failed: %w", err)
		}
		a.logger.Warnf("primary classifier failed, using fallback: %v", err)
		in, err = a.fallback.Classify(ctx, utterance)
		if err != nil {
			return Response{}, fmt.Errorf("intent classification failed: %w", err)
		}
	}

	a.logger.Debugf("utterance %q classified as %s target=%q (%s, %.2f)",
		utterance, in.Kind, in.Target, in.Source, in.Confidence)

	switch in.Kind {
	case intent.KindSwitchTab:
		return a.switchTab(in)
	case intent.KindNavigate:
		return a.navigate(in, false)
	case intent.KindOpenTab:
		return a.navigate(in, true)
	case intent.KindListTabs:
		return a.listTabs(in)
	case intent.KindHelp:
		return Response{Text: helpText, Intent: in}, nil
	default:
		return Response{
			Text:   "Sorry, I didn't catch that. Say \"help\" for examples.",
			Intent: in,
		}, nil
	}
}

func (a *Assistant) switchTab(in intent.Intent) (Response, error) {
	if in.Target == "" {
		return Response{Text: "Which tab should I switch to?", Intent: in}, nil
	}

	tabs, err := a.session.Tabs()
	if err != nil {
		return Response{}, fmt.Errorf("failed to list tabs: %w", err)
	}

	best, err := a.resolver.SelectTab(in.Target, tabs)
	if errors.Is(err, resolve.ErrNoMatch) {
		// Expected under normal use: announce, don't fail.
		return Response{
			Text:   fmt.Sprintf("No open tab matches %q.", in.Target),
			Intent: in,
		}, nil
	}
	if err != nil {
		return Response{}, err
	}

	if err := a.session.ActivateTab(best.Tab.ID); err != nil {
		return Response{}, fmt.Errorf("failed to activate tab: %w", err)
	}

	a.logger.Infof("switched to tab %s (%s) score=%.1f", best.Tab.ID, best.Tab.Title, best.Score)

	title := best.Tab.Title
	if title == "" {
		title = best.Tab.URL
	}
	return Response{
		Text:   fmt.Sprintf("Switched to %s.", title),
		Intent: in,
		Tab:    &best,
		URL:    best.Tab.URL,
	}, nil
}

func (a *Assistant) navigate(in intent.Intent, newTab bool) (Response, error) {
	if in.Target == "" {
		return Response{Text: "Where would you like to go?", Intent: in}, nil
	}

	dest := a.resolver.NavigationURL(in.Target)

	if err := a.policy.Check(dest); err != nil {
		var violation *PolicyViolation
		if errors.As(err, &violation) {
			a.logger.Warnf("navigation denied: %v", violation)
			return Response{
				Text:   fmt.Sprintf("I can't open %s, it's blocked by your settings.", violation.Host),
				Intent: in,
			}, nil
		}
		return Response{}, err
	}

	if newTab {
		tab, err := a.session.OpenTab(dest)
		if err != nil {
			return Response{}, fmt.Errorf("failed to open tab: %w", err)
		}
		a.logger.Infof("opened tab %s on %s", tab.ID, dest)
		return Response{
			Text:   fmt.Sprintf("Opened %s in a new tab.", speakableURL(dest)),
			Intent: in,
			URL:    dest,
			Tab:    &resolve.ScoredTab{Tab: tab},
		}, nil
	}

	if err := a.session.NavigateActive(dest); err != nil {
		return Response{}, fmt.Errorf("failed to navigate: %w", err)
	}
	a.logger.Infof("navigated active tab to %s", dest)
	return Response{
		Text:   fmt.Sprintf("Going to %s.", speakableURL(dest)),
		Intent: in,
		URL:    dest,
	}, nil
}

func (a *Assistant) listTabs(in intent.Intent) (Response, error) {
	tabs, err := a.session.Tabs()
	if err != nil {
		return Response{}, fmt.Errorf("failed to list tabs: %w", err)
	}

	if len(tabs) == 0 {
		return Response{Text: "There are no open tabs.", Intent: in}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You have %d open tabs:", len(tabs))
	for _, tab := range tabs {
		title := tab.Title
		if title == "" {
			title = tab.URL
		}
		fmt.Fprintf(&b, "\n  %s. %s", tab.ID, title)
	}
	return Response{Text: b.String(), Intent: in}, nil
}

// speakableURL shortens a URL to something a voice reply can say.
func speakableURL(rawURL string) string {
	s := strings.TrimPrefix(rawURL, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "www.")
	if i := strings.IndexAny(s, "/?"); i != -1 {
		s = s[:i]
	}
	return s
}
