package assistant

import (
	"context"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxpilot/voxpilot/pkg/intent"
	"github.com/voxpilot/voxpilot/pkg/resolve"
)

// fakeSession records effects instead of driving a browser.
type fakeSession struct {
	tabs        []resolve.Tab
	tabsErr     error
	activated   []string
	navigated   []string
	opened      []string
	activateErr error
}

func (f *fakeSession) Tabs() ([]resolve.Tab, error) {
	return f.tabs, f.tabsErr
}

func (f *fakeSession) ActivateTab(id string) error {
	if f.activateErr != nil {
		return f.activateErr
	}
	f.activated = append(f.activated, id)
	return nil
}

func (f *fakeSession) NavigateActive(url string) error {
	f.navigated = append(f.navigated, url)
	return nil
}

func (f *fakeSession) OpenTab(url string) (resolve.Tab, error) {
	f.opened = append(f.opened, url)
	return resolve.Tab{ID: strconv.Itoa(len(f.tabs) + len(f.opened) - 1), URL: url}, nil
}

func openTabs() []resolve.Tab {
	return []resolve.Tab{
		{ID: "0", Title: "GitHub - Pull Requests", URL: "https://github.com/pulls", WindowID: "w"},
		{ID: "1", Title: "YouTube", URL: "https://www.youtube.com", WindowID: "w"},
	}
}

func TestHandleSwitchTab(t *testing.T) {
	session := &fakeSession{tabs: openTabs()}
	a := New(session)

	resp, err := a.Handle(context.Background(), "switch to git hub")
	require.NoError(t, err)

	require.NotNil(t, resp.Tab)
	assert.Equal(t, "0", resp.Tab.Tab.ID)
	assert.GreaterOrEqual(t, resp.Tab.Score, 85.0)
	assert.Equal(t, []string{"0"}, session.activated)
	assert.Contains(t, resp.Text, "GitHub - Pull Requests")
}

func TestHandleSwitchTabNoMatchAnnounces(t *testing.T) {
	session := &fakeSession{tabs: openTabs()}
	a := New(session)

	resp, err := a.Handle(context.Background(), "switch to the weather station")
	require.NoError(t, err)

	assert.Empty(t, session.activated)
	assert.Contains(t, resp.Text, "No open tab matches")
}

func TestHandleSwitchTabNoTabsOpen(t *testing.T) {
	session := &fakeSession{}
	a := New(session)

	resp, err := a.Handle(context.Background(), "switch to github")
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "No open tab matches")
}

func TestHandleNavigate(t *testing.T) {
	session := &fakeSession{tabs: openTabs()}
	a := New(session)

	resp, err := a.Handle(context.Background(), "go to github")
	require.NoError(t, err)

	assert.Equal(t, "https://github.com", resp.URL)
	assert.Equal(t, []string{"https://github.com"}, session.navigated)
	assert.Contains(t, resp.Text, "github.com")
}

func TestHandleNavigateFallsBackToSearch(t *testing.T) {
	session := &fakeSession{tabs: openTabs()}
	a := New(session)

	resp, err := a.Handle(context.Background(), "go to purple elephant")
	require.NoError(t, err)
	assert.Contains(t, resp.URL, "search?q=purple+elephant")
}

func TestHandleOpenTab(t *testing.T) {
	session := &fakeSession{tabs: openTabs()}
	a := New(session)

	resp, err := a.Handle(context.Background(), "open a new tab with gmail")
	require.NoError(t, err)

	assert.Equal(t, []string{"https://mail.google.com"}, session.opened)
	assert.Contains(t, resp.Text, "new tab")
}

func TestHandlePolicyDeniesNavigation(t *testing.T) {
	policy, err := NewNavigationPolicy([]string{"*.github.com", "github.com"})
	require.NoError(t, err)

	session := &fakeSession{tabs: openTabs()}
	a := New(session, WithPolicy(policy))

	resp, err := a.Handle(context.Background(), "go to github")
	require.NoError(t, err)

	assert.Empty(t, session.navigated)
	assert.Contains(t, resp.Text, "blocked")
}

func TestHandleListTabs(t *testing.T) {
	session := &fakeSession{tabs: openTabs()}
	a := New(session)

	resp, err := a.Handle(context.Background(), "list tabs")
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "2 open tabs")
	assert.Contains(t, resp.Text, "YouTube")
}

func TestHandleHelpAndUnknown(t *testing.T) {
	session := &fakeSession{}
	a := New(session)

	resp, err := a.Handle(context.Background(), "help")
	require.NoError(t, err)
	assert.Contains(t, resp.Text, "switch to")

	resp, err = a.Handle(context.Background(), "flibbertigibbet quux")
	require.NoError(t, err)
	assert.Equal(t, intent.KindUnknown, resp.Intent.Kind)
}

func TestHandleEmptyUtterance(t *testing.T) {
	a := New(&fakeSession{})

	_, err := a.Handle(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyUtterance)
}

// failingClassifier always errors, to exercise the fallback path.
type failingClassifier struct{}

func (failingClassifier) Classify(context.Context, string) (intent.Intent, error) {
	return intent.Intent{}, fmt.Errorf("api unreachable")
}

func TestHandleFallbackClassifier(t *testing.T) {
	session := &fakeSession{tabs: openTabs()}
	a := New(session,
		WithClassifier(failingClassifier{}),
		WithFallbackClassifier(intent.NewLocalClassifier()),
	)

	resp, err := a.Handle(context.Background(), "switch to youtube")
	require.NoError(t, err)
	require.NotNil(t, resp.Tab)
	assert.Equal(t, "1", resp.Tab.Tab.ID)
}

func TestHandleNoFallbackPropagatesError(t *testing.T) {
	a := New(&fakeSession{}, WithClassifier(failingClassifier{}))

	_, err := a.Handle(context.Background(), "switch to youtube")
	assert.ErrorContains(t, err, "intent classification failed")
}

func TestHandleCustomResolverSites(t *testing.T) {
	session := &fakeSession{tabs: openTabs()}
	a := New(session, WithResolver(resolve.New(
		resolve.WithSites(resolve.SitePair{Keyword: "standup notes", URL: "https://wiki.example.com/standup"}),
	)))

	resp, err := a.Handle(context.Background(), "go to standup notes")
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.example.com/standup", resp.URL)
}

func TestSpeakableURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "https://www.youtube.com", want: "youtube.com"},
		{in: "https://github.com/pulls", want: "github.com"},
		{in: "http://localhost:8080/admin", want: "localhost:8080"},
		{in: "https://www.google.com/search?q=x", want: "google.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, speakableURL(tt.in))
	}
}
