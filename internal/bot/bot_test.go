package bot

import (
	"context"
	"testing"
	"time"

	"github.com/axobot/axobot/internal/axosoft"
	"github.com/axobot/axobot/internal/bus"
	"github.com/axobot/axobot/internal/config"
)

// fakeGateway is a scriptable axosoft.Gateway for tests.
type fakeGateway struct {
	projects    []axosoft.Project
	projectsErr error
	// projectsBlock, when non-nil, makes FetchProjects wait until closed.
	projectsBlock chan struct{}
	projectsBusy  chan struct{}

	labels    axosoft.Vocabulary
	labelsErr error

	item         *axosoft.Item
	itemErr      error
	fetchCalls   int
	created      *axosoft.CreatedItem
	createErr    error
	createCalls  int
	logs         []axosoft.WorkLogEntry
	logsErr      error
	logCalls     int
	lastLogRange [2]string
}

func (g *fakeGateway) FetchProjects(ctx context.Context) ([]axosoft.Project, error) {
	if g.projectsBusy != nil {
		close(g.projectsBusy)
		g.projectsBusy = nil
	}
	if g.projectsBlock != nil {
		select {
		case <-g.projectsBlock:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return g.projects, g.projectsErr
}

func (g *fakeGateway) FetchItemKindLabels(ctx context.Context) (axosoft.Vocabulary, error) {
	if g.labelsErr != nil {
		return nil, g.labelsErr
	}
	if g.labels == nil {
		return axosoft.DefaultVocabulary(), nil
	}
	return g.labels, nil
}

func (g *fakeGateway) FetchItem(ctx context.Context, kind axosoft.ItemKind, id string) (*axosoft.Item, error) {
	g.fetchCalls++
	return g.item, g.itemErr
}

func (g *fakeGateway) CreateItem(ctx context.Context, kind axosoft.ItemKind, title string, projectID int) (*axosoft.CreatedItem, error) {
	g.createCalls++
	return g.created, g.createErr
}

func (g *fakeGateway) FetchWorkLogs(ctx context.Context, startDate, endDate string) ([]axosoft.WorkLogEntry, error) {
	g.logCalls++
	g.lastLogRange = [2]string{startDate, endDate}
	return g.logs, g.logsErr
}

// memCreds is an in-memory credential store.
type memCreds struct {
	baseURL string
	token   string
}

func (c *memCreds) BaseURL() string              { return c.baseURL }
func (c *memCreds) AccessToken() string          { return c.token }
func (c *memCreds) SetBaseURL(u string) error    { c.baseURL = u; return nil }
func (c *memCreds) SetAccessToken(t string) error { c.token = t; return nil }

func authedCreds() *memCreds {
	return &memCreds{baseURL: "https://acme.axosoft.com", token: "tok"}
}

// memSnapshots is an in-memory SnapshotStore.
type memSnapshots struct {
	projects []axosoft.Project
	vocab    axosoft.Vocabulary
}

func (s *memSnapshots) SaveSnapshot(projects []axosoft.Project, vocab axosoft.Vocabulary) error {
	s.projects = projects
	s.vocab = vocab
	return nil
}

func (s *memSnapshots) LoadSnapshot() ([]axosoft.Project, axosoft.Vocabulary, error) {
	if s.vocab == nil {
		return s.projects, axosoft.DefaultVocabulary(), nil
	}
	return s.projects, s.vocab, nil
}

func testConfig() *config.Config { return config.DefaultConfig() }

func testBus() *bus.MessageBus { return bus.NewMessageBus() }

// newTestApp builds an authenticated App over the fake gateway.
func newTestApp(t *testing.T, gw *fakeGateway, creds *memCreds) *App {
	t.Helper()
	if creds == nil {
		creds = authedCreds()
	}
	return New(Options{
		Config:      config.DefaultConfig(),
		Bus:         bus.NewMessageBus(),
		Gateway:     gw,
		Credentials: creds,
		Now:         func() time.Time { return time.Date(2015, 7, 15, 12, 0, 0, 0, time.UTC) },
	})
}

// run routes a line and returns the handler's replies.
func run(t *testing.T, app *App, line string) []string {
	t.Helper()
	match, ok := app.Router().Route(line)
	if !ok {
		t.Fatalf("no command matched %q", line)
	}
	var replies []string
	match.Handle(context.Background(), func(m string) { replies = append(replies, m) })
	return replies
}
