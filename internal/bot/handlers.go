package bot

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/axobot/axobot/internal/axosoft"
	"github.com/axobot/axobot/internal/command"
)

// authenticated checks that the base URL and access token are set. On
// failure it sends the remediation message and returns false.
func (a *App) authenticated(reply command.Responder) bool {
	if strings.TrimSpace(a.creds.BaseURL()) == "" {
		reply("Oops, I don't know your Axosoft URL. Please set it using \"" + a.cfg.Bot.Trigger +
			" set url yoururl.axosoft.com\" and then run \"" + a.cfg.Bot.Trigger + " authenticate\" to authenticate me.")
		return false
	}
	if strings.TrimSpace(a.creds.AccessToken()) == "" {
		reply("Oops, I haven't been authenticated yet. " + a.needAccessTokenResponse())
		return false
	}
	return true
}

// authenticateURL builds the OAuth authorize URL the user must visit.
func (a *App) authenticateURL() string {
	base := a.creds.BaseURL()
	state := strings.TrimPrefix(base, "https://")
	return base + "/auth?response_type=code&client_id=" + url.QueryEscape(a.cfg.Axosoft.ClientID) +
		"&redirect_uri=" + url.QueryEscape(a.cfg.Axosoft.AuthServer) +
		"&scope=read%20write&expiring=false&state=" + url.QueryEscape(state)
}

func (a *App) needAccessTokenResponse() string {
	return "Please visit this URL to authorize me through Axosoft: \n" + a.authenticateURL()
}

func (a *App) handleHelp(_ context.Context, _ []string, reply command.Responder) {
	trigger := a.cfg.Bot.Trigger
	vocab := a.vocab.Current()
	var b strings.Builder
	b.WriteString("Here's what I can do:\n")
	fmt.Fprintf(&b, "%s set url <url> - Store your Axosoft URL.\n", trigger)
	fmt.Fprintf(&b, "%s authenticate - Get the URL to authorize me with your account.\n", trigger)
	fmt.Fprintf(&b, "%s set token <token> - Store the access token you were given.\n", trigger)
	fmt.Fprintf(&b, "%s setup - Fetch your projects and item labels. Re-run any time for fresh data.\n", trigger)
	fmt.Fprintf(&b, "%s projects - List the projects I know about.\n", trigger)
	fmt.Fprintf(&b, "%s project <name> - Show what I know about a project.\n", trigger)
	for _, kind := range axosoft.Kinds {
		if !kind.SupportsCreate() {
			continue
		}
		singular := strings.ToLower(vocab.Label(kind, false))
		fmt.Fprintf(&b, "%s %s <id> - Show information about a %s.\n", trigger, singular, singular)
		fmt.Fprintf(&b, "%s add %s \"<title>\" to <project> - Create a new %s.\n", trigger, singular, singular)
	}
	fmt.Fprintf(&b, "%s %s from <date> [to <date>] - Work log report, grouped by user and item.",
		trigger, strings.ToLower(vocab.Label(axosoft.KindWorkLog, true)))
	reply(b.String())
}

func (a *App) handleAuthenticate(_ context.Context, _ []string, reply command.Responder) {
	if strings.TrimSpace(a.creds.BaseURL()) == "" {
		reply("Oops, I don't know your Axosoft URL. Please set it using \"" + a.cfg.Bot.Trigger +
			" set url yoururl.axosoft.com\" and then run \"" + a.cfg.Bot.Trigger + " authenticate\" to authenticate me.")
		return
	}
	reply(a.needAccessTokenResponse())
}

func (a *App) handleSetURL(_ context.Context, args []string, reply command.Responder) {
	raw := strings.TrimSpace(args[0])
	if raw == "" {
		reply("Please provide a URL.")
		return
	}
	normalized, err := normalizeBaseURL(raw)
	if err != nil {
		reply("Sorry, that doesn't look like a URL I can use. Please provide your Axosoft URL in the format myaccount.axosoft.com.")
		return
	}
	if err := a.creds.SetBaseURL(normalized); err != nil {
		reply("Sorry, something unexpected happened while saving your URL. Error: " + err.Error())
		return
	}
	reply("Successfully updated your Axosoft URL. You can now run \"" + a.cfg.Bot.Trigger + " authenticate\" to authenticate me.")
}

// normalizeBaseURL strips any scheme, forces https and checks the host
// looks like a hostname.
func normalizeBaseURL(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(raw, "http://"), "https://")
	trimmed = strings.TrimSuffix(trimmed, "/")
	parsed, err := url.Parse("https://" + trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	host := parsed.Hostname()
	if host == "" || !strings.Contains(host, ".") || parsed.Path != "" {
		return "", fmt.Errorf("%w: not a usable host: %q", ErrInvalidInput, raw)
	}
	return "https://" + trimmed, nil
}

func (a *App) handleSetToken(_ context.Context, args []string, reply command.Responder) {
	token := strings.TrimSpace(args[0])
	if token == "" {
		reply("Please provide a valid token.")
		return
	}
	if err := a.creds.SetAccessToken(token); err != nil {
		reply("Sorry, something went wrong saving your token. Error: " + err.Error())
		return
	}
	reply("Successfully updated your authentication token. Run \"" + a.cfg.Bot.Trigger + " setup\" and you'll be ready to go!")
}

// projectID resolves a project name against the current lookup snapshot.
func (a *App) projectID(name string) (int, error) {
	id, ok := a.cache.Load().IDByName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	return id, nil
}

func (a *App) handleListProjects(_ context.Context, _ []string, reply command.Responder) {
	if !a.authenticated(reply) {
		return
	}
	cache := a.cache.Load()
	if cache.Len() == 0 {
		reply("Oops, I don't know any projects. Try running \"" + a.cfg.Bot.Trigger + " setup\" to help me remember them.")
		return
	}
	var b strings.Builder
	for i, p := range cache.Projects() {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Name: %s, ID: %d", p.Name, p.ID)
	}
	reply(b.String())
}

func (a *App) handleShowProject(_ context.Context, args []string, reply command.Responder) {
	if !a.authenticated(reply) {
		return
	}
	name := strings.TrimSpace(args[0])
	if name == "" {
		reply("Please supply a project name.")
		return
	}
	id, err := a.projectID(name)
	if err != nil {
		reply("Sorry, I don't know anything about that project. Try running \"" + a.cfg.Bot.Trigger + " setup\".")
		return
	}
	reply(fmt.Sprintf("All I know about %s is that its ID is %d! I promise I'll be more useful one day.", name, id))
}

// showItemHandler returns the handler for "show <kind> <id>", one algorithm
// parameterized by kind.
func (a *App) showItemHandler(kind axosoft.ItemKind) command.Handler {
	return func(ctx context.Context, args []string, reply command.Responder) {
		if !a.authenticated(reply) {
			return
		}
		id := strings.TrimSpace(args[0])
		if _, err := strconv.Atoi(id); err != nil {
			reply("Please give me a numeric item ID.")
			return
		}
		item, err := a.gateway.FetchItem(ctx, kind, id)
		if err != nil {
			reply("Oops, something unexpected happened. " + err.Error())
			return
		}
		projectName := a.cache.Load().NameByID(item.ProjectID)
		singular := a.vocab.Current().Label(kind, false)
		reply(fmt.Sprintf("%s \"%s\" is \"%s\" in project \"%s\"", singular, id, item.Name, projectName))
		reply(axosoft.ItemURL(a.creds.BaseURL(), kind, id))
	}
}

// addItemHandler returns the handler for `add <kind> "<title>" to <project>`.
// The project name must already be in the lookup cache; a miss fails
// before any remote call.
func (a *App) addItemHandler(kind axosoft.ItemKind) command.Handler {
	return func(ctx context.Context, args []string, reply command.Responder) {
		if !a.authenticated(reply) {
			return
		}
		title := strings.TrimSpace(args[0])
		project := strings.TrimSpace(args[1])
		singular := a.vocab.Current().Label(kind, false)
		if title == "" {
			reply("Please provide a title for the " + strings.ToLower(singular) + ".")
			return
		}
		projectID, err := a.projectID(project)
		if err != nil {
			if errors.Is(err, ErrProjectNotFound) {
				reply(fmt.Sprintf("I'm not familiar with any projects called \"%s\". Try refreshing my memory with \"%s setup\".",
					project, a.cfg.Bot.Trigger))
				return
			}
			reply("Oops, something unexpected happened. " + err.Error())
			return
		}
		created, err := a.gateway.CreateItem(ctx, kind, title, projectID)
		if err != nil {
			reply(fmt.Sprintf("Sorry, I couldn't create the %s. %s", singular, err.Error()))
			return
		}
		link := axosoft.ItemURL(a.creds.BaseURL(), kind, strconv.Itoa(created.ID))
		if kind == axosoft.KindIncident && created.Number != 0 {
			reply(fmt.Sprintf("I've created the %s. Its number is %d (ID %d) and it can be found here:\n%s",
				singular, created.Number, created.ID, link))
			return
		}
		reply(fmt.Sprintf("I've created the %s. Its ID is %d and it can be found here:\n%s",
			singular, created.ID, link))
	}
}

func (a *App) handleWorkLogReport(ctx context.Context, args []string, reply command.Responder) {
	if !a.authenticated(reply) {
		return
	}
	layout := a.cfg.Bot.DateFormat
	now := a.now()

	fromDate, err := resolveDate(args[0], now, layout)
	if errors.Is(err, errTomorrow) {
		reply("That's for me to know and you to find out.")
		return
	}
	if err != nil {
		reply(fmt.Sprintf("Sorry, I don't understand the date \"%s\". Try \"today\", \"yesterday\", a weekday or YYYY-MM-DD.", args[0]))
		return
	}

	// Default range is one day; an explicit end date is included in full.
	endExclusive := fromDate
	if strings.TrimSpace(args[1]) != "" {
		endExclusive, err = resolveDate(args[1], now, layout)
		if err != nil {
			reply(fmt.Sprintf("Sorry, I don't understand the date \"%s\". Try \"today\", \"yesterday\", a weekday or YYYY-MM-DD.", args[1]))
			return
		}
	}
	endExclusive, err = nextDay(endExclusive, layout)
	if err != nil {
		reply("Oops, something unexpected happened. " + err.Error())
		return
	}

	logs, err := a.gateway.FetchWorkLogs(ctx, fromDate, endExclusive)
	if err != nil {
		reply("Oops, something unexpected happened. " + err.Error())
		return
	}
	if len(logs) == 0 {
		reply("Sorry, there aren't any work logs for " + fromDate + ".")
		return
	}
	reply(formatReport(fromDate, AggregateWorkLogs(logs), a.vocab.Current(), a.fmtr))
}
