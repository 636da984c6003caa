package axosoft

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Credentials supplies the base service URL and bearer token for API calls.
// Both return the empty string when not yet configured.
type Credentials interface {
	BaseURL() string
	AccessToken() string
}

// Gateway is the remote API surface the bot depends on.
type Gateway interface {
	// FetchProjects returns the flattened project list.
	FetchProjects(ctx context.Context) ([]Project, error)
	// FetchItemKindLabels returns the account's customized item type labels.
	FetchItemKindLabels(ctx context.Context) (Vocabulary, error)
	// FetchItem returns one work item by kind and id.
	FetchItem(ctx context.Context, kind ItemKind, id string) (*Item, error)
	// CreateItem creates a work item in the given project.
	CreateItem(ctx context.Context, kind ItemKind, title string, projectID int) (*CreatedItem, error)
	// FetchWorkLogs returns work logs in [startDate, endDate), dates as YYYY-MM-DD.
	FetchWorkLogs(ctx context.Context, startDate, endDate string) ([]WorkLogEntry, error)
}

// RemoteError is an error payload returned by the Axosoft API. Its message
// is surfaced to the user verbatim.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string { return e.Message }

// Client is the HTTP implementation of Gateway.
type Client struct {
	creds      Credentials
	apiVersion string
	http       *http.Client
}

// NewClient creates a Gateway client. apiVersion is the REST prefix,
// e.g. "/api/v5".
func NewClient(creds Credentials, apiVersion string) *Client {
	return &Client{
		creds:      creds,
		apiVersion: apiVersion,
		http:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("access_token", c.creds.AccessToken())
	return c.creds.BaseURL() + c.apiVersion + path + "?" + query.Encode()
}

// apiEnvelope is the common response wrapper.
type apiEnvelope struct {
	Data             json.RawMessage `json:"data"`
	ErrorDescription string          `json:"error_description"`
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if env.ErrorDescription != "" {
		return nil, &RemoteError{Message: env.ErrorDescription}
	}
	if resp.StatusCode >= 300 {
		return nil, &RemoteError{Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}
	return env.Data, nil
}

// wireProject mirrors the hierarchical project payload.
type wireProject struct {
	ID       int           `json:"id"`
	Name     string        `json:"name"`
	Children []wireProject `json:"children"`
}

// flatten appends the project and all descendants to out, depth-first.
// Children become siblings of their parent; hierarchy is discarded.
func (p wireProject) flatten(out []Project) []Project {
	out = append(out, Project{Name: p.Name, ID: p.ID})
	for _, child := range p.Children {
		out = child.flatten(out)
	}
	return out
}

func (c *Client) FetchProjects(ctx context.Context) ([]Project, error) {
	data, err := c.do(ctx, http.MethodGet, c.endpoint("/projects", nil), nil)
	if err != nil {
		return nil, err
	}
	var tree []wireProject
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	var flat []Project
	for _, p := range tree {
		flat = p.flatten(flat)
	}
	return flat, nil
}

func (c *Client) FetchItemKindLabels(ctx context.Context) (Vocabulary, error) {
	data, err := c.do(ctx, http.MethodGet, c.endpoint("/settings/system_options", nil), nil)
	if err != nil {
		return nil, err
	}
	var opts struct {
		ItemTypes map[string]struct {
			Labels struct {
				Singular string `json:"singular"`
				Plural   string `json:"plural"`
			} `json:"labels"`
		} `json:"item_types"`
	}
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("decode system options: %w", err)
	}
	vocab := DefaultVocabulary()
	for key, entry := range opts.ItemTypes {
		kind, ok := KindFromAPIKey(key)
		if !ok {
			continue
		}
		labels := vocab[kind]
		if entry.Labels.Singular != "" {
			labels.Singular = entry.Labels.Singular
		}
		if entry.Labels.Plural != "" {
			labels.Plural = entry.Labels.Plural
		}
		vocab[kind] = labels
	}
	return vocab, nil
}

func (c *Client) FetchItem(ctx context.Context, kind ItemKind, id string) (*Item, error) {
	data, err := c.do(ctx, http.MethodGet, c.endpoint("/"+kind.APIKey()+"/"+url.PathEscape(id), nil), nil)
	if err != nil {
		return nil, err
	}
	var wire struct {
		ID          int    `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Project     struct {
			ID int `json:"id"`
		} `json:"project"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode %s: %w", kind.APIKey(), err)
	}
	if wire.ID == 0 {
		if n, err := strconv.Atoi(id); err == nil {
			wire.ID = n
		}
	}
	return &Item{
		ID:          wire.ID,
		Name:        wire.Name,
		Description: wire.Description,
		ProjectID:   wire.Project.ID,
	}, nil
}

func (c *Client) CreateItem(ctx context.Context, kind ItemKind, title string, projectID int) (*CreatedItem, error) {
	payload := map[string]any{
		"notify_customer": false,
		"item": map[string]any{
			"name": title,
			"project": map[string]any{
				"id": projectID,
			},
		},
	}
	data, err := c.do(ctx, http.MethodPost, c.endpoint("/"+kind.APIKey(), nil), payload)
	if err != nil {
		return nil, err
	}
	var wire struct {
		ID     int `json:"id"`
		Number int `json:"number"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode created %s: %w", kind.APIKey(), err)
	}
	return &CreatedItem{ID: wire.ID, Number: wire.Number}, nil
}

func (c *Client) FetchWorkLogs(ctx context.Context, startDate, endDate string) ([]WorkLogEntry, error) {
	query := url.Values{}
	query.Set("start_date", startDate)
	query.Set("end_date", endDate)
	data, err := c.do(ctx, http.MethodGet, c.endpoint("/work_logs", query), nil)
	if err != nil {
		return nil, err
	}
	var wire []struct {
		User struct {
			Name string `json:"name"`
		} `json:"user"`
		Item struct {
			ID       int    `json:"id"`
			Name     string `json:"name"`
			ItemType string `json:"item_type"`
		} `json:"item"`
		WorkDone struct {
			DurationMinutes int `json:"duration_minutes"`
		} `json:"work_done"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode work logs: %w", err)
	}
	logs := make([]WorkLogEntry, 0, len(wire))
	for _, w := range wire {
		kind, ok := KindFromAPIKey(w.Item.ItemType)
		if !ok {
			kind = KindUnknown
		}
		logs = append(logs, WorkLogEntry{
			UserName:        w.User.Name,
			ItemID:          w.Item.ID,
			ItemName:        w.Item.Name,
			ItemKind:        kind,
			DurationMinutes: w.WorkDone.DurationMinutes,
		})
	}
	return logs, nil
}

// ItemURL returns the browser link for viewing an item.
func ItemURL(baseURL string, kind ItemKind, id string) string {
	return fmt.Sprintf("%s/viewitem.aspx?id=%s&type=%s", baseURL, id, kind.APIKey())
}
