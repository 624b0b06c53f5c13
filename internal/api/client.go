package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nedo8680/plan-accion-cli/internal/domain"
)

// Gateway is the synchronization boundary to the backend. It returns
// canonical server state; reconciling it into the local store is the
// orchestrator's job.
type Gateway interface {
	ListPlans(ctx context.Context) ([]*domain.Plan, error)
	CreatePlan(ctx context.Context, p PlanPayload) (*domain.Plan, error)
	SetPlanState(ctx context.Context, planID int64, stateToken string) (*domain.Plan, error)
	DeletePlan(ctx context.Context, planID int64) error

	ListFollowUps(ctx context.Context, planID int64) ([]*domain.FollowUp, error)
	CreateFollowUp(ctx context.Context, planID int64, f FollowUpPayload) (*domain.FollowUp, error)
	UpdateFollowUp(ctx context.Context, planID, id int64, f FollowUpPayload) (*domain.FollowUp, error)
	DeleteFollowUp(ctx context.Context, planID, id int64) error

	UsedIndicators(ctx context.Context) ([]string, error)
	CandidateIndicators(ctx context.Context, entityName string) ([]CandidateRow, error)
}

// ClientConfig holds the transport parameters for the REST client.
type ClientConfig struct {
	BaseURL    string
	Token      string
	TimeoutMs  int
	MaxRetries int
	RetryDelay time.Duration
}

// Client implements Gateway over the backend REST surface.
type Client struct {
	cfg      ClientConfig
	http     *http.Client
	observer Observer

	// onAuthExpired is invoked once when the backend rejects the session;
	// the host clears persisted credentials and hands off to renewal.
	onAuthExpired func()
}

// NewClient creates a Gateway. onAuthExpired may be nil.
func NewClient(cfg ClientConfig, observer Observer, onAuthExpired func()) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 8000
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		observer:      observer,
		onAuthExpired: onAuthExpired,
	}
}

func (c *Client) ListPlans(ctx context.Context) ([]*domain.Plan, error) {
	var dtos []planDTO
	if err := c.call(ctx, http.MethodGet, "/seguimiento", nil, &dtos); err != nil {
		return nil, err
	}
	plans := make([]*domain.Plan, 0, len(dtos))
	for _, d := range dtos {
		plans = append(plans, d.toDomain())
	}
	return plans, nil
}

func (c *Client) CreatePlan(ctx context.Context, p PlanPayload) (*domain.Plan, error) {
	var dto planDTO
	if err := c.call(ctx, http.MethodPost, "/seguimiento", p, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

func (c *Client) SetPlanState(ctx context.Context, planID int64, stateToken string) (*domain.Plan, error) {
	path := fmt.Sprintf("/seguimiento/%d/estado?estado=%s", planID, url.QueryEscape(stateToken))
	var dto planDTO
	if err := c.call(ctx, http.MethodPost, path, nil, &dto); err != nil {
		return nil, err
	}
	return dto.toDomain(), nil
}

func (c *Client) DeletePlan(ctx context.Context, planID int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/seguimiento/%d", planID), nil, nil)
}

func (c *Client) ListFollowUps(ctx context.Context, planID int64) ([]*domain.FollowUp, error) {
	var dtos []followUpDTO
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/seguimiento/%d/seguimiento", planID), nil, &dtos); err != nil {
		return nil, err
	}
	out := make([]*domain.FollowUp, 0, len(dtos))
	for _, d := range dtos {
		fu := d.toDomain()
		if fu.PlanID == 0 {
			fu.PlanID = planID
		}
		out = append(out, fu)
	}
	return out, nil
}

func (c *Client) CreateFollowUp(ctx context.Context, planID int64, f FollowUpPayload) (*domain.FollowUp, error) {
	var dto followUpDTO
	if err := c.call(ctx, http.MethodPost, fmt.Sprintf("/seguimiento/%d/seguimiento", planID), f, &dto); err != nil {
		return nil, err
	}
	fu := dto.toDomain()
	if fu.PlanID == 0 {
		fu.PlanID = planID
	}
	return fu, nil
}

func (c *Client) UpdateFollowUp(ctx context.Context, planID, id int64, f FollowUpPayload) (*domain.FollowUp, error) {
	var dto followUpDTO
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/seguimiento/%d/seguimiento/%d", planID, id), f, &dto); err != nil {
		return nil, err
	}
	fu := dto.toDomain()
	if fu.PlanID == 0 {
		fu.PlanID = planID
	}
	return fu, nil
}

func (c *Client) DeleteFollowUp(ctx context.Context, planID, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/seguimiento/%d/seguimiento/%d", planID, id), nil, nil)
}

func (c *Client) UsedIndicators(ctx context.Context) ([]string, error) {
	var raw []string
	if err := c.call(ctx, http.MethodGet, "/seguimiento/indicadores_usados", nil, &raw); err != nil {
		return nil, err
	}
	out := raw[:0]
	for _, v := range raw {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *Client) CandidateIndicators(ctx context.Context, entityName string) ([]CandidateRow, error) {
	path := "/reports/" + url.PathEscape(entityName)
	var body struct {
		Entity     string `json:"entidad"`
		Indicators []struct {
			Indicator string `json:"indicador"`
			Action    string `json:"accion"`
		} `json:"indicadores"`
	}
	if err := c.call(ctx, http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}
	rows := make([]CandidateRow, 0, len(body.Indicators))
	for _, it := range body.Indicators {
		rows = append(rows, CandidateRow{
			Entity:    body.Entity,
			Indicator: it.Indicator,
			Action:    it.Action,
		})
	}
	return rows, nil
}

// call performs one backend request with bounded retries. Only transient
// failures (5xx, network) are retried; auth rejections clear the cached
// token and business errors surface verbatim on the first attempt.
func (c *Client) call(ctx context.Context, method, path string, body, out interface{}) error {
	start := time.Now()
	timeout := time.Duration(c.cfg.TimeoutMs) * time.Millisecond
	attempts := 1 + c.cfg.MaxRetries

	var encoded []byte
	if body != nil {
		var err error
		encoded, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}

	requestID := uuid.New().String()

	var lastErr error
	var lastStatus int
	made := 0
	for i := 0; i < attempts; i++ {
		made++
		status, err := c.doRequest(ctx, timeout, method, path, encoded, requestID, out)
		lastStatus = status
		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				Method: method, Path: path, Status: status,
				LatencyMs: time.Since(start).Milliseconds(), Attempts: made,
			})
			return nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
		if !retryable(err) {
			break
		}
		if i < attempts-1 {
			select {
			case <-time.After(c.cfg.RetryDelay):
			case <-ctx.Done():
			}
		}
	}

	c.observer.OnCallComplete(CallEvent{
		Method: method, Path: path, Status: lastStatus,
		LatencyMs: time.Since(start).Milliseconds(), Attempts: made,
		Err: errCode(lastErr),
	})

	if errors.Is(lastErr, ErrAuthExpired) {
		// Drop the rejected token so later calls go out anonymous
		// instead of replaying a stale credential.
		c.cfg.Token = ""
		if c.onAuthExpired != nil {
			c.onAuthExpired()
		}
		return lastErr
	}
	if retryable(lastErr) {
		return fmt.Errorf("%w: %v", ErrServerUnavailable, lastErr)
	}
	return lastErr
}

// transientError marks 5xx responses so the retry loop can tell them
// apart from business rejections.
type transientError struct {
	status int
	body   string
}

func (e *transientError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.status, e.body)
}

func (c *Client) doRequest(ctx context.Context, timeout time.Duration, method, path string, body []byte, requestID string, out interface{}) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, strings.TrimRight(c.cfg.BaseURL, "/")+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return resp.StatusCode, ErrAuthExpired
	case resp.StatusCode >= 500:
		return resp.StatusCode, &transientError{status: resp.StatusCode, body: strings.TrimSpace(string(respBody))}
	case resp.StatusCode >= 400:
		return resp.StatusCode, &CallError{Status: resp.StatusCode, Message: strings.TrimSpace(string(respBody))}
	}

	if out != nil && resp.StatusCode != http.StatusNoContent && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func retryable(err error) bool {
	if err == nil {
		return false
	}
	var te *transientError
	if errors.As(err, &te) {
		return true
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return !errors.Is(err, context.Canceled)
	}
	return false
}

func errCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAuthExpired):
		return "AUTH"
	case retryable(err):
		return "UNAVAILABLE"
	case IsConflict(err):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
