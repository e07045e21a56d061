package replicate

import (
	"context"
	"fmt"
	"net/http"

	replicate "github.com/replicate/replicate-go"
	"go.uber.org/zap"

	"artify/pkg/utils"
)

// Fixed fine-tuning hyperparameters. Every personalized model is trained
// the same way; only the input archive and destination differ.
const (
	TrainingSteps      = 1200
	TrainingResolution = "1024"
	TriggerWord        = "nazx"
)

const apiBaseURL = "https://api.replicate.com/v1"

type Config struct {
	Token          string
	ModelOwner     string
	TrainerOwner   string
	TrainerName    string
	TrainerVersion string
	Hardware       string
}

// Training is the slice of the remote job state this app tracks.
type Training struct {
	ID     string
	Status string
}

// Client wraps the Replicate SDK plus the two model-deletion endpoints the
// SDK does not cover (plain HTTP DELETE, like the dashboard uses).
type Client struct {
	r8     *replicate.Client
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

func NewClient(cfg Config, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	r8, err := replicate.NewClient(replicate.WithToken(cfg.Token))
	if err != nil {
		return nil, fmt.Errorf("init replicate client: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{r8: r8, cfg: cfg, http: httpClient, logger: logger}, nil
}

// CreateModel registers a private model namespace to receive the trained
// weights. Not idempotent: re-registering an existing name fails upstream.
func (c *Client) CreateModel(ctx context.Context, modelID string) error {
	visibility := "private"
	hardware := c.cfg.Hardware
	_, err := c.r8.CreateModel(ctx, c.cfg.ModelOwner, modelID, replicate.CreateModelOptions{
		Visibility: visibility,
		Hardware:   hardware,
	})
	if err != nil {
		return fmt.Errorf("%w: create model: %v", utils.ErrUpstreamFailure, err)
	}
	return nil
}

// CreateTraining submits the fine-tuning job. The webhook fires only on
// completion events; the callback URL carries the opaque job token.
func (c *Client) CreateTraining(ctx context.Context, modelID, archiveURL, webhookURL string) (*Training, error) {
	input := replicate.TrainingInput{
		"steps":        TrainingSteps,
		"resolution":   TrainingResolution,
		"input_images": archiveURL,
		"trigger_word": TriggerWord,
	}
	webhook := &replicate.Webhook{
		URL:    webhookURL,
		Events: []replicate.WebhookEventType{replicate.WebhookEventCompleted},
	}

	training, err := c.r8.CreateTraining(ctx,
		c.cfg.TrainerOwner, c.cfg.TrainerName, c.cfg.TrainerVersion,
		fmt.Sprintf("%s/%s", c.cfg.ModelOwner, modelID),
		input, webhook)
	if err != nil {
		return nil, fmt.Errorf("%w: create training: %v", utils.ErrUpstreamFailure, err)
	}
	return &Training{ID: training.ID, Status: string(training.Status)}, nil
}

// ListHardware returns the SKUs available to this account.
func (c *Client) ListHardware(ctx context.Context) ([]string, error) {
	hardware, err := c.r8.ListHardware(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list hardware: %v", utils.ErrUpstreamFailure, err)
	}
	var skus []string
	if hardware != nil {
		for _, h := range *hardware {
			skus = append(skus, h.SKU)
		}
	}
	return skus, nil
}

// WebhookSecret fetches the account's shared webhook signing secret
// (format "whsec_<base64>"). Fetched per callback so key rotation takes
// effect without a restart.
func (c *Client) WebhookSecret(ctx context.Context) (string, error) {
	secret, err := c.r8.GetDefaultWebhookSecret(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: get webhook secret: %v", utils.ErrUpstreamFailure, err)
	}
	return secret.Key, nil
}

// Generate runs a model version and returns the output image URLs.
func (c *Client) Generate(ctx context.Context, ref string, input map[string]interface{}) ([]string, error) {
	output, err := c.r8.Run(ctx, ref, replicate.PredictionInput(input), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: run model: %v", utils.ErrUpstreamFailure, err)
	}

	switch out := output.(type) {
	case []interface{}:
		urls := make([]string, 0, len(out))
		for _, item := range out {
			if s, ok := item.(string); ok {
				urls = append(urls, s)
			}
		}
		return urls, nil
	case string:
		return []string{out}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected output type %T", utils.ErrUpstreamFailure, output)
	}
}

// DeleteModelVersion removes a trained version from the remote provider.
func (c *Client) DeleteModelVersion(ctx context.Context, modelID, version string) error {
	url := fmt.Sprintf("%s/models/%s/%s/versions/%s", apiBaseURL, c.cfg.ModelOwner, modelID, version)
	return c.rawDelete(ctx, url)
}

// DeleteModel removes the model namespace itself.
func (c *Client) DeleteModel(ctx context.Context, modelID string) error {
	url := fmt.Sprintf("%s/models/%s/%s", apiBaseURL, c.cfg.ModelOwner, modelID)
	return c.rawDelete(ctx, url)
}

func (c *Client) rawDelete(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	// A 404 means the remote resource is already gone; treat as success so
	// local cleanup can proceed.
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("%w: delete %s returned %d", utils.ErrUpstreamFailure, url, resp.StatusCode)
	}
	return nil
}
