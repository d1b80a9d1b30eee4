// Package icons downloads the official card icons listed on a player profile.
package icons

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"resty.dev/v3"

	"github.com/arcanaland/cardgen/internal/config"
)

// Player is the subset of the player profile this package reads.
type Player struct {
	Tag   string `json:"tag"`
	Name  string `json:"name"`
	Cards []Icon `json:"cards"`
}

// Icon pairs a card key with the URL of its icon.
type Icon struct {
	Key  string `json:"key"`
	Icon string `json:"icon"`
}

// Client talks to the player API.
type Client struct {
	http    *resty.Client
	baseURL string
	token   string
}

// NewClient creates a client for cfg.APIURL. The API token is read from
// the environment variable named by cfg.TokenEnv.
func NewClient(cfg config.Icons) (*Client, error) {
	token := os.Getenv(cfg.TokenEnv)
	if token == "" {
		return nil, fmt.Errorf("environment variable %s is not set", cfg.TokenEnv)
	}

	return &Client{
		http:    resty.New(),
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		token:   token,
	}, nil
}

// Close releases the underlying HTTP client.
func (c *Client) Close() {
	c.http.Close()
}

// Player fetches the profile of the player with the given tag.
func (c *Client) Player(ctx context.Context, tag string) (*Player, error) {
	url := fmt.Sprintf("%s/player/%s", c.baseURL, strings.TrimPrefix(tag, "#"))

	res, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("error fetching player %s: %w", tag, err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("error fetching player %s: %s", tag, res.Status())
	}

	var p Player
	if err := json.Unmarshal(res.Bytes(), &p); err != nil {
		return nil, fmt.Errorf("error parsing player %s: %w", tag, err)
	}

	return &p, nil
}

// Download writes the icon of every card on the player's profile to
// outDir/<key>.png. Icons that cannot be fetched are logged and skipped.
func Download(ctx context.Context, c *Client, tag, outDir string, log logrus.FieldLogger) error {
	p, err := c.Player(ctx, tag)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("error creating %s: %w", outDir, err)
	}

	for _, icon := range p.Cards {
		path := filepath.Join(outDir, icon.Key+".png")
		logger := log.WithFields(logrus.Fields{"card": icon.Key, "url": icon.Icon})

		res, err := c.http.R().SetContext(ctx).Get(icon.Icon)
		if err != nil {
			logger.WithError(err).Error("icon download failed, continuing")
			continue
		}
		if !res.IsSuccess() {
			logger.WithField("status", res.Status()).Error("icon download failed, continuing")
			continue
		}

		if err := os.WriteFile(path, res.Bytes(), 0644); err != nil {
			return fmt.Errorf("error writing %s: %w", path, err)
		}
		logger.WithField("path", path).Info("icon saved")
	}

	return nil
}
