package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"resty.dev/v3"

	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/config"
)

// LoadFile loads the card data feed from a local JSON file
func LoadFile(path string) ([]card.Card, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading card data: %w", err)
	}

	cards, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	return cards, nil
}

// Fetch downloads the card data feed from url
func Fetch(ctx context.Context, url string) ([]card.Card, error) {
	data, err := fetchRaw(ctx, url)
	if err != nil {
		return nil, err
	}

	cards, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing card data from %s: %w", url, err)
	}

	return cards, nil
}

// Refresh downloads the remote feed and stores it as the local cache at path.
// The payload is validated before anything is written.
func Refresh(ctx context.Context, url, path string) ([]card.Card, error) {
	data, err := fetchRaw(ctx, url)
	if err != nil {
		return nil, err
	}

	cards, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing card data from %s: %w", url, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("error writing card data: %w", err)
	}

	return cards, nil
}

// Load reads the feed configured in cfg. With refresh set the remote feed is
// downloaded once and written to the local cache before it is returned.
func Load(ctx context.Context, cfg *config.Config, refresh bool) ([]card.Card, error) {
	if refresh {
		if cfg.CardsDataURL == "" {
			return nil, fmt.Errorf("cards_data_url is not configured")
		}
		return Refresh(ctx, cfg.CardsDataURL, cfg.CardsData)
	}
	return LoadFile(cfg.CardsData)
}

// Find returns the record for key
func Find(cards []card.Card, key string) (card.Card, error) {
	for _, c := range cards {
		if c.Key == key {
			return c, nil
		}
	}
	return card.Card{}, fmt.Errorf("card not found: %s", key)
}

func fetchRaw(ctx context.Context, url string) ([]byte, error) {
	client := resty.New()
	defer client.Close()

	res, err := client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("error fetching card data: %w", err)
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("error fetching card data from %s: %s", url, res.Status())
	}

	return res.Bytes(), nil
}

func decode(data []byte) ([]card.Card, error) {
	var cards []card.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
