package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"fieldbook/internal/logging"
)

// httpTimeout bounds the one catalog GET. There is no retry; a slow or dead
// source degrades to the fallback catalog.
const httpTimeout = 15 * time.Second

// Fallback returns the one-element catalog substituted when the configured
// source is missing or malformed.
func Fallback() []Species {
	return []Species{{
		ID:             "snail-kite",
		CommonName:     "Snail Kite",
		ScientificName: "Rostrhamus sociabilis",
		Family:         "Accipitridae",
		Habitat:        "Freshwater marsh",
	}}
}

// Load reads the species catalog from source, which is either a local file
// path or an http(s) URL holding a JSON array of Species. Any failure
// (unreachable source, bad JSON, empty list) yields the fallback catalog.
// Load never returns an error: a broken catalog source is not a user-visible
// condition.
func Load(ctx context.Context, source string) []Species {
	log := logging.Get(logging.CategoryCatalog)

	list, err := fetch(ctx, source)
	if err != nil {
		log.Warn("catalog source %q unavailable, using fallback: %v", source, err)
		return Fallback()
	}
	if len(list) == 0 {
		log.Warn("catalog source %q is empty, using fallback", source)
		return Fallback()
	}

	list = Normalize(list)
	log.Info("loaded %d species from %s", len(list), source)
	return list
}

// fetch reads and decodes the raw species array.
func fetch(ctx context.Context, source string) ([]Species, error) {
	if source == "" {
		return nil, fmt.Errorf("no catalog source configured")
	}

	var data []byte
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		var err error
		data, err = fetchHTTP(ctx, source)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		data, err = os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file: %w", err)
		}
	}

	var list []Species
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return list, nil
}

func fetchHTTP(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, httpTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build catalog request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog request returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Normalize fills in missing IDs from common names and drops entries whose
// ID collides with an earlier one (first wins). Catalog order is otherwise
// preserved; the filter and daily-pick engines rely on it being stable.
func Normalize(list []Species) []Species {
	out := make([]Species, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, sp := range list {
		if sp.ID == "" {
			sp.ID = SlugID(sp.CommonName)
		}
		if sp.ID == "" || seen[sp.ID] {
			continue
		}
		seen[sp.ID] = true
		out = append(out, sp)
	}
	return out
}
