package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/xeipuuv/gojsonschema"
)

// File names expected inside the data directory.
const (
	plansFile     = "plans.json"
	providersFile = "providers.json"
	qaFile        = "qa.json"
	premiumsFile  = "premiums.json"
)

// Load reads, validates, and indexes all four dataset files from dir.
// Any schema violation or unreadable file is a hard error — the caller should
// refuse to start without a valid catalog.
func Load(dir string) (*Catalog, error) {
	ds, err := loadDataset(dir)
	if err != nil {
		return nil, err
	}
	return &Catalog{data: ds, dir: dir}, nil
}

// loadDataset builds a complete snapshot or fails without side effects.
func loadDataset(dir string) (dataset, error) {
	var plansDoc struct {
		Plans []Plan `json:"plans"`
	}
	if err := loadFile(filepath.Join(dir, plansFile), plansSchema, &plansDoc); err != nil {
		return dataset{}, err
	}

	var providersDoc struct {
		Providers []Provider `json:"providers"`
	}
	if err := loadFile(filepath.Join(dir, providersFile), providersSchema, &providersDoc); err != nil {
		return dataset{}, err
	}

	var qaDoc struct {
		TestQuestions []QAEntry `json:"testQuestions"`
	}
	if err := loadFile(filepath.Join(dir, qaFile), qaSchema, &qaDoc); err != nil {
		return dataset{}, err
	}

	var premiums PremiumData
	if err := loadFile(filepath.Join(dir, premiumsFile), premiumsSchema, &premiums); err != nil {
		return dataset{}, err
	}

	return newDataset(plansDoc.Plans, providersDoc.Providers, qaDoc.TestQuestions, premiums), nil
}

// loadFile reads one JSON file, validates it against schema, then unmarshals
// it into dst.
func loadFile(path, schema string, dst any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: read %s: %w", filepath.Base(path), err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		return fmt.Errorf("catalog: validate %s: %w", filepath.Base(path), err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("catalog: %s failed schema validation: %s",
			filepath.Base(path), strings.Join(msgs, "; "))
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("catalog: unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Reload re-reads the data directory and swaps in the new snapshot. On any
// error the previous snapshot stays in place.
func (c *Catalog) Reload() error {
	ds, err := loadDataset(c.dir)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.data = ds
	c.mu.Unlock()
	return nil
}

// Watch reloads the catalog whenever a dataset file changes on disk. Events
// are debounced because editors and deploy tooling fire several write events
// per save. Blocks until ctx is done; run it in a goroutine:
//
//	go cat.Watch(ctx, logger)
func (c *Catalog) Watch(ctx context.Context, logger *slog.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(c.dir); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", c.dir, err)
	}
	logger.Info("catalog: watching data directory", "dir", c.dir)

	const debounce = 250 * time.Millisecond
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	reload := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isDatasetFile(filepath.Base(event.Name)) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := c.Reload(); err != nil {
				// Keep serving the previous snapshot.
				logger.Error("catalog: reload failed, keeping previous data", "error", err)
				continue
			}
			logger.Info("catalog: reloaded",
				"plans", len(c.Plans()),
				"providers", len(c.Providers()),
				"qa_entries", len(c.QA()),
			)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("catalog: watcher error", "error", err)
		}
	}
}

func isDatasetFile(name string) bool {
	switch name {
	case plansFile, providersFile, qaFile, premiumsFile:
		return true
	}
	return false
}
