package host

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/nanoshelf/types"
)

// FileGateway is a standalone Gateway backed by the local filesystem. It
// exists so the CLI and integration tests can run the tree store without a
// live note-taking application: the key/value store is one JSON file guarded
// by a cross-process file lock, and blocks come from a YAML catalog.
type FileGateway struct {
	kvPath   string
	fileLock *flock.Flock
	mu       sync.RWMutex

	blocks []*types.Block
	logger *slog.Logger
}

// kvData is the JSON layout of the key/value file: namespace -> key -> value.
type kvData map[string]map[string]string

// catalogFile is the YAML layout of the block catalog.
type catalogFile struct {
	Blocks []catalogBlock `yaml:"blocks"`
}

type catalogBlock struct {
	ID         string            `yaml:"id"`
	Text       string            `yaml:"text"`
	Aliases    []string          `yaml:"aliases"`
	Properties []catalogProperty `yaml:"properties"`
}

type catalogProperty struct {
	Name  string `yaml:"name"`
	Kind  string `yaml:"kind"`
	Value string `yaml:"value"`
}

// NewFileGateway creates a file-backed gateway. kvPath is the JSON key/value
// file (created on first write); catalogPath optionally points at a YAML
// block catalog and may be empty for a host with no blocks.
func NewFileGateway(kvPath, catalogPath string, logger *slog.Logger) (*FileGateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	g := &FileGateway{
		kvPath:   kvPath,
		fileLock: flock.New(kvPath + ".lock"),
		logger:   logger,
	}
	if catalogPath != "" {
		if err := g.loadCatalog(catalogPath); err != nil {
			return nil, fmt.Errorf("failed to load block catalog: %w", err)
		}
	}
	return g, nil
}

func (g *FileGateway) loadCatalog(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var catalog catalogFile
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	for _, cb := range catalog.Blocks {
		block := &types.Block{
			ID:      cb.ID,
			Text:    cb.Text,
			Aliases: cb.Aliases,
		}
		for _, cp := range cb.Properties {
			kind := types.PropertyKind(cp.Kind)
			if kind == "" {
				kind = types.PropertyText
			}
			block.Properties = append(block.Properties, types.BlockProperty{
				Name:  cp.Name,
				Kind:  kind,
				Value: cp.Value,
			})
		}
		g.blocks = append(g.blocks, block)
	}
	return nil
}

// GetBlock implements Gateway.
func (g *FileGateway) GetBlock(_ context.Context, id string) (*types.Block, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, b := range g.blocks {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

// RunQuery implements Gateway by evaluating the query against the catalog.
func (g *FileGateway) RunQuery(_ context.Context, q types.QueryDescription) ([]string, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return EvaluateQuery(q, g.blocks), nil
}

// NavigateToBlock implements Gateway. A file host has nothing to focus, so
// navigation is logged and reported to the user.
func (g *FileGateway) NavigateToBlock(ctx context.Context, id string) error {
	block, err := g.GetBlock(ctx, id)
	if err != nil {
		return err
	}
	if block == nil {
		return fmt.Errorf("block %s not found", id)
	}
	g.logger.Info("navigate", "block", id, "text", block.DisplayName())
	return nil
}

// KVGet implements Gateway.
func (g *FileGateway) KVGet(ctx context.Context, namespace, key string) (string, bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	unlock, err := g.acquireFileLock(ctx)
	if err != nil {
		return "", false, err
	}
	defer unlock()

	data, err := g.readLocked()
	if err != nil {
		return "", false, err
	}
	ns, ok := data[namespace]
	if !ok {
		return "", false, nil
	}
	v, ok := ns[key]
	return v, ok, nil
}

// KVSet implements Gateway. The write is atomic: the value lands via a temp
// file rename, so readers never observe a partially written store.
func (g *FileGateway) KVSet(ctx context.Context, namespace, key, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	unlock, err := g.acquireFileLock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	data, err := g.readLocked()
	if err != nil {
		return err
	}
	if data[namespace] == nil {
		data[namespace] = make(map[string]string)
	}
	data[namespace][key] = value
	return g.writeLocked(data)
}

// Notify implements Gateway by logging through the configured logger.
func (g *FileGateway) Notify(level NotifyLevel, message string) {
	switch level {
	case NotifyError:
		g.logger.Error(message)
	case NotifyWarn:
		g.logger.Warn(message)
	default:
		g.logger.Info(message)
	}
}

// Close releases the lock file.
func (g *FileGateway) Close() error {
	_ = os.Remove(g.kvPath + ".lock")
	return nil
}

func (g *FileGateway) acquireFileLock(ctx context.Context) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	locked, err := g.fileLock.TryLockContext(lockCtx, 100*time.Millisecond)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire file lock")
	}
	return func() { _ = g.fileLock.Unlock() }, nil
}

func (g *FileGateway) readLocked() (kvData, error) {
	if _, err := os.Stat(g.kvPath); os.IsNotExist(err) {
		return kvData{}, nil
	}
	raw, err := os.ReadFile(g.kvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(raw) == 0 {
		return kvData{}, nil
	}
	var data kvData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return data, nil
}

func (g *FileGateway) writeLocked(data kvData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	tmpFile := g.kvPath + ".tmp"
	if err := os.WriteFile(tmpFile, raw, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, g.kvPath); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
