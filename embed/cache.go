package embed

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// vectorCache keeps embeddings in memory and mirrors them to small binary
// files so repeated solves of the same puzzle skip the model entirely.
type vectorCache struct {
	mu      sync.RWMutex
	m       map[string][]float32
	dir     string
	modelID string
}

func newVectorCache(dir, modelID string) *vectorCache {
	return &vectorCache{m: make(map[string][]float32), dir: dir, modelID: modelID}
}

func (c *vectorCache) key(text string) string {
	h := sha1.Sum([]byte(c.modelID + "|" + text))
	return hex.EncodeToString(h[:])
}

func (c *vectorCache) get(key string) ([]float32, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	if !ok {
		return nil, false
	}
	return cloneVector(v), true
}

func (c *vectorCache) put(key string, v []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = cloneVector(v)
}

// load reads a vector from disk. A missing file is not an error.
func (c *vectorCache) load(key string) ([]float32, bool, error) {
	if c.dir == "" {
		return nil, false, nil
	}
	path := filepath.Join(c.dir, key+".bin")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if len(data) < 4 {
		return nil, false, fmt.Errorf("cache file broken: %s", path)
	}
	length := binary.LittleEndian.Uint32(data[:4])
	need := int(length) * 4
	if len(data) < 4+need {
		return nil, false, fmt.Errorf("cache truncated: %s", path)
	}
	vec := make([]float32, int(length))
	if err := binary.Read(bytes.NewReader(data[4:4+need]), binary.LittleEndian, vec); err != nil {
		return nil, false, err
	}
	return vec, true, nil
}

func (c *vectorCache) save(key string, v []float32) error {
	if c.dir == "" {
		return nil
	}
	path := filepath.Join(c.dir, key+".bin")
	buf := &bytes.Buffer{}
	_ = binary.Write(buf, binary.LittleEndian, uint32(len(v)))
	if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func cloneVector(vec []float32) []float32 {
	out := make([]float32, len(vec))
	copy(out, vec)
	return out
}
