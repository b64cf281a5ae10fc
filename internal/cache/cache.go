// Package cache provides localized filesystem-based caching for remotely
// hosted lesson manifests.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"path/filepath"
	"strings"
	"time"

	"github.com/dfawole/m4tplay/filesystem"
	"github.com/dfawole/m4tplay/where"
)

const TTL = 24 * time.Hour

func getDir() string {
	dir := filepath.Join(where.Cache(), "manifests")
	_ = filesystem.API().MkdirAll(dir, 0755)
	return dir
}

// GenerateKey generates a deterministic SHA-256 hash from a manifest URL for use as a cache identifier.
func GenerateKey(url string) string {
	sanitized := strings.TrimSpace(strings.ToLower(url))
	hash := sha256.Sum256([]byte(sanitized))
	return hex.EncodeToString(hash[:])
}

// Read attempts to retrieve and deserialize a cached object if it exists and has not exceeded its TTL.
func Read(key string, target interface{}) bool {
	path := filepath.Join(getDir(), key)

	info, err := filesystem.API().Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	f, err := filesystem.API().Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(target); err != nil {
		return false
	}
	return true
}

// Write persists a serializable object to the cache using an atomic file swap to ensure data integrity.
func Write(key string, data interface{}) error {
	path := filepath.Join(getDir(), key)
	tmpPath := path + ".tmp"

	f, err := filesystem.API().Create(tmpPath)
	if err != nil {
		return err
	}

	if err := json.NewEncoder(f).Encode(data); err != nil {
		f.Close()
		return err
	}
	f.Close()

	return filesystem.API().Rename(tmpPath, path)
}

// CollectGarbage initializes an asynchronous background task to prune expired cache entries from the filesystem.
func CollectGarbage() {
	go func() {
		dir := getDir()
		entries, err := filesystem.API().ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if time.Since(entry.ModTime()) > TTL {
				_ = filesystem.API().Remove(filepath.Join(dir, entry.Name()))
			}
		}
	}()
}
