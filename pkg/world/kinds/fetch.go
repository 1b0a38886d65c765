package kinds

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	get "github.com/hashicorp/go-getter"
)

// DefinitionFile is the name fetched definitions are stored under.
const DefinitionFile = "kinds.yaml"

// Fetch downloads a definition file into dir and returns its local path.
// src is any go-getter source, e.g. a local path, an http URL or
// "git::https://host/repo.git//kinds.yaml".
func Fetch(ctx context.Context, src, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", dir, err)
	}

	dst := filepath.Join(dir, DefinitionFile)
	if err := get.GetFile(dst, src, get.WithContext(ctx)); err != nil {
		return "", fmt.Errorf("fetch kinds %s: %w", src, err)
	}
	return dst, nil
}
