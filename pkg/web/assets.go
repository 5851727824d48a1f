/*-
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package web

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

//go:embed static
var staticContent embed.FS

// AssetStore resolves request paths to stored resources. Resource bytes are
// served as they are, so a stored resource carries its own status line and
// headers.
type AssetStore struct {
	fsys fs.FS
}

// NewAssetStore serves from fsys.
func NewAssetStore(fsys fs.FS) *AssetStore {
	return &AssetStore{fsys: fsys}
}

// DirAssets serves files below dir.
func DirAssets(dir string) *AssetStore {
	return NewAssetStore(os.DirFS(dir))
}

// DefaultAssets serves the built-in status page.
func DefaultAssets() *AssetStore {
	sub, err := fs.Sub(staticContent, "static")
	if err != nil {
		panic(err)
	}

	return NewAssetStore(sub)
}

// Lookup returns the bytes of the resource at path. Missing, empty and
// directory resources are errNotFound.
func (a *AssetStore) Lookup(path string) ([]byte, error) {
	name := strings.TrimPrefix(path, "/")
	if !fs.ValidPath(name) || name == "." {
		return nil, fmt.Errorf("%w: %s", errNotFound, path)
	}

	data, err := fs.ReadFile(a.fsys, name)

	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist), isDirError(a.fsys, name):
		return nil, fmt.Errorf("%w: %s", errNotFound, path)
	default:
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", errNotFound, path)
	}

	return data, nil
}

func isDirError(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)

	return err == nil && info.IsDir()
}
