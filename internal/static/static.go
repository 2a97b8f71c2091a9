// Package static embeds static files into the binary and copies them to the
// user's data directory
package static

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/ayoisaiah/tracklog/internal/osutil"
	"github.com/ayoisaiah/tracklog/internal/pathutil"
)

const filesDir = "files"

//go:embed files/*
var embeddedFiles embed.FS

// Install copies the embedded files (the notification icon) into the
// tracklog data directory. Files that already exist are left alone so that
// users can replace them.
func Install() error {
	return install(embeddedFiles, func(rel string) (string, error) {
		return xdg.DataFile(filepath.Join(pathutil.Dir(), rel))
	})
}

func install(src fs.FS, dest func(rel string) (string, error)) error {
	return fs.WalkDir(
		src,
		filesDir,
		func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				return nil
			}

			b, err := fs.ReadFile(src, path)
			if err != nil {
				return err
			}

			// embed paths always use forward slashes
			stripped := strings.TrimPrefix(path, filesDir+"/")

			destPath, err := dest(filepath.FromSlash(stripped))
			if err != nil {
				return err
			}

			// Only write if file does not already exist
			if _, err := os.Stat(destPath); os.IsNotExist(err) {
				if err := os.MkdirAll(filepath.Dir(destPath), osutil.DirPermission); err != nil {
					return err
				}

				if err := os.WriteFile(destPath, b, osutil.FilePermission); err != nil {
					return err
				}
			}

			return nil
		},
	)
}
