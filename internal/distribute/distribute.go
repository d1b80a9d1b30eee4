// Package distribute copies finished card folders to their publishing roots.
package distribute

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arcanaland/cardgen/internal/catalog"
	"github.com/arcanaland/cardgen/internal/config"
)

// CopyFolders copies the regular, non-hidden files of each folder from
// srcRoot to the folder of the same name under dstRoot.
func CopyFolders(srcRoot, dstRoot string, folders []string, log logrus.FieldLogger) error {
	for _, folder := range folders {
		src := filepath.Join(srcRoot, folder)
		dst := filepath.Join(dstRoot, folder)

		entries, err := os.ReadDir(src)
		if err != nil {
			return fmt.Errorf("error reading %s: %w", src, err)
		}

		if err := os.MkdirAll(dst, 0755); err != nil {
			return fmt.Errorf("error creating %s: %w", dst, err)
		}

		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
				continue
			}
			dstPath := filepath.Join(dst, entry.Name())
			if err := copyFile(filepath.Join(src, entry.Name()), dstPath); err != nil {
				return err
			}
			log.WithField("path", dstPath).Debug("file copied")
		}
		log.WithFields(logrus.Fields{"folder": folder, "dst": dstRoot}).Info("folder published")
	}

	return nil
}

// Publish copies the configured folders to every destination; palette
// folders only go to destinations that ask for them.
func Publish(d config.Distribute, log logrus.FieldLogger) error {
	if len(d.Destinations) == 0 {
		log.Warn("no publish destinations configured")
		return nil
	}

	for _, dest := range d.Destinations {
		folders := append([]string{}, d.Folders...)
		if dest.IncludePNG8 {
			folders = append(folders, d.PNG8Folders...)
		}
		if err := CopyFolders(d.SourceRoot, dest.Root, folders, log); err != nil {
			return err
		}
	}

	return nil
}

// ExportRaw copies the source art of every entry to rawDir/<key>.png.
func ExportRaw(entries []catalog.Entry, spellsDir, rawDir string, log logrus.FieldLogger) error {
	if err := os.MkdirAll(rawDir, 0755); err != nil {
		return fmt.Errorf("error creating %s: %w", rawDir, err)
	}

	for _, e := range entries {
		dst := filepath.Join(rawDir, e.Card.Key+".png")
		if err := copyFile(filepath.Join(spellsDir, e.Filename+".png"), dst); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{"card": e.Card.Key, "path": dst}).Info("source exported")
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("error copying %s: %w", src, err)
	}
	return out.Close()
}
