// Package discover scans a directory tree for source images and produces
// the placement sequence: every image of every immediate subfolder of the
// root, folders sorted by path, files sorted by name within each folder.
// The sequence is a pure function of the names on disk, so an unchanged
// tree always yields the same ordering.
package discover

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExts is the allow-list of source extensions, matched
// case-insensitively.
var imageExts = map[string]bool{
	".webp": true,
	".jpg":  true,
	".jpeg": true,
}

// Folder is one immediate subfolder of the scan root together with the
// number of images it contributed. Folders with zero images stay in the
// listing so reports can mention them.
type Folder struct {
	Path  string
	Count int
}

// Listing is the result of a scan: the placement sequence and the folders
// it was drawn from, both in their definitive order.
type Listing struct {
	Images  []string
	Folders []Folder
}

// Total returns the number of images in the placement sequence.
func (l Listing) Total() int {
	return len(l.Images)
}

// Scan lists the immediate subfolders of root and collects their images
// into a placement sequence. Unreadable subfolders are logged and skipped;
// an unreadable root is an error.
func Scan(root string) (Listing, error) {
	info, err := os.Stat(root)
	if err != nil {
		return Listing{}, fmt.Errorf("read input dir: %w", err)
	}
	if !info.IsDir() {
		return Listing{}, fmt.Errorf("read input dir: %s is not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return Listing{}, fmt.Errorf("read input dir: %w", err)
	}

	var subdirs []string
	for _, e := range entries {
		if e.IsDir() {
			subdirs = append(subdirs, filepath.Join(root, e.Name()))
		}
	}
	sort.Strings(subdirs)

	var listing Listing
	for _, dir := range subdirs {
		images, err := scanFolder(dir)
		if err != nil {
			slog.Warn("skipping unreadable folder", "path", dir, "error", err)
			continue
		}
		listing.Folders = append(listing.Folders, Folder{Path: dir, Count: len(images)})
		listing.Images = append(listing.Images, images...)
	}
	return listing, nil
}

func scanFolder(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if imageExts[ext] {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}
