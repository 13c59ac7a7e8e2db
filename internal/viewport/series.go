// Package viewport renders image series into terminal cells and holds the
// per-viewport display state the viewer commands manipulate: rotation,
// flips, window/level, colormap, active tool and frame position.
package viewport

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Frame is one image of a series. Pixels are decoded on first use.
type Frame struct {
	Path string
	Size int64

	once sync.Once
	img  image.Image
	err  error
}

// Image decodes the frame, caching the result.
func (f *Frame) Image() (image.Image, error) {
	f.once.Do(func() {
		file, err := os.Open(f.Path)
		if err != nil {
			f.err = err
			return
		}
		defer file.Close()
		img, _, err := image.Decode(file)
		if err != nil {
			f.err = fmt.Errorf("decode %s: %w", f.Path, err)
			return
		}
		f.img = img
	})
	return f.img, f.err
}

// Series is an ordered frame stack loaded from a directory.
type Series struct {
	Name   string
	Dir    string
	Frames []*Frame
}

// LoadSeries scans dir for image files, ordered by filename.
func LoadSeries(dir string) (*Series, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load series: %w", err)
	}

	s := &Series{Name: filepath.Base(dir), Dir: dir}
	for _, e := range entries {
		if e.IsDir() || !isImageFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		s.Frames = append(s.Frames, &Frame{
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(s.Frames, func(i, j int) bool { return s.Frames[i].Path < s.Frames[j].Path })

	if len(s.Frames) == 0 {
		return nil, fmt.Errorf("load series: no images in %s", dir)
	}
	return s, nil
}

// TotalSize returns the byte size of all frames on disk.
func (s *Series) TotalSize() int64 {
	var n int64
	for _, f := range s.Frames {
		n += f.Size
	}
	return n
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
