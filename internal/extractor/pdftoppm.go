package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	defaultPdftoppmPath = "pdftoppm"
	defaultDPI          = 200
)

// PdftoppmRasterizer renders every page to PNG with the poppler pdftoppm tool.
type PdftoppmRasterizer struct {
	Binary string
	DPI    int
}

func NewPdftoppmRasterizer(binary string, dpi int) *PdftoppmRasterizer {
	if strings.TrimSpace(binary) == "" {
		binary = defaultPdftoppmPath
	}
	if dpi <= 0 {
		dpi = defaultDPI
	}
	return &PdftoppmRasterizer{Binary: binary, DPI: dpi}
}

func (r *PdftoppmRasterizer) Rasterize(ctx context.Context, path string) ([]Image, error) {
	dir, err := os.MkdirTemp("", "resume-pages-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	prefix := filepath.Join(dir, "page")

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, "-r", strconv.Itoa(r.DPI), "-png", path, prefix)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run %s: %w: %s", r.Binary, err, strings.TrimSpace(stderr.String()))
	}

	files, err := filepath.Glob(prefix + "-*.png")
	if err != nil {
		return nil, fmt.Errorf("list rendered pages: %w", err)
	}

	images := make([]Image, 0, len(files))
	for _, file := range files {
		page, err := pageNumber(prefix, file)
		if err != nil {
			return nil, err
		}

		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read rendered page %d: %w", page, err)
		}

		images = append(images, Image{Page: page, Data: data, MIMEType: "image/png"})
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Page < images[j].Page
	})

	return images, nil
}

// pageNumber parses names like page-1.png or page-07.png.
func pageNumber(prefix, file string) (int, error) {
	raw := strings.TrimSuffix(strings.TrimPrefix(file, prefix+"-"), ".png")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("unexpected rendered page name %q: %w", filepath.Base(file), err)
	}
	return n, nil
}
