// Package prefetch bulk-downloads metadata documents into a directory using
// a pool of workers, with a single progress bar tracking files completed.
package prefetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/schollz/progressbar/v3"

	"github.com/modforge/launchmeta/internal/fetch"
	"github.com/modforge/launchmeta/internal/utils/logger"
)

// Document names one remote metadata file to download. A document is
// addressed either by a direct URL or by a mirror-relative Path tried
// against each entry of Mirrors in order.
type Document struct {
	URL     string
	Path    string   // used with Mirrors when URL is empty
	Mirrors []string // mirror prefixes, concatenated with Path as-is
	SHA1    string   // optional expected digest, lowercase hex
	Name    string   // file name within the destination directory
}

// source describes where a document comes from, for log lines.
func (d Document) source() string {
	if d.URL != "" {
		return d.URL
	}
	return d.Path
}

// Result holds the outcome of downloading one document.
type Result struct {
	Name string
	Path string // final path on disk, empty on failure
	Err  error
}

// Options control a bulk download run.
type Options struct {
	Workers      int
	Gzip         bool // write documents gzip-compressed with a .gz suffix
	SkipExisting bool // keep non-empty files already present
}

// FetchDocuments downloads docs into destDir and returns a result per
// document in the same order. Individual failures are recorded, not fatal;
// cancelling ctx makes the remaining documents fail with their fetch error.
func FetchDocuments(ctx context.Context, client *fetch.Client, docs []Document, destDir string, opts Options) []Result {
	log := logger.Logger()

	total := len(docs)
	results := make([]Result, total)

	if err := os.MkdirAll(destDir, 0755); err != nil {
		for i, doc := range docs {
			results[i] = Result{Name: doc.Name, Err: fmt.Errorf("creating dest dir %s: %w", destDir, err)}
		}
		return results
	}

	jobs := make(chan int, total)
	var wg sync.WaitGroup

	// single progress bar for total files
	bar := progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowDescriptionAtLineEnd(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(200*time.Millisecond),
		progressbar.OptionSpinnerType(10),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				doc := docs[idx]
				bar.Describe(doc.Name)

				path, err := fetchOne(ctx, client, doc, destDir, opts)
				if err != nil {
					log.Errorf("downloading %s failed: %v", doc.source(), err)
				}
				results[idx] = Result{Name: doc.Name, Path: path, Err: err}

				if err := bar.Add(1); err != nil {
					log.Errorf("failed to add to progress bar: %v", err)
				}
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	if err := bar.Finish(); err != nil {
		log.Errorf("failed to finish progress bar: %v", err)
	}

	return results
}

func fetchOne(ctx context.Context, client *fetch.Client, doc Document, destDir string, opts Options) (string, error) {
	log := logger.Logger()

	name := doc.Name
	if opts.Gzip {
		name += ".gz"
	}
	destPath := filepath.Join(destDir, name)
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", name, err)
	}

	if opts.SkipExisting {
		if fi, err := os.Stat(destPath); err == nil && fi.Size() > 0 {
			log.Debugf("skipping existing %s", name)
			return destPath, nil
		}
	}

	var data []byte
	var err error
	if doc.URL != "" {
		data, err = client.Fetch(ctx, doc.URL, doc.SHA1)
	} else {
		data, err = client.FetchMirrors(ctx, doc.Path, doc.Mirrors, doc.SHA1)
	}
	if err != nil {
		return "", err
	}

	// Write to a uniquely named temp file first so a crashed run never
	// leaves a truncated document under the final name.
	tmpPath := filepath.Join(filepath.Dir(destPath),
		fmt.Sprintf(".%s.%s", filepath.Base(destPath), uuid.New().String()[:8]))
	if err := writeDocument(tmpPath, data, opts.Gzip); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("renaming %s: %w", tmpPath, err)
	}

	return destPath, nil
}

func writeDocument(path string, data []byte, compress bool) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	if compress {
		gw := gzip.NewWriter(out)
		if _, err := gw.Write(data); err != nil {
			return fmt.Errorf("compressing %s: %w", path, err)
		}
		if err := gw.Close(); err != nil {
			return fmt.Errorf("finishing %s: %w", path, err)
		}
		return nil
	}

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
