// Package result persists run reports: output files and the optional KV store.
package result

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/kailas-cloud/pagecluster/internal/usecase/pipeline"
)

// Default output file names.
const (
	DefaultClustersFile = "clusters.json"
	DefaultErrorLogFile = "error_log.txt"
)

// FileWriter writes clusters.json and error_log.txt under one output location.
type FileWriter struct {
	fs           afs.Service
	dir          string
	clustersFile string
	errorLogFile string
}

// NewFileWriter creates a file writer. Empty names fall back to the defaults.
func NewFileWriter(fs afs.Service, dir, clustersFile, errorLogFile string) *FileWriter {
	if clustersFile == "" {
		clustersFile = DefaultClustersFile
	}
	if errorLogFile == "" {
		errorLogFile = DefaultErrorLogFile
	}
	return &FileWriter{fs: fs, dir: dir, clustersFile: clustersFile, errorLogFile: errorLogFile}
}

// ClustersURL returns the clusters file location.
func (w *FileWriter) ClustersURL() string { return url.Join(w.dir, w.clustersFile) }

// ErrorLogURL returns the error log location.
func (w *FileWriter) ErrorLogURL() string { return url.Join(w.dir, w.errorLogFile) }

// Write replaces both output files.
func (w *FileWriter) Write(ctx context.Context, r pipeline.Report) error {
	clusters, err := EncodeClusters(r)
	if err != nil {
		return err
	}
	if err := w.upload(ctx, w.ClustersURL(), clusters); err != nil {
		return err
	}
	return w.upload(ctx, w.ErrorLogURL(), EncodeErrorLog(r))
}

// EncodeClusters renders tier -> clusters as indented JSON with sorted tier keys.
func EncodeClusters(r pipeline.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r.Clusters(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal clusters: %w", err)
	}
	return append(data, '\n'), nil
}

// EncodeErrorLog renders one line per skip record in timestamp order.
func EncodeErrorLog(r pipeline.Report) []byte {
	var b strings.Builder
	for _, s := range r.Skipped {
		b.WriteString(s.Line())
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

func (w *FileWriter) upload(ctx context.Context, URL string, data []byte) error {
	if ok, _ := w.fs.Exists(ctx, URL); ok {
		if err := w.fs.Delete(ctx, URL); err != nil {
			return fmt.Errorf("replace %s: %w", URL, err)
		}
	}
	if err := w.fs.Upload(ctx, URL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("upload %s: %w", URL, err)
	}
	return nil
}
