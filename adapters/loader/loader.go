// Package loader - Price table loaders.
// Tree formats (JSON, YAML, HCL) decode into the ordered document model and are
// built optimistically; flat formats (CSV, HTML tables) feed the table builder row by row.
// Only unreadable or syntactically invalid documents fail; everything else becomes an issue.
package loader

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"pricebook/core/pricebook"
	"pricebook/internal/errors"
	"pricebook/internal/logging"
)

// Format identifies a pricebook document format
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// Formats returns the supported formats
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatHCL, FormatCSV, FormatHTML}
}

// DetectFormat picks a format from a file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	case ".csv":
		return FormatCSV, nil
	case ".html", ".htm":
		return FormatHTML, nil
	}
	return "", errors.NotSupported("pricebook format " + filepath.Ext(path)).WithContext("path", path)
}

// Result is a loaded table with the issues found while building it
type Result struct {
	Table  *pricebook.Table
	Issues []pricebook.Issue
	Format Format
	Source string
}

// Load reads and decodes a pricebook file
func Load(ctx context.Context, path string) (*Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("pricebook", path)
		}
		return nil, errors.IO(path, err)
	}

	res, err := Decode(format, bytes.NewReader(data), path)
	if err != nil {
		return nil, err
	}

	log := logging.Named("loader")
	for _, issue := range res.Issues {
		log.Warn("pricebook entry skipped",
			zap.String("source", path),
			zap.String("path", issue.Path),
			zap.String("issue", issue.Message))
	}
	stats := res.Table.Stats()
	log.Info("pricebook loaded",
		zap.String("source", path),
		zap.String("format", string(format)),
		zap.Int("regions", stats.Regions),
		zap.Int("countries", stats.Countries),
		zap.Int("prices", stats.Prices),
		zap.Int("issues", len(res.Issues)))
	return res, nil
}

// Decode decodes a document of the given format. name labels errors.
func Decode(format Format, r io.Reader, name string) (*Result, error) {
	var (
		table  *pricebook.Table
		issues []pricebook.Issue
		err    error
	)

	switch format {
	case FormatJSON:
		table, issues, err = buildTree(decodeJSON(r))
	case FormatYAML:
		table, issues, err = buildTree(decodeYAML(r))
	case FormatHCL:
		table, issues, err = decodeHCL(r, name)
	case FormatCSV:
		table, issues, err = decodeCSV(r)
	case FormatHTML:
		table, issues, err = decodeHTML(r)
	default:
		return nil, errors.NotSupported("pricebook format " + string(format))
	}
	if err != nil {
		return nil, errors.Parsing(name, err).WithContext("format", string(format))
	}

	return &Result{Table: table, Issues: issues, Format: format, Source: name}, nil
}

func buildTree(doc any, err error) (*pricebook.Table, []pricebook.Issue, error) {
	if err != nil {
		return nil, nil, err
	}
	table, issues := pricebook.Build(doc)
	return table, issues, nil
}
