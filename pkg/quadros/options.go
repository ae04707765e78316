// Package quadros wires the roster pipelines: load, resolve, classify, bind,
// write, audit.
package quadros

import (
	"time"

	"go.uber.org/zap"

	"github.com/secretaria-digital/quadros-go/pkg/quadros/parser"
	"github.com/secretaria-digital/quadros-go/pkg/quadros/writer"
)

// Options configures a pipeline run.
type Options struct {
	// Audit controls whether the hidden audit sheet is written into the
	// output template.
	Audit bool
	// AuditSheet overrides the audit sheet name.
	AuditSheet string
	// Categories overrides the raw→canonical reason table. Nil uses the
	// compiled-in default.
	Categories parser.CategoryTable
	// Logger receives pipeline diagnostics. Nil disables logging.
	Logger *zap.Logger
	// Now supplies "today" so runs are reproducible in tests. Nil uses
	// time.Now.
	Now func() time.Time
}

// DefaultOptions returns the options used by the CLI: audit on, default
// category table.
func DefaultOptions() Options {
	return Options{Audit: true}
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) categories() parser.CategoryTable {
	if o.Categories != nil {
		return o.Categories
	}
	return parser.DefaultCategoryTable()
}

func (o Options) auditSheet() string {
	if o.AuditSheet != "" {
		return o.AuditSheet
	}
	return writer.DefaultAuditSheetName
}
