package payrollexport

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"elec-payroll/internal/timesheet"
)

// Sink receives a rendered export. It is the hand-off point to whatever saves
// the file: a directory, a stream, an HTTP attachment.
type Sink interface {
	Save(ctx context.Context, name string, data []byte) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, name string, data []byte) error

func (f SinkFunc) Save(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}

// ExportFileName returns payroll-export-<provider>-<start>-to-<end>.csv with
// the provider normalised.
func ExportFileName(provider, periodStart, periodEnd string) string {
	p, _ := ParseProvider(provider)
	return fmt.Sprintf("payroll-export-%s-%s-to-%s.csv", p, periodStart, periodEnd)
}

// ExportAndDownload renders entries for provider and hands the file to sink.
func ExportAndDownload(ctx context.Context, sink Sink, provider string, entries []timesheet.PayrollEntry, periodStart, periodEnd string) error {
	body, err := FormatForProvider(provider, entries)
	if err != nil {
		return err
	}
	return sink.Save(ctx, ExportFileName(provider, periodStart, periodEnd), []byte(body))
}

// FileSink writes exports into Dir, creating it on first use.
type FileSink struct {
	Dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

func (s *FileSink) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	// write to a temp file first so readers never see a partial export
	tmp, err := os.CreateTemp(s.Dir, "."+filepath.Base(name)+".*")
	if err != nil {
		return fmt.Errorf("create temp export: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	return os.Rename(tmp.Name(), filepath.Join(s.Dir, filepath.Base(name)))
}

// WriterSink streams the export body to W and ignores the name.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Save(ctx context.Context, name string, data []byte) error {
	_, err := s.W.Write(data)
	return err
}
