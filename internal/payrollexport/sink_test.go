package payrollexport_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"elec-payroll/internal/payrollexport"
	"elec-payroll/internal/timesheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "payroll-export-xero-2024-01-01-to-2024-01-31.csv",
		payrollexport.ExportFileName("xero", "2024-01-01", "2024-01-31"))
	assert.Equal(t, "payroll-export-csv-2024-01-01-to-2024-01-31.csv",
		payrollexport.ExportFileName("unknown", "2024-01-01", "2024-01-31"))
}

func TestExportAndDownload_FileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink := payrollexport.NewFileSink(dir)
	entries := []timesheet.PayrollEntry{aliceEntry()}

	err := payrollexport.ExportAndDownload(context.Background(), sink, "sage", entries, "2024-01-15", "2024-01-21")
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "payroll-export-sage-2024-01-15-to-2024-01-21.csv"))
	require.NoError(t, err)
	want, _ := payrollexport.FormatForProvider("sage", entries)
	assert.Equal(t, want, string(got))

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestExportAndDownload_SinkReceivesName(t *testing.T) {
	var gotName string
	var gotData []byte
	sink := payrollexport.SinkFunc(func(ctx context.Context, name string, data []byte) error {
		gotName, gotData = name, data
		return nil
	})

	err := payrollexport.ExportAndDownload(context.Background(), sink, "intuit", nil, "2024-02-01", "2024-02-29")

	require.NoError(t, err)
	assert.Equal(t, "payroll-export-intuit-2024-02-01-to-2024-02-29.csv", gotName)
	assert.Equal(t, "Employee,Pay Period,Regular Hours,Overtime Hours,Pay Rate,Gross Wages,Job Allocations", string(gotData))
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	err := payrollexport.WriterSink{W: &buf}.Save(context.Background(), "ignored.csv", []byte("a,b"))

	require.NoError(t, err)
	assert.Equal(t, "a,b", buf.String())
}

func TestFileSink_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := payrollexport.NewFileSink(t.TempDir()).Save(ctx, "x.csv", []byte("x"))

	assert.ErrorIs(t, err, context.Canceled)
}
