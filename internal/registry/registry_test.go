package registry

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelops/reportgen/internal/report"
	"github.com/hostelops/reportgen/internal/timerange"
)

func TestNew_CoversEverySection(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	reg := New(db, t.TempDir(), "templates")

	for _, section := range report.Sections() {
		entry, err := reg.Lookup(section)
		require.NoError(t, err, "section %s", section)

		assert.NotNil(t, entry.Engine)
		assert.NotNil(t, entry.Exporter)
		assert.NotNil(t, entry.ResolveCode)
		assert.Contains(t, entry.TemplateDir, string(section))
	}
}

func TestLookup_UnknownSection(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	reg := New(db, t.TempDir(), "templates")

	_, err = reg.Lookup(report.Section("laundry"))
	assert.ErrorIs(t, err, report.ErrUnknownSection)
}

func TestEntry_ResolveCodeIsSectionBound(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	reg := New(db, t.TempDir(), "templates")

	entry, err := reg.Lookup(report.SectionVehicle)
	require.NoError(t, err)

	code, err := entry.ResolveCode(timerange.Weekly)
	require.NoError(t, err)
	assert.Equal(t, report.VehicleWeeklySummary, code)

	code, err = entry.ResolveCode(timerange.Custom)
	require.NoError(t, err)
	assert.Equal(t, report.VehicleMonthlySummary, code)

	_, err = entry.ResolveCode(timerange.RangeType("yearly"))
	assert.ErrorIs(t, err, timerange.ErrUnsupportedRangeType)
}
