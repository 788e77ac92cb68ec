package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() Table {
	return Table{
		Headers: []string{"calendarDate", "assignedHours", "dayType", "status"},
		Rows: [][]string{
			{"2025-05-20", "4", "Normal", "Ocupado"},
			{"2025-05-21", "2", "Normal", "Libre"},
		},
	}
}

func TestCSVRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "calendarDate,assignedHours,dayType,status\n2025-05-20,4,Normal,Ocupado\n2025-05-21,2,Normal,Libre\n", string(payload))
}

func TestCSVRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Table{})
	require.Error(t, err)
}

func TestPDFRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(sampleTable(), "Study plan")
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}
