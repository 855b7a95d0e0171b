package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	outputFormat = "table"
	cmd := newRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestPlantsCmd_JSON(t *testing.T) {
	out, err := run(t, "plants", "--type", "tree", "--sort", "carbon-high", "-o", "json")
	require.NoError(t, err)

	var plants []domain.PlantRecord
	require.NoError(t, json.Unmarshal([]byte(out), &plants))
	require.NotEmpty(t, plants)
	for i, p := range plants {
		assert.Equal(t, domain.PlantTree, p.PlantType)
		if i > 0 {
			assert.LessOrEqual(t, p.CarbonSequestration, plants[i-1].CarbonSequestration)
		}
	}
}

func TestPlantsCmd_Table(t *testing.T) {
	out, err := run(t, "plants", "-q", "oak")
	require.NoError(t, err)
	assert.Contains(t, out, "Oak Tree")
	assert.Contains(t, out, "of 100 plants")
}

func TestAreaCmd_Args(t *testing.T) {
	out, err := run(t, "area", "0,0", "0,1", "1,1", "1,0", "-o", "json")
	require.NoError(t, err)

	var res struct {
		AreaM2 float64 `json:"area_m2"`
		Points int     `json:"points"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InEpsilon(t, 111000.0*111000.0, res.AreaM2, 1e-9)
	assert.Equal(t, 4, res.Points)
}

func TestAreaCmd_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boundary.yaml")
	data := "- {lat: 0, lon: 0}\n- {lat: 0, lon: 1}\n- {lat: 1, lon: 1}\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	out, err := run(t, "area", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "points:    3")
}

func TestAreaCmd_BadPoint(t *testing.T) {
	_, err := run(t, "area", "12.5")
	assert.ErrorContains(t, err, "want lat,lon")
}

func TestProjectCmd(t *testing.T) {
	out, err := run(t, "project", "--select", "1:2", "--years", "3", "-o", "json")
	require.NoError(t, err)

	var proj domain.CarbonProjection
	require.NoError(t, json.Unmarshal([]byte(out), &proj))
	assert.Equal(t, []float64{96, 192, 288}, proj.Cumulative)
}

func TestProjectCmd_InvalidYears(t *testing.T) {
	_, err := run(t, "project", "--select", "1:2", "--years", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidYears)

	_, err = run(t, "project", "--select", "1:2", "--years", "1001")
	assert.ErrorIs(t, err, domain.ErrInvalidYears)
}

func TestMicroclimateCmd(t *testing.T) {
	out, err := run(t, "microclimate", "--temp", "20", "--humidity", "70", "--rainfall", "800")
	require.NoError(t, err)
	assert.Equal(t, "temperate-humid", strings.TrimSpace(out))

	_, err = run(t, "microclimate", "--temp", "20")
	assert.Error(t, err)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "plants", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}
