package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crimeprep/internal/models"
	"crimeprep/pkg/checksum"
)

func countDoc() models.Document {
	return models.Document{
		"2024": {
			"04": models.NeighborhoodCounts{"Downtown": 1},
			"03": models.NeighborhoodCounts{"Downtown": 2, "Bloomfield": 1},
		},
	}
}

func TestWriter_Encode_Indented(t *testing.T) {
	data, err := NewWriter(2, nil).Encode(countDoc())
	require.NoError(t, err)

	want := `{
  "2024": {
    "03": {
      "Bloomfield": 1,
      "Downtown": 2
    },
    "04": {
      "Downtown": 1
    }
  }
}
`
	assert.Equal(t, want, string(data))
}

func TestWriter_Encode_Compact(t *testing.T) {
	data, err := NewWriter(0, nil).Encode(countDoc())
	require.NoError(t, err)

	assert.Equal(t, `{"2024":{"03":{"Bloomfield":1,"Downtown":2},"04":{"Downtown":1}}}`+"\n", string(data))
}

func TestWriter_Encode_LiteralCharacters(t *testing.T) {
	doc := models.Document{
		"2025": {
			"01": []models.Point{{
				Lat:          40.44,
				Lng:          -79.99,
				Neighborhood: "Spring Hill-City View",
				Category:     "Burglary/Breaking & Entering",
				Type:         "<unknown>",
				Severity:     models.SeveritySerious,
			}},
			"02": []models.Point{{Lat: 1, Lng: 2, Neighborhood: "Éast End", Category: "Arson", Type: "Arson"}},
		},
	}

	data, err := NewWriter(2, nil).Encode(doc)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `"category": "Burglary/Breaking & Entering"`)
	assert.Contains(t, out, `"type": "<unknown>"`)
	assert.Contains(t, out, `"neighborhood": "Éast End"`)
	assert.NotContains(t, out, `\u0026`)
	assert.NotContains(t, out, `\u003c`)

	// Point keys keep their declared order; empty severity is omitted.
	assert.Less(t, strings.Index(out, `"lat"`), strings.Index(out, `"lng"`))
	assert.Less(t, strings.Index(out, `"lng"`), strings.Index(out, `"neighborhood"`))
	assert.Equal(t, 1, strings.Count(out, `"severity"`))
}

func TestWriter_Encode_NilDocument(t *testing.T) {
	_, err := NewWriter(2, nil).Encode(nil)
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestWriter_WriteDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "crime_monthly.json")

	w := NewWriter(2, nil)

	res, err := w.WriteDocument(path, countDoc())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, res.Path)
	assert.Equal(t, len(data), res.Bytes)
	assert.Equal(t, checksum.Bytes(data), res.SHA256)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	// Overwrite with a smaller document
	_, err = w.WriteDocument(path, models.Document{})
	require.NoError(t, err)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files left behind")
	assert.Equal(t, "crime_monthly.json", entries[0].Name())
}

func TestWriter_WriteEncoded(t *testing.T) {
	w := NewWriter(2, nil)

	data, err := w.Encode(countDoc())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "crime_monthly.json")

	res, err := w.WriteEncoded(path, data)
	require.NoError(t, err)
	assert.Equal(t, checksum.Bytes(data), res.SHA256)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, onDisk)
}

func TestWriter_WriteDocument_Repeatable(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(2, nil)

	first, err := w.WriteDocument(filepath.Join(dir, "a.json"), countDoc())
	require.NoError(t, err)

	second, err := w.WriteDocument(filepath.Join(dir, "b.json"), countDoc())
	require.NoError(t, err)

	assert.Equal(t, first.SHA256, second.SHA256)
}

func TestWriteFileAtomic_FailureLeavesTargetUntouched(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(target, []byte("previous"), 0644))

	// A directory in place of the destination makes the rename fail
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "child"), 0755))

	err := WriteFileAtomic(blocked, []byte("new"))
	require.Error(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp-"), "temp file %s left behind", e.Name())
	}
}
