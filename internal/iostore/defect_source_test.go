package iostore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/workbench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const defectsJSON = `[
  {"Empresa": "Acme", "ProduccionTotal": 100, "CantidaPiezasConFallas": 5},
  {"Empresa": "Globex", "ProduccionTotal": 50, "CantidaPiezasConFallas": 0}
]`

func writeDefects(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFileDefectSource(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "defects.json")
	writeDefects(t, path, defectsJSON)

	src, err := NewFileDefectSource(path, false)
	require.NoError(t, err)
	defer func() { assert.NoError(t, src.Close()) }()

	records, err := src.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, schema.DefectRecord{Company: "Acme", TotalProduction: 100, DefectiveCount: 5}, records[0])

	// Without watching, later edits are not picked up
	writeDefects(t, path, `[]`)
	records, err = src.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFileDefectSourceMissingFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "defects.json")

	src, err := NewFileDefectSource(path, false)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	_, err = src.Records(ctx)
	require.Error(t, err)
	assert.True(t, schema.IsStorage(err))

	// Records retries until the file shows up
	writeDefects(t, path, defectsJSON)
	records, err := src.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestFileDefectSourceCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defects.json")
	writeDefects(t, path, `{"Empresa": "Acme"}`)

	src, err := NewFileDefectSource(path, false)
	require.NoError(t, err)
	defer func() { _ = src.Close() }()

	_, err = src.Records(context.Background())
	assert.True(t, schema.IsStorage(err))
}

func TestFileDefectSourceWatch(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "defects.json")
	writeDefects(t, path, defectsJSON)

	src, err := NewFileDefectSource(path, true)
	require.NoError(t, err)
	defer func() { assert.NoError(t, src.Close()) }()

	writeDefects(t, path, `[{"Empresa": "Initech", "ProduccionTotal": 10, "CantidaPiezasConFallas": 1}]`)
	require.Eventually(t, func() bool {
		records, err := src.Records(ctx)
		return err == nil && len(records) == 1 && records[0].Company == "Initech"
	}, 5*time.Second, 20*time.Millisecond)

	// A broken write keeps the last good snapshot
	writeDefects(t, path, `[{`)
	time.Sleep(3 * reloadDebounce)
	records, err := src.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Initech", records[0].Company)
}

func TestFileDefectSourceCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defects.json")
	writeDefects(t, path, defectsJSON)

	src, err := NewFileDefectSource(path, true)
	require.NoError(t, err)
	require.NoError(t, src.Close())
	assert.NoError(t, src.Close())
}

func TestStaticDefectSource(t *testing.T) {
	input := []schema.DefectRecord{{Company: "Acme", TotalProduction: 1}}
	src := NewStaticDefectSource(input)
	input[0].Company = "Changed"

	records, err := src.Records(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Acme", records[0].Company)
	assert.NoError(t, src.Close())
}
