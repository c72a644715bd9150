package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

func newTestImportHandler(t *testing.T) *ImportHandler {
	t.Helper()
	revisions, store := newTestServices(t)
	return NewImportHandler(services.NewImportService(store, revisions, nil))
}

func TestImportHandler_Handle_JSONFile(t *testing.T) {
	handler := newTestImportHandler(t)
	path := writeFile(t, t.TempDir(), "dump.json", `[`+berlinV1+`, {"type": "property", "id": "P31", "datatype": "wikibase-item"}]`)

	result, err := handler.Handle(context.Background(), path, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
}

func TestImportHandler_Handle_YAMLFile(t *testing.T) {
	handler := newTestImportHandler(t)
	content := `- type: item
  id: Q64
  labels:
    en: {language: en, value: Berlin}
- type: item
`
	path := writeFile(t, t.TempDir(), "dump.yaml", content)

	result, err := handler.Handle(context.Background(), path, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Document)
	assert.Equal(t, "id", result.Errors[0].Field)
}

func TestImportHandler_Handle_SecondImportSkips(t *testing.T) {
	handler := newTestImportHandler(t)
	path := writeFile(t, t.TempDir(), "dump.json", `[`+berlinV1+`]`)

	_, err := handler.Handle(context.Background(), path, ImportOptions{})
	require.NoError(t, err)

	result, err := handler.Handle(context.Background(), path, ImportOptions{OnConflict: services.ConflictSkip})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
}

func TestImportHandler_Handle_EmptyDump(t *testing.T) {
	handler := newTestImportHandler(t)
	path := writeFile(t, t.TempDir(), "dump.json", `[]`)

	result, err := handler.Handle(context.Background(), path, ImportOptions{})

	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
}

func TestImportHandler_Handle_Errors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		opts    ImportOptions
		wantErr string
	}{
		{name: "unsupported format", path: writeFile(t, tmpDir, "dump.csv", "a,b"), wantErr: "unsupported format"},
		{name: "not a list", path: writeFile(t, tmpDir, "one.json", berlinV1), wantErr: "parsing file"},
		{name: "missing file", path: tmpDir + "/missing.json", wantErr: "opening file"},
		{
			name:    "unknown strategy",
			path:    writeFile(t, tmpDir, "dump.json", `[`+berlinV1+`]`),
			opts:    ImportOptions{OnConflict: "merge"},
			wantErr: "invalid conflict strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestImportHandler(t).Handle(context.Background(), tt.path, tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
