package handlers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benestar/wikibase-datamodel/internal/domain/diff"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

func TestDiffHandler_DiffAndPatch(t *testing.T) {
	tmpDir := t.TempDir()
	from := writeFile(t, tmpDir, "v1.json", berlinV1)
	to := writeFile(t, tmpDir, "v2.json", berlinV2)

	handler := NewDiffHandler(services.NewEntityDiffService(nil))

	d, err := handler.Diff(from, to, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"de"}, d.Labels.Keys())
	assert.Equal(t, []string{"Q64$1", "Q64$2"}, d.Claims.Keys())
	op, _ := d.Claims.Get("Q64$1")
	assert.Equal(t, diff.OpRemove, op.Type())

	var buf bytes.Buffer
	require.NoError(t, WriteDiff(&buf, d, "yaml"))
	diffPath := writeFile(t, tmpDir, "v1-v2.yaml", buf.String())

	patched, err := handler.Patch(from, diffPath, "")
	require.NoError(t, err)

	want, err := ReadEntity(to, "")
	require.NoError(t, err)
	assert.True(t, patched.Equals(want))
}

func TestDiffHandler_Errors(t *testing.T) {
	tmpDir := t.TempDir()
	item := writeFile(t, tmpDir, "item.json", berlinV1)
	property := writeFile(t, tmpDir, "property.json", `{"type": "property", "id": "P31", "datatype": "wikibase-item"}`)
	unknown := writeFile(t, tmpDir, "item.txt", berlinV1)

	handler := NewDiffHandler(services.NewEntityDiffService(nil))

	tests := []struct {
		name    string
		from    string
		to      string
		wantErr string
	}{
		{name: "kind mismatch", from: item, to: property, wantErr: "expected entity kind"},
		{name: "unsupported extension", from: unknown, to: item, wantErr: "unsupported format"},
		{name: "missing file", from: item, to: tmpDir + "/missing.json", wantErr: "opening file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Diff(tt.from, tt.to, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("explicit format overrides extension", func(t *testing.T) {
		_, err := handler.Diff(unknown, item, "json")
		require.NoError(t, err)
	})
}

func TestWriteEntity_UnsupportedFormat(t *testing.T) {
	e, err := ReadEntity(writeFile(t, t.TempDir(), "q64.json", berlinV1), "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.Error(t, WriteEntity(&buf, e, "xml"))
	require.NoError(t, WriteEntity(&buf, e, "json"))
	assert.Contains(t, buf.String(), `"Q64$1"`)
}
