package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benestar/wikibase-datamodel/internal/domain/mocks"
	"github.com/benestar/wikibase-datamodel/internal/domain/services"
)

const berlinV1 = `{
	"type": "item",
	"id": "Q64",
	"labels": {"en": {"language": "en", "value": "Berlin"}},
	"claims": [
		{"id": "Q64$1", "type": "statement", "mainsnak": {"snaktype": "novalue", "property": "P31"}}
	]
}`

const berlinV2 = `{
	"type": "item",
	"id": "Q64",
	"labels": {
		"en": {"language": "en", "value": "Berlin"},
		"de": {"language": "de", "value": "Berlin"}
	},
	"claims": [
		{"id": "Q64$2", "type": "statement", "mainsnak": {"snaktype": "somevalue", "property": "P17"}}
	]
}`

// writeFile writes content to name inside a temp dir and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestServices(t *testing.T) (*services.RevisionService, *mocks.RevisionStore) {
	t.Helper()
	store := mocks.NewRevisionStore()
	return services.NewRevisionService(store, services.NewEntityDiffService(nil), nil), store
}

