package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFolder(t *testing.T) {
	tests := []struct {
		name    string
		section string
		docType string
		want    Folder
		wantErr bool
	}{
		{name: "canonical", section: "logistics", docType: "incoming", want: Folder{Logistics, Incoming}},
		{name: "outgoing", section: "civil-military", docType: "outgoing", want: Folder{CivilMilitary, Outgoing}},
		{name: "legacy alias", section: "s2_intelligence", docType: "outgoing", want: Folder{Intelligence, Outgoing}},
		{name: "unknown section", section: "finance", docType: "incoming", wantErr: true},
		{name: "unknown type", section: "logistics", docType: "archived", wantErr: true},
		{name: "case sensitive", section: "Logistics", docType: "incoming", wantErr: true},
		{name: "empty", section: "", docType: "", wantErr: true},
		{name: "traversal section", section: "..", docType: "incoming", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFolder(tt.section, tt.docType)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFolder)
				assert.False(t, IsValid(tt.section, tt.docType))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, IsValid(tt.section, tt.docType))
		})
	}
}

func TestFolders(t *testing.T) {
	folders := Folders()
	assert.Len(t, folders, 12)

	seen := map[string]bool{}
	for _, f := range folders {
		assert.False(t, seen[f.Key()], "duplicate folder %s", f.Key())
		seen[f.Key()] = true
		assert.NotEmpty(t, f.Category.Label())
		assert.NotEmpty(t, f.Type.Label())
	}
	assert.True(t, seen["training-ops/outgoing"])
}

func TestFolderKeys(t *testing.T) {
	f := Folder{Category: CommandGroup, Type: Outgoing}
	assert.Equal(t, "command-group/outgoing", f.Key())
	assert.Equal(t, "command-group/outgoing/1700000000000-memo.pdf", f.ObjectKey("1700000000000-memo.pdf"))
}

func TestCategoriesReturnsCopy(t *testing.T) {
	cs := Categories()
	cs[0] = "mutated"
	assert.Equal(t, CommandGroup, Categories()[0])
}
