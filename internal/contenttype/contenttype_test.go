package contenttype

import (
	"testing"

	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"data.json", "application/json"},
		{"DATA.JSON", "application/json"},
		{"image.png", "image/png"},
		{"folder/no-extension", Default},
		{"archive.unknownext", Default},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, FromKey(tt.key))
		})
	}
}

func TestFromBytes(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	assert.Equal(t, "image/png", FromBytes("no-extension", png))
	assert.Equal(t, "application/json", FromBytes("empty.json", nil))
	assert.Equal(t, Default, FromBytes("blob", []byte{0x00, 0x01, 0x02, 0x03}))
}

func TestFromFile(t *testing.T) {
	memFS := billy.NewInMemoryFS()
	require.NoError(t, memFS.WriteFile("/upload/pic", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))
	require.NoError(t, memFS.WriteFile("/upload/blob.json", []byte{0x00, 0x01, 0x02}, 0o644))

	assert.Equal(t, "image/png", FromFile(memFS, "/upload/pic"))
	assert.Equal(t, "application/json", FromFile(memFS, "/upload/blob.json"))
	assert.Equal(t, "application/json", FromFile(memFS, "/missing/file.json"))
}
