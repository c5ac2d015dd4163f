// Package contenttype determines the Content-Type sent with uploaded objects.
package contenttype

import (
	"mime"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3helper/s3types"
)

// Default is returned when no better type can be determined.
const Default = s3types.DefaultContentType

// FromKey derives a content type from the extension of an object key.
func FromKey(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	return Default
}

// FromBytes sniffs the content type of data, falling back to the key extension
// when sniffing only finds a generic binary type.
func FromBytes(key string, data []byte) string {
	if len(data) > 0 {
		if mt := mimetype.Detect(data); mt != nil && !mt.Is(Default) {
			return mt.String()
		}
	}
	return FromKey(key)
}

// FromFile sniffs the content type of a file on fs, falling back to the
// extension of name when the file cannot be read or is generic binary.
func FromFile(fsys fs.Filesystem, name string) string {
	file, err := fsys.Open(name)
	if err != nil {
		return FromKey(name)
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil || mt == nil || mt.Is(Default) {
		return FromKey(name)
	}
	return mt.String()
}
