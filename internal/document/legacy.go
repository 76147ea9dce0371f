package document

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/richardlehane/mscfb"
)

var (
	// ErrLegacyFormat is returned for binary Word 97-2003 documents.
	ErrLegacyFormat = errors.New("legacy .doc format is not supported, save the file as .docx first")
	// ErrEncrypted is returned for password protected packages, which Word
	// stores inside an OLE container.
	ErrEncrypted = errors.New("password protected documents are not supported")
)

var oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// IsOLE reports whether data starts with the compound file signature.
func IsOLE(data []byte) bool {
	return bytes.HasPrefix(data, oleSignature)
}

// DetectLegacy inspects an OLE compound file and explains why it cannot be
// opened as a DOCX package.
func DetectLegacy(data []byte) error {
	doc, err := mscfb.New(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: unreadable compound file: %v", ErrNotDocx, err)
	}

	for {
		entry, err := doc.Next()
		if err != nil {
			break
		}
		switch entry.Name {
		case "WordDocument":
			return ErrLegacyFormat
		case "EncryptedPackage":
			return ErrEncrypted
		}
	}
	return fmt.Errorf("%w: compound file without a Word stream", ErrNotDocx)
}
