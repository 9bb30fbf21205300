package request

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/reque-io/reque/internal/shared/biztime"
)

const maxFileNameLength = 255

// Attachment is file metadata only. The bytes live behind the BlobStore
// under storageKey; deleting the row orphans the blob at worst, never the
// other way around.
type Attachment struct {
	id          uint
	requestID   uint
	uploaderID  uint
	storageKey  string
	fileName    string
	contentType string
	sizeBytes   int64
	checksum    string
	createdAt   time.Time
}

func NewAttachment(
	requestID uint,
	uploaderID uint,
	storageKey string,
	fileName string,
	contentType string,
	sizeBytes int64,
	checksum string,
) (*Attachment, error) {
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if uploaderID == 0 {
		return nil, fmt.Errorf("uploader ID is required")
	}
	if storageKey == "" {
		return nil, fmt.Errorf("storage key is required")
	}
	sanitized := SanitizeFileName(fileName)
	if sanitized == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if sizeBytes <= 0 {
		return nil, fmt.Errorf("attachment size must be positive")
	}
	if checksum == "" {
		return nil, fmt.Errorf("checksum is required")
	}

	return &Attachment{
		requestID:   requestID,
		uploaderID:  uploaderID,
		storageKey:  storageKey,
		fileName:    sanitized,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		checksum:    checksum,
		createdAt:   biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(
	id uint,
	requestID uint,
	uploaderID uint,
	storageKey string,
	fileName string,
	contentType string,
	sizeBytes int64,
	checksum string,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if requestID == 0 {
		return nil, fmt.Errorf("request ID is required")
	}
	if storageKey == "" {
		return nil, fmt.Errorf("storage key is required")
	}

	return &Attachment{
		id:          id,
		requestID:   requestID,
		uploaderID:  uploaderID,
		storageKey:  storageKey,
		fileName:    fileName,
		contentType: contentType,
		sizeBytes:   sizeBytes,
		checksum:    checksum,
		createdAt:   createdAt,
	}, nil
}

func (a *Attachment) ID() uint             { return a.id }
func (a *Attachment) RequestID() uint      { return a.requestID }
func (a *Attachment) UploaderID() uint     { return a.uploaderID }
func (a *Attachment) StorageKey() string   { return a.storageKey }
func (a *Attachment) FileName() string     { return a.fileName }
func (a *Attachment) ContentType() string  { return a.contentType }
func (a *Attachment) SizeBytes() int64     { return a.sizeBytes }
func (a *Attachment) Checksum() string     { return a.checksum }
func (a *Attachment) CreatedAt() time.Time { return a.createdAt }

func (a *Attachment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = id
	return nil
}

func (a *Attachment) IsUploader(userID uint) bool {
	return a.uploaderID == userID
}

// SanitizeFileName strips any path components and control characters from a
// client-supplied file name, then truncates it to the storable length.
func SanitizeFileName(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return ""
	}
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if len(name) > maxFileNameLength {
		ext := filepath.Ext(name)
		if len(ext) >= maxFileNameLength {
			return name[:maxFileNameLength]
		}
		name = name[:maxFileNameLength-len(ext)] + ext
	}
	return name
}
