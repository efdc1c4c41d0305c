package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strconv"
	"syscall"
	"time"

	"github.com/rohmanhakim/mauvaise-langue/internal/metadata"
	"github.com/rohmanhakim/mauvaise-langue/pkg/failure"
	"github.com/rohmanhakim/mauvaise-langue/pkg/fileutil"
	"github.com/rohmanhakim/mauvaise-langue/pkg/hashutil"
)

/*
FileStore keeps the insult list in a single JSON file.

File format
- UTF-8 JSON array of strings
- 4-space indentation, no trailing newline
- non-ASCII and HTML characters written literally

Guarantees
- Load never fails: a missing, empty or malformed file reads as an empty list
- Save overwrites in place, with no temp file, backup or lock; concurrent
  writers can corrupt the file and callers must serialize access themselves
*/
type FileStore struct {
	path         string
	metadataSink metadata.MetadataSink
}

var _ Store = (*FileStore)(nil)

func NewFileStore(path string, metadataSink metadata.MetadataSink) *FileStore {
	return &FileStore{
		path:         path,
		metadataSink: metadataSink,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load() []string {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return []string{}
	}

	var insults []string
	if err := json.Unmarshal(content, &insults); err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"cache",
			"FileStore.Load",
			metadata.CauseContentInvalid,
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrPath, s.path),
			},
		)
		return []string{}
	}
	if insults == nil {
		return []string{}
	}
	return insults
}

func (s *FileStore) Save(insults []string) failure.ClassifiedError {
	content, cacheError := s.write(insults)
	if cacheError != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"cache",
			"FileStore.Save",
			mapCacheErrorToMetadataCause(cacheError),
			cacheError.Message,
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrWritePath, cacheError.Path),
			},
		)
		return cacheError
	}

	s.metadataSink.RecordArtifact(
		metadata.ArtifactInsultCache,
		s.path,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrWritePath, s.path),
			metadata.NewAttr(metadata.AttrCount, strconv.Itoa(len(insults))),
			metadata.NewAttr(metadata.AttrFingerprint, hashutil.Fingerprint(content)),
		},
	)
	return nil
}

func (s *FileStore) write(insults []string) ([]byte, *CacheError) {
	content, err := encode(insults)
	if err != nil {
		return nil, &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseEncodingFailed,
			Path:      s.path,
		}
	}

	if err := fileutil.EnsureParentDir(s.path); err != nil {
		return nil, &CacheError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      s.path,
		}
	}

	if err := os.WriteFile(s.path, content, 0644); err != nil {
		cause := ErrCauseWriteFailure
		retryable := false
		if errors.Is(err, syscall.ENOSPC) {
			cause = ErrCauseDiskFull
			retryable = true
		}
		return nil, &CacheError{
			Message:   err.Error(),
			Retryable: retryable,
			Cause:     cause,
			Path:      s.path,
		}
	}

	return content, nil
}

// encode renders insults the way the cache file has always looked:
// four-space indent, literal UTF-8, "[]" for an empty list.
func encode(insults []string) ([]byte, error) {
	if insults == nil {
		insults = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(insults); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
