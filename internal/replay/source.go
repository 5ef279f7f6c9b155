package replay

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Settlement-Replay/internal/logger"
)

// Open returns a reader over the decompressed log at path. Files ending in
// .zst are zstd streams, .gz are gzip, anything else is read as text.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return &stackedCloser{Reader: dec, close: func() error {
			dec.Close()
			return f.Close()
		}}, nil
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return &stackedCloser{Reader: gz, close: func() error {
			gzErr := gz.Close()
			if err := f.Close(); err != nil {
				return err
			}
			return gzErr
		}}, nil
	}
	return f, nil
}

type stackedCloser struct {
	io.Reader
	close func() error
}

func (s *stackedCloser) Close() error { return s.close() }

// Load reads and parses the log at path in one pass. Open and read failures
// wrap ErrMissingSource. An empty replay is returned without error; callers
// that need frames should check RequireFrames.
func Load(path string) (*Replay, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingSource, path, err)
	}
	defer rc.Close()

	rep, err := Parse(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingSource, path, err)
	}

	fields := logrus.Fields{
		"path":    path,
		"frames":  humanize.Comma(int64(rep.Len())),
		"events":  rep.Stats.Events,
		"skipped": rep.Stats.Skipped,
	}
	if st, err := os.Stat(path); err == nil {
		fields["size"] = humanize.Bytes(uint64(st.Size()))
	}
	logger.Log.WithFields(fields).Info("replay loaded")
	if rep.Empty() {
		logger.Log.WithField("path", path).Warn("replay has no tick records")
	}
	return rep, nil
}
