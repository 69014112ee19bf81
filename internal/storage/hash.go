package storage

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
)

const defaultBufferSize = 32 * 1024

var bufferPool = sync.Pool{
	New: func() interface{} {
		buffer := make([]byte, defaultBufferSize)
		return &buffer
	},
}

// HashContent returns the xxHash64 of the content as 16 lower-case hex digits.
func HashContent(content io.Reader) (string, error) {
	bufPtr := bufferPool.Get().(*[]byte)
	buffer := *bufPtr
	defer bufferPool.Put(bufPtr)

	h := xxhash.New()
	if _, err := io.CopyBuffer(h, content, buffer); err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// WriteHashToken hashes dataFile and stores the token in hashFile, which is
// what FsSource.HashToken later reads. An empty hashFile means dataFile+".hash".
func WriteHashToken(fs afero.Fs, dataFile, hashFile string) (string, error) {
	if hashFile == "" {
		hashFile = dataFile + hashFileSuffix
	}
	f, err := fs.Open(dataFile)
	if err != nil {
		return "", err
	}
	defer f.Close()

	token, err := HashContent(f)
	if err != nil {
		return "", err
	}
	if err := afero.WriteFile(fs, hashFile, []byte(token+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", hashFile, err)
	}
	return token, nil
}

func HashContentString(s string) (string, error) {
	return HashContent(strings.NewReader(s))
}
