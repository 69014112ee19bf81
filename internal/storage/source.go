package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"emojidb/internal/storage/interfaces"
	"emojidb/internal/structures"

	"github.com/spf13/afero"
)

const hashFileSuffix = ".hash"

var ErrSourceNotFound = errors.New("source not found")

// FsSource reads emoji-test.txt and its precomputed token file from an afero
// filesystem.
type FsSource struct {
	fs       afero.Fs
	dataFile string
	hashFile string
}

func NewFsSource(fs afero.Fs, dataFile, hashFile string) *FsSource {
	if hashFile == "" {
		hashFile = dataFile + hashFileSuffix
	}
	return &FsSource{fs: fs, dataFile: dataFile, hashFile: hashFile}
}

func NewFsSourceFromConfig(conf *structures.Config, fs afero.Fs) interfaces.SourceProviderInterface {
	return NewFsSource(fs, conf.Source.DataFile, conf.Source.HashFile)
}

func NewOsFs() afero.Fs {
	return afero.NewOsFs()
}

func (s *FsSource) DataFile() string {
	return s.dataFile
}

func (s *FsSource) HashFile() string {
	return s.hashFile
}

func (s *FsSource) Text() (string, error) {
	data, err := afero.ReadFile(s.fs, s.dataFile)
	if err != nil {
		return "", notFound(s.dataFile, err)
	}
	return string(data), nil
}

func (s *FsSource) HashToken() (string, error) {
	data, err := afero.ReadFile(s.fs, s.hashFile)
	if err != nil {
		return "", notFound(s.hashFile, err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrSourceNotFound, s.hashFile)
	}
	return token, nil
}

func notFound(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	return fmt.Errorf("failed to read %s: %w", path, err)
}
