package common

import (
	"context"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

// StringValueFile reads the value from a file, such as a docker or kubernetes mounted secret. A single trailing
// newline is trimmed since secret files are commonly written with one.
type StringValueFile struct {
	Path string `json:"path" yaml:"path"`
}

func (kf *StringValueFile) resolvePath() (string, error) {
	if _, err := os.Stat(kf.Path); err == nil {
		return kf.Path, nil
	}

	// attempt home path expansion
	path, err := homedir.Expand(kf.Path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to expand path '%s'", kf.Path)
	}

	if _, err := os.Stat(path); err != nil {
		return "", errors.Errorf("file '%s' does not exist", kf.Path)
	}

	return path, nil
}

func (kf *StringValueFile) HasValue(ctx context.Context) bool {
	_, err := kf.resolvePath()
	return err == nil
}

func (kf *StringValueFile) GetValue(ctx context.Context) (string, error) {
	path, err := kf.resolvePath()
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read file '%s'", kf.Path)
	}

	val := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(val, "\r"), nil
}

func (kf *StringValueFile) Clone() StringValueType {
	if kf == nil {
		return nil
	}

	clone := *kf
	return &clone
}

func NewStringValueFile(path string) *StringValue {
	return &StringValue{&StringValueFile{Path: path}}
}

var _ StringValueType = (*StringValueFile)(nil)
