// Package file reads and writes scores as yaml documents.
package file

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/staffpad/model"
	"gopkg.in/yaml.v3"
)

func Load(path string) (model.Score, error) {
	var score model.Score
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return score, fault.Wrap(err, ftag.With(ftag.NotFound), fmsg.WithDesc("score file missing", "No score at "+path))
	}
	if err != nil {
		return score, fault.Wrap(err, fmsg.With("reading score file"))
	}
	if err := yaml.Unmarshal(data, &score); err != nil {
		return score, fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.WithDesc("decoding score file", path+" is not a valid score"))
	}
	return score, nil
}

// LoadOrNew is Load, but a missing file gives an empty score.
func LoadOrNew(path string) (model.Score, error) {
	score, err := Load(path)
	if ftag.Get(err) == ftag.NotFound {
		return model.Score{}, nil
	}
	return score, err
}

// Save writes score next to path first and renames it into place, so a
// crash never leaves a truncated file behind.
func Save(path string, score model.Score) error {
	data, err := yaml.Marshal(score)
	if err != nil {
		return fault.Wrap(err, fmsg.With("encoding score"))
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".score-*.yaml")
	if err != nil {
		return fault.Wrap(err, fmsg.With("creating temporary score file"))
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fault.Wrap(err, fmsg.With("writing score file"))
	}
	if err := tmp.Close(); err != nil {
		return fault.Wrap(err, fmsg.With("writing score file"))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fault.Wrap(err, fmsg.With("replacing score file"))
	}
	return nil
}

// Store persists a session's score to a single file.
type Store struct {
	Path string
}

func (s Store) Save(score model.Score) error { return Save(s.Path, score) }
