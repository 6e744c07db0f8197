package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Southclaws/fault/ftag"
	"github.com/jsphweid/staffpad/model"
	"github.com/stretchr/testify/assert"
)

func TestSaveAndLoad(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "score.yaml")

	a := model.NewNote(model.Eighth, model.PitchAcc{Pitch: 0}, model.PitchAcc{Pitch: 4, Accidental: model.Flat})
	a.Beam, a.Tie = model.Begin, model.Begin
	b := model.NewNote(model.Eighth, model.PitchAcc{Pitch: 0}, model.PitchAcc{Pitch: 4, Accidental: model.Flat})
	b.Beam, b.Tie = model.End, model.End
	score := model.Score{ID: "s", Title: "etude", Staffs: []model.Staff{{
		ID:       "one",
		Clef:     model.Bass,
		Key:      -3,
		Elements: model.Sequence{a, b, model.NewRest(model.Half), model.NewBar(model.RepeatBar)},
	}}}

	assert.NoError(Store{Path: path}.Save(score))
	got, err := Load(path)
	assert.NoError(err)
	assert.Equal(score, got)

	raw, err := os.ReadFile(path)
	assert.NoError(err)
	assert.Contains(string(raw), "clef: bass")
	assert.Contains(string(raw), "accidental: flat")
	assert.Contains(string(raw), "bar: repeat")
}

func TestLoadMissing(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "nothing.yaml")

	_, err := Load(path)
	assert.Equal(ftag.NotFound, ftag.Get(err))

	score, err := LoadOrNew(path)
	assert.NoError(err)
	assert.Empty(score.Staffs)
}

func TestLoadGarbage(t *testing.T) {
	assert := assert.New(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	assert.NoError(os.WriteFile(path, []byte("staffs:\n  - clef: banjo\n"), 0o644))

	_, err := Load(path)
	assert.Equal(ftag.InvalidArgument, ftag.Get(err))
}
