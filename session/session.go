// Package session holds the editable score together with the per-staff
// carets, the input modes and the undo history. It is the single writer the
// editing core expects: every intent runs under one lock.
package session

import (
	"fmt"
	"log"
	"sync"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/staffpad/caret"
	"github.com/jsphweid/staffpad/constants"
	"github.com/jsphweid/staffpad/edit"
	"github.com/jsphweid/staffpad/layout"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/pitch"
	"github.com/jsphweid/staffpad/tie"
)

// Persister stores a whole score. Save may be called from a timer goroutine.
type Persister interface {
	Save(score model.Score) error
}

type state struct {
	score  model.Score
	carets map[string]int
}

func (st state) copy() state {
	carets := make(map[string]int, len(st.carets))
	for k, v := range st.carets {
		carets[k] = v
	}
	return state{score: st.score.Copy(), carets: carets}
}

type Session struct {
	mu sync.Mutex
	state
	beam edit.BeamMode
	tie  edit.TieMode
	// last is the index of the element most recently inserted per staff.
	last map[string]int

	undoStack []state
	redoStack []state

	persister Persister
	debounced func(f func())
}

// New starts a session on score. A nil persister keeps everything in memory.
func New(score model.Score, p Persister) *Session {
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	s := &Session{
		state:     state{score: score.Copy(), carets: map[string]int{}},
		last:      map[string]int{},
		persister: p,
		debounced: debounce.New(constants.SaveDelay),
	}
	for _, st := range s.score.Staffs {
		s.carets[st.ID] = 2 * len(st.Elements)
	}
	return s
}

func notFound(id string) error {
	return fault.Wrap(fault.New("staff not found"),
		ftag.With(ftag.NotFound),
		fmsg.WithDesc("unknown staff "+id, fmt.Sprintf("There is no staff with id %s.", id)))
}

func invalid(msg, desc string) error {
	return fault.Wrap(fault.New(msg),
		ftag.With(ftag.InvalidArgument),
		fmsg.WithDesc(msg, desc))
}

func (s *Session) staff(id string) (*model.Staff, error) {
	i := s.score.StaffIndex(id)
	if i < 0 {
		return nil, notFound(id)
	}
	return &s.score.Staffs[i], nil
}

func (s *Session) saveUndo() {
	if len(s.undoStack) >= constants.MaxUndo {
		s.undoStack = s.undoStack[1:]
	}
	s.undoStack = append(s.undoStack, s.state.copy())
	s.redoStack = s.redoStack[:0]
}

func (s *Session) changed() {
	if s.persister == nil {
		return
	}
	s.debounced(func() {
		if err := s.Flush(); err != nil {
			log.Printf("could not save score %s: %v", s.ScoreID(), err)
		}
	})
}

// Flush writes the current score through the persister right away.
func (s *Session) Flush() error {
	if s.persister == nil {
		return nil
	}
	score := s.Score()
	if err := s.persister.Save(score); err != nil {
		return fault.Wrap(err, fmsg.With("saving score"))
	}
	return nil
}

func (s *Session) response(st *model.Staff, inserted int) model.EditResponse {
	return model.EditResponse{Staff: st.Copy(), Caret: s.carets[st.ID], Inserted: inserted}
}

func (s *Session) Score() model.Score {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score.Copy()
}

func (s *Session) ScoreID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score.ID
}

func (s *Session) Staff(id string) (model.EditResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staff(id)
	if err != nil {
		return model.EditResponse{}, err
	}
	return s.response(st, -1), nil
}

func (s *Session) AddStaff(name string, clef model.Clef, key int) (model.Staff, error) {
	if !clef.Valid() {
		return model.Staff{}, invalid("invalid clef", "Clef must be treble, bass, alto or tenor.")
	}
	if key < -7 || key > 7 {
		return model.Staff{}, invalid("invalid key", "Key signatures have between 7 flats and 7 sharps.")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveUndo()
	st := model.Staff{ID: uuid.NewString(), Name: name, Clef: clef, Key: key}
	s.score.Staffs = append(s.score.Staffs, st)
	s.carets[st.ID] = 0
	s.changed()
	return st.Copy(), nil
}

func (s *Session) apply(id string, compose func(pos int, seq model.Sequence) (model.Sequence, model.Element)) (model.EditResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staff(id)
	if err != nil {
		return model.EditResponse{}, err
	}
	s.saveUndo()
	pos := s.carets[id]
	seq, el := compose(pos, st.Elements)
	res := edit.Apply(pos, seq, el, s.beam)
	st.Elements = res.Sequence
	s.carets[id] = res.Caret(pos)
	s.last[id] = res.Index
	s.changed()
	return s.response(st, res.Index), nil
}

// Insert composes a note from pitches and puts it at the staff's caret,
// tying it to its predecessor when tie mode is on.
func (s *Session) Insert(id string, pitches []model.PitchAcc, d model.Duration) (model.EditResponse, error) {
	if len(pitches) == 0 {
		return model.EditResponse{}, invalid("empty pitch set", "A note needs at least one pitch.")
	}
	for _, p := range pitches {
		if int(p.Accidental) > int(model.DoubleSharp) {
			return model.EditResponse{}, invalid("invalid accidental", fmt.Sprintf("Accidental %d is not known.", p.Accidental))
		}
	}
	if !d.Valid() {
		return model.EditResponse{}, invalid("invalid duration", fmt.Sprintf("Duration %d is not one of 1, 2, 4, 8, 16 or 32.", d))
	}
	return s.apply(id, func(pos int, seq model.Sequence) (model.Sequence, model.Element) {
		return edit.Compose(pos, seq, pitches, d, s.tie)
	})
}

func (s *Session) InsertRest(id string, d model.Duration) (model.EditResponse, error) {
	if !d.Valid() {
		return model.EditResponse{}, invalid("invalid duration", fmt.Sprintf("Duration %d is not one of 1, 2, 4, 8, 16 or 32.", d))
	}
	return s.apply(id, func(_ int, seq model.Sequence) (model.Sequence, model.Element) {
		return seq, model.NewRest(d)
	})
}

func (s *Session) InsertBar(id string, bar model.BarType) (model.EditResponse, error) {
	if !bar.Valid() {
		return model.EditResponse{}, invalid("invalid bar", "Bar must be single, double, final or repeat.")
	}
	return s.apply(id, func(_ int, seq model.Sequence) (model.Sequence, model.Element) {
		return seq, model.NewBar(bar)
	})
}

func (s *Session) Backspace(id string) (model.EditResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staff(id)
	if err != nil {
		return model.EditResponse{}, err
	}
	pos := s.carets[id]
	if len(st.Elements) == 0 || pos == 0 {
		return s.response(st, -1), nil
	}
	s.saveUndo()
	st.Elements, s.carets[id] = edit.Backspace(pos, st.Elements)
	delete(s.last, id)
	s.changed()
	return s.response(st, -1), nil
}

// MoveCaret moves the caret by delta, stopping at either end of the staff.
func (s *Session) MoveCaret(id string, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staff(id)
	if err != nil {
		return 0, err
	}
	s.carets[id] = caret.Move(s.carets[id], delta, len(st.Elements))
	return s.carets[id], nil
}

func (s *Session) SetCaret(id string, pos int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staff(id)
	if err != nil {
		return 0, err
	}
	s.carets[id] = caret.Clamp(pos, len(st.Elements))
	return s.carets[id], nil
}

func (s *Session) SetBeamMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beam = edit.NoBeam
	if on {
		s.beam = edit.Beam
	}
}

func (s *Session) SetTieMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tie = edit.NoTie
	if on {
		s.tie = edit.Tie
	}
}

func (s *Session) Modes() (beamOn, tieOn bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beam == edit.Beam, s.tie == edit.Tie
}

func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undoStack) == 0 {
		return false
	}
	if len(s.redoStack) >= constants.MaxUndo {
		s.redoStack = s.redoStack[1:]
	}
	s.redoStack = append(s.redoStack, s.state.copy())
	s.state = s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.last = map[string]int{}
	s.changed()
	return true
}

func (s *Session) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redoStack) == 0 {
		return false
	}
	if len(s.undoStack) >= constants.MaxUndo {
		s.undoStack = s.undoStack[1:]
	}
	s.undoStack = append(s.undoStack, s.state.copy())
	s.state = s.redoStack[len(s.redoStack)-1]
	s.redoStack = s.redoStack[:len(s.redoStack)-1]
	s.last = map[string]int{}
	s.changed()
	return true
}

// staffTop is the y of the top line of the i-th staff.
func staffTop(i int) float64 {
	return float64((4 + 12*i) * constants.StaffSpace)
}

// Layout lays out one staff with its ties. Staffs are stacked top to bottom
// in score order. hint is the caret of a live insertion preview, if any.
func (s *Session) Layout(id string, hint *int) ([]layout.Node, error) {
	s.mu.Lock()
	i := s.score.StaffIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, notFound(id)
	}
	st := s.score.Staffs[i].Copy()
	s.mu.Unlock()

	nodes := layout.Layout(st.Elements, layout.Staff{
		Clef:   st.Clef,
		Key:    st.Key,
		Origin: model.Point{X: 0, Y: staffTop(i)},
		Space:  constants.StaffSpace,
	}, layout.Options{GapUnit: constants.GapUnit, Hint: hint})
	return tie.InsertTies(nodes), nil
}

// StepAt maps a pointer y on the staff to a diatonic step.
func (s *Session) StepAt(id string, y float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.score.StaffIndex(id)
	if i < 0 {
		return 0, notFound(id)
	}
	return pitch.StepAt(y, s.score.Staffs[i].Clef, staffTop(i), constants.StaffSpace), nil
}

// Preview returns the element inserted last on the staff for playback, or
// an empty sequence when the last intent was not an insertion.
func (s *Session) Preview(id string) (model.Sequence, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.staff(id)
	if err != nil {
		return nil, err
	}
	i, ok := s.last[id]
	if !ok || i >= len(st.Elements) {
		return model.Sequence{}, nil
	}
	return st.Elements[i : i+1].Copy(), nil
}
