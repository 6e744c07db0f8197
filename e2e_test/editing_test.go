//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsphweid/staffpad/cmd"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/session"
	"github.com/stretchr/testify/assert"
)

type client struct {
	t      *testing.T
	router http.Handler
}

func newClient(t *testing.T) client {
	return client{t: t, router: cmd.NewRouter(session.New(model.Score{}, nil))}
}

func (c client) do(method, path, body string) *http.Response {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w.Result()
}

func (c client) json(method, path, body string, status int, v any) {
	resp := c.do(method, path, body)
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(c.t, status, resp.StatusCode, string(data))
	if v != nil {
		if err := json.Unmarshal(data, v); err != nil {
			panic(err.Error())
		}
	}
}

func (c client) addStaff() string {
	var st model.Staff
	c.json(http.MethodPost, "/staffs", `{"name":"piano","clef":"treble","key":0}`, http.StatusCreated, &st)
	return st.ID
}

func TestInsertNotesE2E(t *testing.T) {
	assert := assert.New(t)
	c := newClient(t)
	id := c.addStaff()

	var res model.EditResponse
	c.json(http.MethodPost, "/staffs/"+id+"/notes", `{"pitches":[{"pitch":0},{"pitch":4}],"duration":4}`, http.StatusOK, &res)
	assert.Equal(2, res.Caret)
	assert.Equal(0, res.Inserted)
	assert.Equal(model.Sequence{model.NewNote(model.Quarter, model.PitchAcc{Pitch: 0}, model.PitchAcc{Pitch: 4})}, res.Staff.Elements)

	c.json(http.MethodPost, "/staffs/"+id+"/bars", `{"bar":"double"}`, http.StatusOK, &res)
	assert.Equal(4, res.Caret)
	assert.Equal(model.DoubleBar, res.Staff.Elements[1].Bar)

	var pos model.CaretResponse
	c.json(http.MethodPost, "/staffs/"+id+"/caret", `{"delta":-3}`, http.StatusOK, &pos)
	assert.Equal(1, pos.Caret)
	c.json(http.MethodPost, "/staffs/"+id+"/rests", `{"duration":2}`, http.StatusOK, &res)
	assert.Equal(model.RestKind, res.Staff.Elements[0].Kind)
	assert.Len(res.Staff.Elements, 2)
}

func TestBeamModeE2E(t *testing.T) {
	assert := assert.New(t)
	c := newClient(t)
	id := c.addStaff()

	var modes model.ModesResponse
	c.json(http.MethodPut, "/modes", `{"beam":true}`, http.StatusOK, &modes)
	assert.Equal(model.ModesResponse{Beam: true}, modes)

	var res model.EditResponse
	for i := 0; i < 3; i++ {
		c.json(http.MethodPost, "/staffs/"+id+"/notes", `{"pitches":[{"pitch":2}],"duration":8}`, http.StatusOK, &res)
	}
	c.json(http.MethodPost, "/staffs/"+id+"/rests", `{"duration":4}`, http.StatusOK, &res)

	var flags []model.BeamFlag
	for _, e := range res.Staff.Elements {
		flags = append(flags, e.Beam)
	}
	assert.Equal([]model.BeamFlag{model.Begin, model.Continue, model.End, model.None}, flags)
}

type taggedNode struct {
	Kind string          `json:"kind"`
	Node json.RawMessage `json:"node"`
}

type layoutResponse struct {
	Nodes    []taggedNode      `json:"nodes"`
	Carets   []json.RawMessage `json:"carets"`
	Elements []json.RawMessage `json:"elements"`
}

func TestTieAndLayoutE2E(t *testing.T) {
	assert := assert.New(t)
	c := newClient(t)
	id := c.addStaff()

	c.json(http.MethodPut, "/modes", `{"tie":true}`, http.StatusOK, nil)
	var res model.EditResponse
	c.json(http.MethodPost, "/staffs/"+id+"/notes", `{"pitches":[{"pitch":0}],"duration":2}`, http.StatusOK, &res)
	c.json(http.MethodPost, "/staffs/"+id+"/notes", `{"pitches":[{"pitch":0}],"duration":4}`, http.StatusOK, &res)
	assert.Equal(model.Begin, res.Staff.Elements[0].Tie)
	assert.Equal(model.End, res.Staff.Elements[1].Tie)

	var lay layoutResponse
	c.json(http.MethodGet, "/staffs/"+id+"/layout", "", http.StatusOK, &lay)
	kinds := map[string]int{}
	for _, n := range lay.Nodes {
		kinds[n.Kind]++
	}
	assert.Equal(1, kinds["staff"])
	assert.Equal(1, kinds["clef"])
	assert.Equal(2, kinds["note"])
	assert.Equal(1, kinds["tie"])
	assert.Len(lay.Carets, 5)
	assert.Len(lay.Elements, 2)

	var pos model.CaretResponse
	c.json(http.MethodGet, "/staffs/"+id+"/caret-at?x=-1000&y=40", "", http.StatusOK, &pos)
	assert.Equal(0, pos.Caret)
	if assert.NotNil(pos.Step) {
		assert.Equal(10, *pos.Step)
	}
	c.json(http.MethodGet, "/staffs/"+id+"/caret-at?x=0&y=5000", "", http.StatusNotFound, nil)
}

func TestErrorsE2E(t *testing.T) {
	assert := assert.New(t)
	c := newClient(t)
	id := c.addStaff()

	var e model.ErrorResponse
	c.json(http.MethodPost, "/staffs/nope/notes", `{"pitches":[{"pitch":0}],"duration":4}`, http.StatusNotFound, &e)
	assert.Contains(e.Error, "nope")

	c.json(http.MethodPost, "/staffs/"+id+"/notes", `{"pitches":[],"duration":4}`, http.StatusBadRequest, &e)
	assert.NotEmpty(e.Error)
	c.json(http.MethodPost, "/staffs/"+id+"/notes", `{"pitches":[{"pitch":0}],"duration":3}`, http.StatusBadRequest, &e)
	c.json(http.MethodPost, "/staffs/"+id+"/bars", `{"bar":"banjo"}`, http.StatusBadRequest, &e)
	c.json(http.MethodPost, "/staffs", `not json`, http.StatusBadRequest, &e)
	c.json(http.MethodGet, "/staffs/"+id+"/layout?hint=x", "", http.StatusBadRequest, &e)

	var res model.EditResponse
	c.json(http.MethodGet, "/staffs/"+id, "", http.StatusOK, &res)
	assert.Empty(res.Staff.Elements)
}

func TestUndoE2E(t *testing.T) {
	assert := assert.New(t)
	c := newClient(t)
	id := c.addStaff()
	c.json(http.MethodPost, "/staffs/"+id+"/notes", `{"pitches":[{"pitch":0}],"duration":4}`, http.StatusOK, nil)

	var h model.HistoryResponse
	c.json(http.MethodPost, "/undo", "", http.StatusOK, &h)
	assert.True(h.Changed)
	var res model.EditResponse
	c.json(http.MethodGet, "/staffs/"+id, "", http.StatusOK, &res)
	assert.Empty(res.Staff.Elements)

	c.json(http.MethodPost, "/redo", "", http.StatusOK, &h)
	assert.True(h.Changed)
	c.json(http.MethodPost, "/redo", "", http.StatusOK, &h)
	assert.False(h.Changed)
	c.json(http.MethodGet, "/staffs/"+id, "", http.StatusOK, &res)
	assert.Len(res.Staff.Elements, 1)
}

func TestExportsE2E(t *testing.T) {
	assert := assert.New(t)
	c := newClient(t)
	id := c.addStaff()
	c.json(http.MethodPost, "/staffs/"+id+"/notes", `{"pitches":[{"pitch":0}],"duration":4}`, http.StatusOK, nil)

	resp := c.do(http.MethodGet, "/staffs/"+id+"/preview.mid", "")
	assert.Equal(http.StatusOK, resp.StatusCode)
	data, _ := io.ReadAll(resp.Body)
	assert.True(bytes.HasPrefix(data, []byte("MThd")))

	resp = c.do(http.MethodGet, "/score.ly", "")
	assert.Equal(http.StatusOK, resp.StatusCode)
	data, _ = io.ReadAll(resp.Body)
	assert.Contains(string(data), "c'4")

	var score model.Score
	c.json(http.MethodGet, "/score", "", http.StatusOK, &score)
	assert.Len(score.Staffs, 1)
}
