package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/gorilla/mux"
	"github.com/jsphweid/staffpad/constants"
	"github.com/jsphweid/staffpad/hittest"
	"github.com/jsphweid/staffpad/layout"
	"github.com/jsphweid/staffpad/lily"
	"github.com/jsphweid/staffpad/model"
	"github.com/jsphweid/staffpad/sample"
	"github.com/jsphweid/staffpad/session"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var port string

func init() {
	serveCmd.Flags().StringVar(&port, "port", constants.GetPort(), "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the editing API",
	Long:  `Serves the editing API over HTTP. Edits are saved shortly after they happen.`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

type LayoutResponse struct {
	Nodes    []layout.Tagged      `json:"nodes"`
	Carets   []hittest.CaretRect  `json:"carets"`
	Elements []hittest.ElementBox `json:"elements"`
}

type handler struct {
	s *session.Session
}

func badRequest(err error, desc string) error {
	return fault.Wrap(err, ftag.With(ftag.InvalidArgument), fmsg.WithDesc("decoding request", desc))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("could not encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch ftag.Get(err) {
	case ftag.NotFound:
		status = http.StatusNotFound
	case ftag.InvalidArgument:
		status = http.StatusBadRequest
	}
	detail := fmsg.GetIssue(err)
	if detail == "" {
		detail = http.StatusText(status)
	}
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	writeJSON(w, status, model.ErrorResponse{Error: detail})
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return badRequest(err, "The request body is not valid JSON for this endpoint.")
	}
	return nil
}

func (h handler) handleScore(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.s.Score())
}

func (h handler) handleAddStaff(w http.ResponseWriter, r *http.Request) {
	var input model.AddStaffRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.s.AddStaff(input.Name, input.Clef, input.Key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h handler) handleStaff(w http.ResponseWriter, r *http.Request) {
	res, err := h.s.Staff(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h handler) edit(w http.ResponseWriter, r *http.Request, res model.EditResponse, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h handler) handleInsertNote(w http.ResponseWriter, r *http.Request) {
	var input model.InsertRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.s.Insert(mux.Vars(r)["id"], input.Pitches, input.Duration)
	h.edit(w, r, res, err)
}

func (h handler) handleInsertRest(w http.ResponseWriter, r *http.Request) {
	var input model.InsertRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.s.InsertRest(mux.Vars(r)["id"], input.Duration)
	h.edit(w, r, res, err)
}

func (h handler) handleInsertBar(w http.ResponseWriter, r *http.Request) {
	var input model.BarRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	res, err := h.s.InsertBar(mux.Vars(r)["id"], input.Bar)
	h.edit(w, r, res, err)
}

func (h handler) handleBackspace(w http.ResponseWriter, r *http.Request) {
	res, err := h.s.Backspace(mux.Vars(r)["id"])
	h.edit(w, r, res, err)
}

func (h handler) handleCaret(w http.ResponseWriter, r *http.Request) {
	var input model.CaretRequestBody
	if err := decode(r, &input); err != nil {
		writeError(w, r, err)
		return
	}
	id := mux.Vars(r)["id"]
	var pos int
	var err error
	if input.Position != nil {
		pos, err = h.s.SetCaret(id, *input.Position)
	} else {
		pos, err = h.s.MoveCaret(id, input.Delta)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CaretResponse{Caret: pos})
}

func (h handler) handleModes(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPut {
		var input model.ModesRequestBody
		if err := decode(r, &input); err != nil {
			writeError(w, r, err)
			return
		}
		if input.Beam != nil {
			h.s.SetBeamMode(*input.Beam)
		}
		if input.Tie != nil {
			h.s.SetTieMode(*input.Tie)
		}
	}
	beamOn, tieOn := h.s.Modes()
	writeJSON(w, http.StatusOK, model.ModesResponse{Beam: beamOn, Tie: tieOn})
}

func (h handler) handleUndo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HistoryResponse{Changed: h.s.Undo()})
}

func (h handler) handleRedo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HistoryResponse{Changed: h.s.Redo()})
}

func queryInt(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, badRequest(err, fmt.Sprintf("Query parameter %s must be an integer.", name))
	}
	return &v, nil
}

func (h handler) handleLayout(w http.ResponseWriter, r *http.Request) {
	hint, err := queryInt(r, "hint")
	if err != nil {
		writeError(w, r, err)
		return
	}
	nodes, err := h.s.Layout(mux.Vars(r)["id"], hint)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LayoutResponse{
		Nodes:    layout.Tag(nodes),
		Carets:   hittest.CaretRects(nodes),
		Elements: hittest.ElementBoxes(nodes),
	})
}

func (h handler) handleCaretAt(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeError(w, r, badRequest(fault.New("bad point"), "Query parameters x and y must be numbers."))
		return
	}
	nodes, err := h.s.Layout(mux.Vars(r)["id"], nil)
	if err != nil {
		writeError(w, r, err)
		return
	}
	pos, ok := hittest.CaretAt(nodes, model.Point{X: x, Y: y})
	if !ok {
		writeError(w, r, fault.Wrap(fault.New("no caret at point"),
			ftag.With(ftag.NotFound), fmsg.WithDesc("miss", "There is no caret at that point.")))
		return
	}
	step, err := h.s.StepAt(mux.Vars(r)["id"], y)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CaretResponse{Caret: pos, Step: &step})
}

func (h handler) handlePreview(w http.ResponseWriter, r *http.Request) {
	seq, err := h.s.Preview(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "audio/midi")
	if _, err := sample.Create(seq, constants.PreviewBPM).WriteTo(w); err != nil {
		log.Printf("could not write preview: %v", err)
	}
}

func (h handler) handleLily(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/x-lilypond; charset=utf-8")
	if err := lily.Write(w, h.s.Score()); err != nil {
		log.Printf("could not write lilypond: %v", err)
	}
}

// NewRouter exposes s over HTTP, with CORS open to browser input layers.
func NewRouter(s *session.Session) http.Handler {
	h := handler{s: s}
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/score", h.handleScore).Methods("GET")
	router.HandleFunc("/score.ly", h.handleLily).Methods("GET")
	router.HandleFunc("/staffs", h.handleAddStaff).Methods("POST")
	router.HandleFunc("/staffs/{id}", h.handleStaff).Methods("GET")
	router.HandleFunc("/staffs/{id}/notes", h.handleInsertNote).Methods("POST")
	router.HandleFunc("/staffs/{id}/rests", h.handleInsertRest).Methods("POST")
	router.HandleFunc("/staffs/{id}/bars", h.handleInsertBar).Methods("POST")
	router.HandleFunc("/staffs/{id}/backspace", h.handleBackspace).Methods("POST")
	router.HandleFunc("/staffs/{id}/caret", h.handleCaret).Methods("POST")
	router.HandleFunc("/staffs/{id}/layout", h.handleLayout).Methods("GET")
	router.HandleFunc("/staffs/{id}/caret-at", h.handleCaretAt).Methods("GET")
	router.HandleFunc("/staffs/{id}/preview.mid", h.handlePreview).Methods("GET")
	router.HandleFunc("/modes", h.handleModes).Methods("GET", "PUT")
	router.HandleFunc("/undo", h.handleUndo).Methods("POST")
	router.HandleFunc("/redo", h.handleRedo).Methods("POST")

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
	})
	return c.Handler(router)
}

func serve() {
	score, p := mustOpenScore()
	s := session.New(score, p)
	fmt.Printf("Serving score %s with %d staffs on :%s\n", s.ScoreID(), len(score.Staffs), port)
	log.Fatal(http.ListenAndServe(":"+port, NewRouter(s)))
}
