package model

type AddStaffRequestBody struct {
	Name string `json:"name"`
	Clef Clef   `json:"clef"`
	Key  int    `json:"key"`
}

type InsertRequestBody struct {
	Pitches  []PitchAcc `json:"pitches"`
	Duration Duration   `json:"duration"`
}

type BarRequestBody struct {
	Bar BarType `json:"bar"`
}

type CaretRequestBody struct {
	Delta    int  `json:"delta"`
	Position *int `json:"position,omitempty"`
}

type ModesRequestBody struct {
	Beam *bool `json:"beam,omitempty"`
	Tie  *bool `json:"tie,omitempty"`
}

type EditResponse struct {
	Staff    Staff `json:"staff"`
	Caret    int   `json:"caret"`
	Inserted int   `json:"inserted"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}

type CaretResponse struct {
	Caret int `json:"caret"`
	// Step is the diatonic step under the pointer, set by hit-testing.
	Step *int `json:"step,omitempty"`
}

type ModesResponse struct {
	Beam bool `json:"beam"`
	Tie  bool `json:"tie"`
}

type HistoryResponse struct {
	Changed bool `json:"changed"`
}
