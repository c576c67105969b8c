package aggregator

import (
	"encoding/json"

	deskerr "github.com/thinkscotty/newsdesk/internal/errors"
)

type StateKind int

const (
	StateIdle StateKind = iota
	StateLoading
	StateLoaded
	StateError
)

func (k StateKind) String() string {
	switch k {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	}
	return "idle"
}

// LoadState is the lifecycle of the current article set. Err is set only
// when Kind is StateError.
type LoadState struct {
	Kind StateKind
	Err  *deskerr.DeskError
}

func Loaded() LoadState { return LoadState{Kind: StateLoaded} }

func Failed(err *deskerr.DeskError) LoadState { return LoadState{Kind: StateError, Err: err} }

// Message is the user-facing error text, or "" outside the error state.
func (s LoadState) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Message
}

func (s LoadState) MarshalJSON() ([]byte, error) {
	out := struct {
		State   string            `json:"state"`
		Code    deskerr.ErrorCode `json:"code,omitempty"`
		Message string            `json:"message,omitempty"`
	}{State: s.Kind.String()}
	if s.Err != nil {
		out.Code = s.Err.Code
		out.Message = s.Err.Message
	}
	return json.Marshal(out)
}
