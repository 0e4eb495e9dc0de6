package types

import (
	"encoding/json"
	"io"
	"io/ioutil"
)

// CompositeResponse ...
type CompositeResponse struct {
	User     CompositeUser     `json:"user"`
	Degraded []string          `json:"degraded"`
	Tasks    map[string]string `json:"tasks,omitempty"`
}

// Bytes ...
func (res CompositeResponse) Bytes() ([]byte, error) {
	body, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// NewCompositeResponse ...
func NewCompositeResponse(r io.Reader) (res CompositeResponse, err error) {
	body, err := ioutil.ReadAll(r)
	if err != nil {
		return
	}
	err = json.Unmarshal(body, &res)
	return
}

// ErrorResponse ...
type ErrorResponse struct {
	Error string `json:"error"`
}

// Bytes ...
func (res ErrorResponse) Bytes() ([]byte, error) {
	body, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return body, nil
}
