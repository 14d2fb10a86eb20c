package adapter

import (
	"encoding/json"
)

// JSON wraps encoding/json for the permission cache and the audit relay
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type realJSON struct{}

// NewJSON returns the encoding/json implementation
func NewJSON() JSON {
	return realJSON{}
}

func (realJSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (realJSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
