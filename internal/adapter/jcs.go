package adapter

import "github.com/gowebpki/jcs"

// JCS canonicalizes JSON per RFC 8785 so that equal audit events hash and
// dedupe to the same bytes
//
//go:generate mockgen -source=jcs.go -destination=../mocks/jcs.go -package=mocks -mock_names=JCS=MockJCS
type JCS interface {
	Transform(data []byte) ([]byte, error)
}

type realJCS struct{}

// NewJCS returns the gowebpki/jcs canonicalizer
func NewJCS() JCS {
	return realJCS{}
}

func (realJCS) Transform(data []byte) ([]byte, error) {
	return jcs.Transform(data)
}
