package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/mjc/minijava/ast"
)

type JSONEncoder struct {
	w   io.Writer
	pkg *ast.Package
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(pkg *ast.Package) error {
	e.pkg = pkg
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(text); err != nil {
		return err
	}
	_, err = io.WriteString(e.w, "\n")
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	return json.MarshalIndent(e.pkg, "", "  ")
}
