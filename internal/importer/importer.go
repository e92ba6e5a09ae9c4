package importer

import (
	"io"

	"chequetrack/internal/cheque"
)

// Format identifies the layout of an uploaded cheque-register file.
type Format string

const (
	FormatRegister Format = "register"
)

type Importer interface {
	Parse(r io.Reader) ([]cheque.CreateParams, error)
}
