package importer

import (
	"fmt"
	"io"

	"chequetrack/internal/cheque"
	"chequetrack/internal/importer/register"
)

type Service struct {
	registerImporter Importer
}

func NewService() *Service {
	return &Service{
		registerImporter: register.New(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]cheque.CreateParams, error) {
	var imp Importer

	switch format {
	case FormatRegister:
		imp = s.registerImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return imp.Parse(r)
}
