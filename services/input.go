package services

import (
	"errors"
	"mime/multipart"
)

type InputType string

const (
	InputText InputType = "text"
	InputTXT  InputType = "txt"
	InputDOCX InputType = "docx"
	InputPDF  InputType = "pdf"
)

// InputSource is one curriculum upload: either an attached file or raw
// pasted text.
type InputSource struct {
	Type       InputType
	FileHeader *multipart.FileHeader
	Text       string
}

// NormalizeInput turns any supported source into a plain text blob for the
// curriculum text miner.
func NormalizeInput(input InputSource) (string, error) {
	switch input.Type {
	case InputText:
		return input.Text, nil

	case InputTXT:
		return ExtractTextFromTXT(input.FileHeader)

	case InputPDF:
		f, err := input.FileHeader.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		return ExtractTextFromPDF(f)

	case InputDOCX:
		return ExtractTextFromDOCX(input.FileHeader)

	default:
		return "", errors.New("unsupported input type")
	}
}
