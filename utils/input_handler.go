package utils

import (
	"errors"

	"github.com/htkhoa/k12-curriculum-backend/services"
)

// GetInputTypeFromExt maps a file extension to its InputType.
func GetInputTypeFromExt(ext string) (services.InputType, error) {
	switch ext {
	case ".pdf":
		return services.InputPDF, nil
	case ".docx":
		return services.InputDOCX, nil
	case ".txt":
		return services.InputTXT, nil
	default:
		return "", errors.New("unsupported file format")
	}
}
