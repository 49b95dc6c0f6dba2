package media

import "time"

// Object es la metadata de un archivo subido (foto de mascota, resultado de
// laboratorio, etc). Los documentos referencian media por su id.
type Object struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`

	UploadedBy string    `json:"uploadedBy"`
	UploadedAt time.Time `json:"uploadedAt"`
}
