package documents

import "time"

// Document es un archivo del cliente (análisis, radiografías, facturas en PDF).
// El contenido vive en el object store bajo ObjectKey.
type Document struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"client_id"`
	AnimalID    *string   `json:"animal_id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	ObjectKey   string    `json:"object_key"`
	CreatedAt   time.Time `json:"created_at"`
}

type UploadInput struct {
	ClientID    string
	AnimalID    *string
	Name        string
	ContentType string
	Size        int64
}
