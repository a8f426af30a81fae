package models

import "time"

// StagedFile represents bytes written to the staging area for one file part.
type StagedFile struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	StagedAt time.Time `json:"stagedAt"`
}

// UploadedFile is the metadata echoed back for an accepted file part.
// Field names follow the shape multipart upload libraries commonly expose.
type UploadedFile struct {
	FieldName    string `json:"fieldname" msgpack:"fieldname"`
	OriginalName string `json:"originalname" msgpack:"originalname"`
	Encoding     string `json:"encoding" msgpack:"encoding"`
	MimeType     string `json:"mimetype" msgpack:"mimetype"`
	Destination  string `json:"destination" msgpack:"destination"`
	FileName     string `json:"filename" msgpack:"filename"`
	Path         string `json:"path" msgpack:"path"`
	Size         int64  `json:"size" msgpack:"size"`
}
