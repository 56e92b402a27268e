package domain

import "time"

// Image is an uploaded asset record.
type Image struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// UploadImageResult is the payload returned by /images/upload.
type UploadImageResult struct {
	ImageID string `json:"imageId"`
}
