package web

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"renotrack/internal/domain"
)

type checklistRequest struct {
	Checked bool `json:"checked"`
}

type noteRequest struct {
	Content string `json:"content"`
}

func (r noteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Length(0, 65536)),
	)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (r statusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required, validation.Length(1, 64)),
	)
}

type successResponse struct {
	Success bool `json:"success"`
}

type photoDTO struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

type uploadedPhotoDTO struct {
	ID           int64  `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
}

type uploadResponse struct {
	Success bool             `json:"success"`
	Photo   uploadedPhotoDTO `json:"photo"`
}

type progressResponse struct {
	Checklist map[string]bool       `json:"checklist"`
	Notes     map[string]string     `json:"notes"`
	Statuses  map[string]string     `json:"statuses"`
	Photos    map[string][]photoDTO `json:"photos"`
}

func toPhotoDTO(p *domain.Photo) photoDTO {
	return photoDTO{
		ID:           p.ID,
		Filename:     p.Filename,
		OriginalName: p.OriginalName,
		UploadedAt:   p.UploadedAt,
	}
}

func toProgressResponse(snapshot *domain.ProgressSnapshot) progressResponse {
	photos := make(map[string][]photoDTO, len(snapshot.PhotosBySlot))
	for slotID, group := range snapshot.PhotosBySlot {
		dtos := make([]photoDTO, 0, len(group))
		for _, p := range group {
			dtos = append(dtos, toPhotoDTO(p))
		}
		photos[slotID] = dtos
	}
	return progressResponse{
		Checklist: snapshot.Checklist,
		Notes:     snapshot.Notes,
		Statuses:  snapshot.Statuses,
		Photos:    photos,
	}
}
