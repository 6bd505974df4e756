package models

import "github.com/phambaophuc/visa-photo/internal/services/compositor"

// ExportParams carries the crop rectangle (display pixels) and slider values
// chosen in the editor. Scale defaults to 1 when omitted.
type ExportParams struct {
	CropX         float64  `form:"crop_x" json:"crop_x" binding:"gte=0"`
	CropY         float64  `form:"crop_y" json:"crop_y" binding:"gte=0"`
	CropWidth     float64  `form:"crop_width" json:"crop_width" binding:"gt=0"`
	CropHeight    float64  `form:"crop_height" json:"crop_height" binding:"gt=0"`
	Scale         *float64 `form:"scale" json:"scale,omitempty"`
	Rotate        float64  `form:"rotate" json:"rotate"`
	DisplayWidth  float64  `form:"display_width" json:"display_width" binding:"gte=0"`
	DisplayHeight float64  `form:"display_height" json:"display_height" binding:"gte=0"`
}

func (p ExportParams) Crop() compositor.CropRegion {
	return compositor.CropRegion{X: p.CropX, Y: p.CropY, Width: p.CropWidth, Height: p.CropHeight}
}

func (p ExportParams) Transform() compositor.Transform {
	t := compositor.IdentityTransform()
	if p.Scale != nil {
		t.Scale = *p.Scale
	}
	t.RotateDegrees = p.Rotate
	return t
}

type ExportResponse struct {
	Filename    string `json:"filename"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	FileSize    int    `json:"file_size"`
	DataURL     string `json:"data_url"`
	Watermarked bool   `json:"watermarked"`
}

type BatchResponse struct {
	Count  int              `json:"count"`
	Photos []ExportResponse `json:"photos"`
}

type SuggestCropParams struct {
	DisplayWidth  float64 `form:"display_width" binding:"gte=0"`
	DisplayHeight float64 `form:"display_height" binding:"gte=0"`
	Mode          string  `form:"mode"`
}

type CropSuggestion struct {
	Mode   string                `json:"mode"`
	Crop   compositor.CropRegion `json:"crop"`
	Aspect float64               `json:"aspect"`
	Cached bool                  `json:"cached"`
}
