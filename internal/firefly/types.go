package firefly

import "campaign-gen/internal/ratio"

type generateRequest struct {
	Prompt          string     `json:"prompt"`
	NumVariations   int        `json:"numVariations"`
	VisualIntensity int        `json:"visualIntensity"`
	Size            ratio.Size `json:"size"`
	ContentClass    string     `json:"contentClass"`
	Style           *style     `json:"style,omitempty"`
}

type style struct {
	Presets        []string        `json:"presets,omitempty"`
	ImageReference *imageReference `json:"imageReference,omitempty"`
}

type imageReference struct {
	Source referenceSource `json:"source"`
}

type referenceSource struct {
	UploadID string `json:"uploadId"`
}

type generateResponse struct {
	Outputs []struct {
		Seed  int64 `json:"seed"`
		Image struct {
			URL string `json:"url"`
		} `json:"image"`
	} `json:"outputs"`
}

func (r generateResponse) firstURL() string {
	for _, out := range r.Outputs {
		if out.Image.URL != "" {
			return out.Image.URL
		}
	}
	return ""
}

type uploadResponse struct {
	Images []struct {
		ID string `json:"id"`
	} `json:"images"`
}
