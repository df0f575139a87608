package image

// Reference 一张候选配图，归属于某个 Post，可整体替换
type Reference struct {
	URL             string `json:"url"`
	DownloadURL     string `json:"downloadUrl,omitempty"`
	Photographer    string `json:"photographer,omitempty"`
	PhotographerURL string `json:"photographerUrl,omitempty"`
	Description     string `json:"description,omitempty"`
	ObjectName      string `json:"objectName,omitempty"`
}
