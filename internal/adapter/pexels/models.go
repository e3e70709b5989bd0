package pexels

// PexelsPhotoSrc набор ссылок на варианты изображения в ответе Pexels
type PexelsPhotoSrc struct {
	Original  string `json:"original"`
	Large2x   string `json:"large2x"`
	Large     string `json:"large"`
	Medium    string `json:"medium"`
	Small     string `json:"small"`
	Portrait  string `json:"portrait"`
	Landscape string `json:"landscape"`
	Tiny      string `json:"tiny"`
}

type PexelsPhotoResponse struct {
	ID              int64          `json:"id"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	URL             string         `json:"url"`
	Photographer    string         `json:"photographer"`
	PhotographerURL string         `json:"photographer_url"`
	PhotographerID  int64          `json:"photographer_id"`
	AvgColor        string         `json:"avg_color"`
	Src             PexelsPhotoSrc `json:"src"`
	Liked           bool           `json:"liked"`
	Alt             string         `json:"alt"`
}

// PexelsListResponse — общий формат ответа /search и /curated
type PexelsListResponse struct {
	Page         int                   `json:"page"`
	PerPage      int                   `json:"per_page"`
	TotalResults int                   `json:"total_results"`
	Photos       []PexelsPhotoResponse `json:"photos"`
	NextPage     string                `json:"next_page,omitempty"`
	PrevPage     string                `json:"prev_page,omitempty"`
}
