package dto

type AnalyzedProduct struct {
	Category  string `json:"category"`
	Name      string `json:"name"`
	ImageName string `json:"imageName"`
}

type AnalyzeResponse struct {
	SessionId string            `json:"session_id"`
	Message   string            `json:"message"`
	Count     int               `json:"count"`
	Results   []AnalyzedProduct `json:"results"`
}

type AnalysisResultsResponse struct {
	SessionId string            `json:"session_id"`
	Count     int               `json:"count"`
	Results   []AnalyzedProduct `json:"results"`
}
