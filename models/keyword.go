package models

// KeywordName carries the bilingual names of one keyword.
type KeywordName struct {
	En string `json:"en"`
	Fr string `json:"fr"`
}

// Keyword is the only entity crossing the service boundary besides
// request payloads.
type Keyword struct {
	ID   string      `json:"id"`
	Name KeywordName `json:"name"`
}

// ExtractionRequest is the /extract-keyword body. JobContent is a pointer
// so a present-but-empty string passes validation while a missing field
// fails it.
type ExtractionRequest struct {
	JobContent *string `json:"jobContent" binding:"required"`
}

// ExtractionResponse is the /extract-keyword response body.
type ExtractionResponse struct {
	Keywords []Keyword `json:"keywords"`
}
