package types

type TaggedToken struct {
	Text     string   `json:"text"`
	Tag      string   `json:"tag"`
	Baseline string   `json:"baseline,omitempty"`
	Prob     *float64 `json:"prob,omitempty"`
}

type SentenceSection struct {
	Id     int           `json:"id"`
	Tokens []TaggedToken `json:"tokens"`
	Score  *float64      `json:"score,omitempty"`
}

type TaggingResponse struct {
	DocId     string            `json:"docId"`
	Method    string            `json:"method"`
	Sentences []SentenceSection `json:"sentences"`
}

type ErrorSection struct {
	Config  string `json:"config"`
	Message string `json:"message"`
}
