package chat

import "github.com/w-h-a/answerbot/retriever"

type Response struct {
	DataPoints      []retriever.Record `json:"dataPoints"`
	Answer          string             `json:"answer"`
	Thoughts        string             `json:"thoughts"`
	CitationBaseURL string             `json:"citationBaseUrl"`
}
