package server

// Generic Swagger response envelopes to match API shape.
type DataResponse struct {
	Data any `json:"data"`
}

type DataWithWarningsResponse struct {
	Data     any      `json:"data"`
	Warnings []string `json:"warnings"`
}
