package api

// Source is a paper the backend cites alongside a chat answer.
type Source struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	URL     string   `json:"url"`
	Year    string   `json:"year,omitempty"`
}

// Paper is one row of a search result.
type Paper struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Abstract  string   `json:"abstract"`
	Published string   `json:"published"`
}

// AbsURL links to the paper's arXiv abstract page.
func (p Paper) AbsURL() string {
	if p.ID == "" {
		return ""
	}
	return "https://arxiv.org/abs/" + p.ID
}

type ChatRequest struct {
	Query string `json:"query" validate:"required"`
}

type ChatResponse struct {
	Response string   `json:"response"`
	Image    string   `json:"image,omitempty"`
	Sources  []Source `json:"sources,omitempty"`
}

type SearchRequest struct {
	Query      string `json:"query" validate:"required"`
	MaxResults int    `json:"max_results" validate:"gte=1,lte=100"`
}

type VisualizeRequest struct {
	Concept string `json:"concept" validate:"required"`
}

type VisualizeResponse struct {
	Image   string `json:"image"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body of GET /.
type HealthResponse struct {
	Message string `json:"message"`
}

// ErrorBody covers both the FastAPI {"detail": ...} shape and a plain
// {"error": ...} body.
type ErrorBody struct {
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}
