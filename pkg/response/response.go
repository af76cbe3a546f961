package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bootcamp-directory/pkg/query"
)

// APIResponse is the success envelope. Status mirrors Success for clients
// that read either flag.
type APIResponse struct {
	Success    bool              `json:"success"`
	Status     bool              `json:"status"`
	Message    string            `json:"message,omitempty"`
	Count      *int64            `json:"count,omitempty"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
	Token      string            `json:"token,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Status  bool   `json:"status"`
	Error   string `json:"error"`
}

// Option decorates a success envelope.
type Option func(*APIResponse)

func WithCount(n int64) Option {
	return func(r *APIResponse) { r.Count = &n }
}

func WithPagination(p query.Pagination) Option {
	return func(r *APIResponse) { r.Pagination = &p }
}

func WithToken(token string) Option {
	return func(r *APIResponse) { r.Token = token }
}

// Success writes a success envelope with status (200 when zero). A nil data
// omits the member.
func Success(ctx *gin.Context, status int, data interface{}, message string, opts ...Option) {
	if status == 0 {
		status = http.StatusOK
	}
	body := APIResponse{
		Success: true,
		Status:  true,
		Message: message,
		Data:    data,
	}
	for _, opt := range opts {
		opt(&body)
	}
	ctx.JSON(status, body)
}

// List writes one page of a query result with the filtered total and page links.
func List(ctx *gin.Context, res query.Result, spec query.Spec, message string) {
	records := res.Records
	if records == nil {
		records = []map[string]any{}
	}
	Success(ctx, http.StatusOK, records, message,
		WithCount(res.Total),
		WithPagination(res.Pagination(spec)),
	)
}

// Error writes a failure envelope and aborts the chain.
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
