// Package pipeline runs an ordered list of request stages around the
// authorization engine. Stages share a per-request context bag and
// short-circuit on the first terminating outcome; the transport adapter maps
// terminations to HTTP responses.
package pipeline

import (
	"context"

	"newsroom/internal/domain"
)

// Request is the transport-agnostic view of one incoming request. Identity is
// nil until the authentication stage attaches the caller; it is never replaced
// afterwards.
type Request struct {
	Method   string
	Path     string
	Token    string
	Identity *domain.User

	params map[string]string
}

func NewRequest(method, path, token string, params map[string]string) *Request {
	return &Request{Method: method, Path: path, Token: token, params: params}
}

func (r *Request) Param(name string) string {
	return r.params[name]
}

type Response struct {
	Status  int
	Code    string
	Message string
}

// Result is the outcome of one stage: continue to the next stage, or
// terminate the request with a response.
type Result struct {
	terminate bool
	response  Response
}

func Continue() Result {
	return Result{}
}

func Terminate(status int, code, message string) Result {
	return Result{terminate: true, response: Response{Status: status, Code: code, Message: message}}
}

func (r Result) Terminated() (Response, bool) {
	return r.response, r.terminate
}

type Stage func(ctx context.Context, req *Request, rc *domain.RequestContext) Result

type Pipeline struct {
	stages []Stage
}

func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

func (p *Pipeline) Use(stages ...Stage) {
	p.stages = append(p.stages, stages...)
}

// Run creates an empty request context and invokes the stages in registration
// order. It returns the accumulated context and, when a stage terminated, the
// response to emit; later stages never run after a termination.
func (p *Pipeline) Run(ctx context.Context, req *Request) (*domain.RequestContext, *Response) {
	rc := domain.NewRequestContext()
	for _, stage := range p.stages {
		if resp, stop := stage(ctx, req, rc).Terminated(); stop {
			return rc, &resp
		}
	}
	return rc, nil
}
