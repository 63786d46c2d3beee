package core

import "net/http"

// Problem captures the information returned in a JSON error response.
type Problem struct {
	Status int
	Title  string
	Detail string
}

// NormalizeProblem ensures the provided problem includes canonical defaults.
func NormalizeProblem(problem *Problem) *Problem {
	if problem == nil {
		problem = &Problem{}
	}
	if problem.Status == 0 {
		problem.Status = http.StatusInternalServerError
	}
	if problem.Title == "" {
		problem.Title = http.StatusText(problem.Status)
	}
	return problem
}

// BuildProblemBody assembles the serialized representation of the problem.
// Every non-2xx response carries a human-readable detail string.
func BuildProblemBody(problem *Problem) map[string]any {
	problem = NormalizeProblem(problem)
	body := map[string]any{
		"status": problem.Status,
		"error":  problem.Title,
	}
	if problem.Detail != "" {
		body["detail"] = problem.Detail
	}
	return body
}
