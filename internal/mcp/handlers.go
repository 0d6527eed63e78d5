package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

func (s *Server) registerHandlers() {
	s.handlers["get_response"] = s.handleGetResponse
	s.handlers["score_message"] = s.handleScoreMessage
	s.handlers["list_rules"] = s.handleListRules
}

type messageParams struct {
	Message *string `json:"message"`
}

func parseMessage(params json.RawMessage) (string, error) {
	var p messageParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return "", fmt.Errorf("invalid parameters: %w", err)
		}
	}
	if p.Message == nil {
		return "", fmt.Errorf("message is required")
	}
	return *p.Message, nil
}

func (s *Server) handleGetResponse(ctx context.Context, params json.RawMessage) (interface{}, error) {
	msg, err := parseMessage(params)
	if err != nil {
		return nil, err
	}
	return s.responder.Respond(msg), nil
}

func (s *Server) handleScoreMessage(ctx context.Context, params json.RawMessage) (interface{}, error) {
	msg, err := parseMessage(params)
	if err != nil {
		return nil, err
	}
	return s.responder.Explain(msg), nil
}

type ruleInfo struct {
	Name        string   `json:"name"`
	Response    string   `json:"response"`
	Recognized  []string `json:"recognized"`
	Required    []string `json:"required,omitempty"`
	AlwaysScore bool     `json:"always_score"`
}

func (s *Server) handleListRules(ctx context.Context, params json.RawMessage) (interface{}, error) {
	rules := make([]ruleInfo, 0, len(s.catalog.Rules))
	for _, r := range s.catalog.Rules {
		rules = append(rules, ruleInfo{
			Name:        r.Name(),
			Response:    r.Response(),
			Recognized:  r.Recognized(),
			Required:    r.Required(),
			AlwaysScore: r.AlwaysScore(),
		})
	}
	return rules, nil
}

// Resource handlers

func (s *Server) handleReadResource(ctx context.Context, uri string) (string, error) {
	switch uri {
	case URIRules:
		return s.getResourceRules(), nil
	case URIFallback:
		return s.getResourceFallback(), nil
	default:
		return "", fmt.Errorf("unknown resource: %s", uri)
	}
}

func (s *Server) getResourceRules() string {
	var b strings.Builder
	b.WriteString("Response Rules\n==============\n\n")

	if len(s.catalog.Rules) == 0 {
		b.WriteString("No rules loaded.\n")
		return b.String()
	}

	for i, r := range s.catalog.Rules {
		fmt.Fprintf(&b, "%d. %s -> %q\n", i+1, r.Name(), r.Response())
		fmt.Fprintf(&b, "   recognized: %s\n", strings.Join(r.Recognized(), ", "))
		if req := r.Required(); len(req) > 0 {
			fmt.Fprintf(&b, "   required:   %s\n", strings.Join(req, ", "))
		}
		if r.AlwaysScore() {
			b.WriteString("   always scores\n")
		}
	}
	fmt.Fprintf(&b, "\nSource: %s\n", s.catalog.Source)

	return b.String()
}

func (s *Server) getResourceFallback() string {
	var b strings.Builder
	b.WriteString("Fallback Replies\n================\n\n")
	for _, f := range s.catalog.Fallbacks {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	return b.String()
}
