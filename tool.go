package gopoly

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ============================================================
// MCP Tool Interface
// ============================================================

type ToolRequest struct {
	Tool   string                 `json:"tool"`
	Params map[string]interface{} `json:"params"`
}

type ToolResponse struct {
	Result interface{} `json:"result,omitempty"`
	LaTeX  string      `json:"latex,omitempty"`
	String string      `json:"string,omitempty"`
	Error  string      `json:"error,omitempty"`
	Kind   string      `json:"kind,omitempty"`
}

// HandleToolCall dispatches req to the default pipeline.
func HandleToolCall(req ToolRequest) ToolResponse { return defaultPipeline.HandleToolCall(req) }

// HandleToolCall dispatches a tool request. Failures are reported in the
// response, never as a Go error.
func (p *Pipeline) HandleToolCall(req ToolRequest) ToolResponse {
	getString := func(key string) (string, error) {
		v, ok := req.Params[key]
		if !ok {
			return "", fmt.Errorf("missing param: %s", key)
		}
		s, ok := v.(string)
		if !ok {
			return "", fmt.Errorf("param %s must be a string", key)
		}
		return s, nil
	}
	getVar := func(key string) (byte, error) {
		s, err := getString(key)
		if err != nil {
			return 0, err
		}
		if len(s) != 1 || !isLetter(s[0]) {
			return 0, fmt.Errorf("param %s must be a single letter", key)
		}
		return s[0], nil
	}
	fail := func(err error) ToolResponse {
		resp := ToolResponse{Error: err.Error()}
		if kind := KindOf(err); kind != nil {
			resp.Kind = kind.Error()
		}
		return resp
	}
	run := func() (*Result, error) {
		eq, err := getString("equation")
		if err != nil {
			return nil, err
		}
		return p.Run(eq)
	}
	respond := func(res *Result) ToolResponse {
		return ToolResponse{
			Result: toJSONExpression(res.Terms),
			LaTeX:  FormatLaTeX(res.Terms),
			String: res.Output,
		}
	}

	switch req.Tool {
	case "canonicalize":
		res, err := run()
		if err != nil {
			return fail(err)
		}
		return respond(res)

	case "postfix":
		res, err := run()
		if err != nil {
			return fail(err)
		}
		return ToolResponse{
			Result: map[string]interface{}{"sanitized": res.Sanitized, "postfix": res.Postfix},
			String: res.Postfix,
		}

	case "terms":
		res, err := run()
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: toJSONExpression(res.Terms), String: res.Output}

	case "latex":
		res, err := run()
		if err != nil {
			return fail(err)
		}
		return ToolResponse{LaTeX: FormatLaTeX(res.Terms), String: res.Output}

	case "degree":
		name, err := getVar("var")
		if err != nil {
			return fail(err)
		}
		res, err := run()
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: Degree(res.Terms, name), String: res.Output}

	case "variables":
		res, err := run()
		if err != nil {
			return fail(err)
		}
		return ToolResponse{Result: Variables(res.Terms), String: res.Output}

	case "format":
		raw, ok := req.Params["expr"]
		if !ok {
			return fail(fmt.Errorf("missing param: expr"))
		}
		b, err := json.Marshal(raw)
		if err != nil {
			return fail(err)
		}
		expr, err := FromJSON(b)
		if err != nil {
			return fail(err)
		}
		expr = combine(false, Expression{}, expr)
		p.sorter.Sort(expr)
		return ToolResponse{Result: toJSONExpression(expr), LaTeX: FormatLaTeX(expr), String: p.formatter.Format(expr)}

	case "mcp_spec":
		return ToolResponse{Result: ToolSpec(), String: "MCP tool specification"}
	}

	return ToolResponse{Error: fmt.Sprintf("unknown tool: %s", req.Tool)}
}

// ToolSpec returns the JSON schema of every tool HandleToolCall understands.
func ToolSpec() string {
	eq := map[string]string{"equation": "string"}
	tools := []map[string]interface{}{
		ts("canonicalize", "Simplify a polynomial equation to '<terms> = 0'", []string{"equation"}, eq),
		ts("postfix", "Show the sanitized infix and postfix forms of an equation", []string{"equation"}, eq),
		ts("terms", "Return the combined, sorted terms of an equation", []string{"equation"}, eq),
		ts("latex", "Render the canonical form as LaTeX", []string{"equation"}, eq),
		ts("degree", "Highest exponent of a variable in the canonical form", []string{"equation", "var"}, map[string]string{"equation": "string", "var": "string"}),
		ts("variables", "Variable names used in the canonical form", []string{"equation"}, eq),
		ts("format", "Sort and render a terms object {terms:[{coefficient,vars}]}", []string{"expr"}, map[string]string{"expr": "object"}),
		ts("mcp_spec", "Return this tool schema", []string{}, map[string]string{}),
	}
	spec := map[string]interface{}{"tools": tools}
	b, _ := json.MarshalIndent(spec, "", "  ")
	return string(b)
}

// ToolNames lists the tools in ToolSpec order.
func ToolNames() []string {
	return strings.Fields("canonicalize postfix terms latex degree variables format mcp_spec")
}

func ts(name, description string, required []string, props map[string]string) map[string]interface{} {
	properties := map[string]interface{}{}
	for k, typ := range props {
		properties[k] = map[string]interface{}{"type": typ}
	}
	return map[string]interface{}{
		"name":        name,
		"description": description,
		"inputSchema": map[string]interface{}{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}
