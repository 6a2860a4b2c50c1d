// Package hookio adapts the host's hook protocol: one JSON document read
// from standard input, and at most one JSON document written to standard
// output. It never produces a non-zero exit code itself.
package hookio

import (
	"encoding/json"
	"io"
)

const bashToolName = "Bash"

const (
	EventPermissionRequest = "PermissionRequest"
	EventPreToolUse        = "PreToolUse"
)

// Input is the subset of the host's hook payload this tool cares about.
type Input struct {
	HookEventName string `json:"hook_event_name"`
	ToolName      string `json:"tool_name"`
	ToolInput     struct {
		Command string `json:"command"`
	} `json:"tool_input"`
}

// ParseInput decodes r as an Input. ok is false whenever the JSON is
// malformed, the tool isn't Bash, or the command text is absent or empty —
// in every such case the caller must exit with no output.
func ParseInput(r io.Reader) (Input, bool) {
	var in Input
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return Input{}, false
	}
	if in.ToolName != bashToolName {
		return Input{}, false
	}
	if in.ToolInput.Command == "" {
		return Input{}, false
	}
	return in, true
}

type permissionRequestOutput struct {
	HookSpecificOutput struct {
		HookEventName string `json:"hookEventName"`
		Decision      struct {
			Behavior string `json:"behavior"`
		} `json:"decision"`
	} `json:"hookSpecificOutput"`
}

type preToolUseOutput struct {
	HookSpecificOutput struct {
		HookEventName            string `json:"hookEventName"`
		PermissionDecision       string `json:"permissionDecision"`
		PermissionDecisionReason string `json:"permissionDecisionReason"`
	} `json:"hookSpecificOutput"`
}

// RenderApproval marshals the approval document for the given event name.
// PermissionRequest gets the decision.behavior shape; everything else
// (including PreToolUse) gets the permissionDecision/-Reason shape.
func RenderApproval(event string) []byte {
	if event == EventPermissionRequest {
		var out permissionRequestOutput
		out.HookSpecificOutput.HookEventName = EventPermissionRequest
		out.HookSpecificOutput.Decision.Behavior = "allow"
		data, _ := json.Marshal(out)
		return data
	}

	var out preToolUseOutput
	out.HookSpecificOutput.HookEventName = EventPreToolUse
	out.HookSpecificOutput.PermissionDecision = "allow"
	out.HookSpecificOutput.PermissionDecisionReason = "command matches the read-only auto-approve policy"
	data, _ := json.Marshal(out)
	return data
}
