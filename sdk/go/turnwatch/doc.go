// Package turnwatch provides in-process violation tracking for Go dialogue
// hosts. It counts guardrail violations per conversation session, applies
// graduated escalation (final warning, then termination), and records
// hash-chained audit entries for every counted violation.
//
// Usage:
//
//	tw, err := turnwatch.New(turnwatch.WithConfig("guard.yaml"))
//	res := tw.HandleTurn(turnwatch.Turn{
//	    SessionID: "conv-42",
//	    Intent:    "offensive_language",
//	})
//	if res.Signal == turnwatch.SignalTerminate {
//	    // end the conversation
//	}
//
// The SDK links directly against internal packages for zero-subprocess
// overhead. External users import github.com/ppiankov/turnwatch/sdk/go/turnwatch.
package turnwatch
