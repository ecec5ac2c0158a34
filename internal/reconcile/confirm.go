package reconcile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Response is an operator's answer to a pending move.
type Response int

const (
	// ResponseAccept approves the presented move only.
	ResponseAccept Response = iota
	// ResponseAcceptAll approves the presented move and every remaining one.
	ResponseAcceptAll
	// ResponseReject skips the presented move.
	ResponseReject
)

// Confirmer presents a pending source-to-destination move to an operator.
type Confirmer interface {
	Confirm(src, dst string) (Response, error)
}

// ConfirmationPolicy carries the per-run confirmation state. It replaces the
// tool's historical process-wide confirm-all toggle: the reconciler owns one
// policy value per run and flips it in place when the operator accepts all.
type ConfirmationPolicy struct {
	acceptAll bool
}

// AskEachTime returns a policy that consults the confirmer for every move.
func AskEachTime() ConfirmationPolicy {
	return ConfirmationPolicy{}
}

// AcceptAll returns a policy that approves every move without prompting.
func AcceptAll() ConfirmationPolicy {
	return ConfirmationPolicy{acceptAll: true}
}

// Approve resolves one pending move against the policy, updating the policy
// when the operator escalates to accept-all. A nil confirmer approves
// everything.
func (p *ConfirmationPolicy) Approve(confirmer Confirmer, src, dst string) (bool, error) {
	if p.acceptAll || confirmer == nil {
		return true, nil
	}
	response, err := confirmer.Confirm(src, dst)
	if err != nil {
		return false, err
	}
	switch response {
	case ResponseAcceptAll:
		p.acceptAll = true
		return true, nil
	case ResponseAccept:
		return true, nil
	default:
		return false, nil
	}
}

// PromptConfirmer reads operator responses line by line: an empty line
// accepts, "all" accepts the rest of the run, anything else rejects.
type PromptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPromptConfirmer wires a confirmer to the given streams, typically stdin
// and stderr.
func NewPromptConfirmer(in io.Reader, out io.Writer) *PromptConfirmer {
	return &PromptConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *PromptConfirmer) Confirm(src, dst string) (Response, error) {
	fmt.Fprintf(c.out, "Move %q to %q?\n(Enter to confirm, 'all' to confirm the rest, anything else to skip): ", src, dst)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return ResponseReject, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return ResponseAccept, nil
	case "a", "all", "always":
		return ResponseAcceptAll, nil
	default:
		return ResponseReject, nil
	}
}
