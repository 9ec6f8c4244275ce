package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/linesmerrill/rsvp-api/wizard"
)

// backCommand moves to the previous step
const backCommand = "back"

// Terminal renders the wizard on a line based terminal
type Terminal struct {
	in      *bufio.Scanner
	out     io.Writer
	timeout time.Duration
}

// NewTerminal reads answers from in and writes prompts to out. Each network
// action is bounded by timeout.
func NewTerminal(in io.Reader, out io.Writer, timeout time.Duration) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out, timeout: timeout}
}

// Run drives one wizard session until it is done. It returns io.EOF when the
// input closes first.
func (t *Terminal) Run(ctx context.Context, backend wizard.Backend) error {
	ctrl, err := wizard.New(wizard.DefaultSteps(), backend, wizard.WithObserver(t.observe))
	if err != nil {
		return err
	}

	fmt.Fprintln(t.out, "You're invited! Enter the password to continue.")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		snap := ctrl.Snapshot()
		switch snap.Phase {
		case wizard.PhaseGate:
			line, err := t.ask("Password: ")
			if err != nil {
				return err
			}
			t.report(ctrl, t.withTimeout(ctx, func(ctx context.Context) error {
				return ctrl.Unlock(ctx, line)
			}))

		case wizard.PhaseSteps:
			t.showStep(snap)
			line, err := t.ask("> ")
			if err != nil {
				return err
			}
			if strings.EqualFold(line, backCommand) {
				t.report(ctrl, ctrl.Retreat())
				continue
			}
			line = resolveOption(snap.Step, line)
			if snap.Index == snap.Count-1 {
				t.report(ctrl, t.withTimeout(ctx, func(ctx context.Context) error {
					return ctrl.Submit(ctx, line)
				}))
				continue
			}
			t.report(ctrl, ctrl.Advance(line))

		case wizard.PhaseConfirm:
			fmt.Fprintln(t.out, wizard.MessageConfirmSoftReply)
			line, err := t.ask("[y/N]: ")
			if err != nil {
				return err
			}
			if isYes(line) {
				t.report(ctrl, t.withTimeout(ctx, ctrl.Confirm))
				continue
			}
			t.report(ctrl, ctrl.CancelConfirmation())

		case wizard.PhaseDone:
			t.thankYou(snap.Result)
			return nil
		}
	}
}

func (t *Terminal) observe(s wizard.Snapshot) {
	if s.InFlight {
		fmt.Fprintln(t.out, "...")
	}
}

func (t *Terminal) ask(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return t.in.Text(), nil
}

func (t *Terminal) withTimeout(ctx context.Context, fn func(context.Context) error) error {
	if t.timeout <= 0 {
		return fn(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return fn(ctx)
}

// report prints the visitor facing error left by a failed action
func (t *Terminal) report(ctrl *wizard.Controller, err error) {
	if err == nil {
		return
	}
	if msg := ctrl.Snapshot().Error; msg != "" {
		fmt.Fprintln(t.out, msg)
	}
}

func (t *Terminal) showStep(s wizard.Snapshot) {
	fmt.Fprintf(t.out, "\n[%d/%d] %s\n", s.Index+1, s.Count, s.Step.Prompt)
	for i, opt := range s.Step.Options {
		fmt.Fprintf(t.out, "  %d) %s\n", i+1, opt)
	}
	if v, ok := s.Data[s.Step.Field]; ok && v != "" {
		fmt.Fprintf(t.out, "(previous answer: %s)\n", v)
	}
	if s.Index > 0 {
		fmt.Fprintf(t.out, "(type %q to go back)\n", backCommand)
	}
}

func (t *Terminal) thankYou(res *wizard.Result) {
	if res != nil && res.Partial {
		fmt.Fprintf(t.out, "Thanks for answering. We noted you're feeling %s about it.\n", res.Reason)
		return
	}
	fmt.Fprintln(t.out, "Submission successful! Thank you.")
}

// resolveOption lets the visitor pick an option by its number
func resolveOption(step wizard.Step, line string) string {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(step.Options) {
		return line
	}
	return step.Options[n-1]
}

func isYes(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
