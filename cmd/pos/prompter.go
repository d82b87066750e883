package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/marcomartinez12/playzone/internal/checkout"
)

// terminalPrompter implements checkout.Prompter over stdin/stdout. It is the
// line-based stand-in for the blocking modals of the original UI.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *terminalPrompter) ClientForm(ctx context.Context, assist checkout.FormAssist) (*checkout.ClientForm, error) {
	if assist.Warning != "" {
		fmt.Fprintf(p.out, "! %s\n", assist.Warning)
	}
	fmt.Fprintln(p.out, "-- Client details (blank document cancels) --")

	form := &checkout.ClientForm{}
	if assist.Previous != nil {
		*form = *assist.Previous
	}

	document, err := p.ask("Document", form.Document)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(document) == "" {
		return nil, nil
	}
	form.Document = document

	if assist.Lookup != nil {
		if client, found := assist.Lookup(ctx, strings.TrimSpace(document)); found {
			fmt.Fprintln(p.out, "Client found, press enter to keep the stored data")
			form.Name = client.Name
			form.Phone = client.Phone
			form.Email = client.Email
		} else {
			fmt.Fprintln(p.out, "Client not found, enter the data to register it")
		}
	}

	if form.Name, err = p.ask("Full name", form.Name); err != nil {
		return nil, err
	}
	if form.Phone, err = p.ask("Phone", form.Phone); err != nil {
		return nil, err
	}
	if form.Email, err = p.ask("Email (optional)", form.Email); err != nil {
		return nil, err
	}
	return form, nil
}

func (p *terminalPrompter) ConfirmSale(ctx context.Context, summary checkout.ConfirmSummary) (bool, error) {
	fmt.Fprintln(p.out, "-- Confirm sale --")
	fmt.Fprintf(p.out, "Client:   %s\n", summary.ClientName)
	fmt.Fprintf(p.out, "Document: %s\n", summary.Document)
	if summary.Email != "" {
		fmt.Fprintf(p.out, "Email:    %s\n", summary.Email)
	}
	fmt.Fprintf(p.out, "Total:    %s\n", summary.TotalFormatted)
	fmt.Fprintf(p.out, "Products: %d\n", summary.LineCount)

	return p.confirm("Confirm sale [y/N]")
}

// confirm asks a yes/no question; anything but y/yes is no.
func (p *terminalPrompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question, "")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

// ask prompts for one value; an empty answer keeps the default.
func (p *terminalPrompter) ask(label, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}
