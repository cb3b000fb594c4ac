package email

import (
	"context"
	"slices"
)

// Builder accumulates an Email through chained calls. Recipient setters
// append, so repeated calls add to the list instead of replacing it.
//
//	resp, err := email.NewBuilder().
//		From("Matt <matt@example.com>").
//		To("dave@example.com").
//		Subject("Trying it out").
//		TextBody("Test message").
//		Send(ctx, client)
//
// A Builder is not safe for concurrent use.
type Builder struct {
	e Email
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) From(address string) *Builder {
	b.e.FromAddress = address
	return b
}

func (b *Builder) To(addresses ...string) *Builder {
	b.e.ToAddresses = append(b.e.ToAddresses, addresses...)
	return b
}

func (b *Builder) CC(addresses ...string) *Builder {
	b.e.CCAddresses = append(b.e.CCAddresses, addresses...)
	return b
}

func (b *Builder) BCC(addresses ...string) *Builder {
	b.e.BCCAddresses = append(b.e.BCCAddresses, addresses...)
	return b
}

func (b *Builder) ReplyTo(addresses ...string) *Builder {
	b.e.ReplyToAddresses = append(b.e.ReplyToAddresses, addresses...)
	return b
}

func (b *Builder) Subject(subject string) *Builder {
	b.e.Subject = subject
	return b
}

func (b *Builder) TextBody(body string) *Builder {
	b.e.TextBody = body
	return b
}

func (b *Builder) HTMLBody(body string) *Builder {
	b.e.HTMLBody = body
	return b
}

// Email returns a copy of the accumulated message. Later builder calls do
// not affect the returned value.
func (b *Builder) Email() Email {
	e := b.e
	e.ToAddresses = slices.Clone(b.e.ToAddresses)
	e.CCAddresses = slices.Clone(b.e.CCAddresses)
	e.BCCAddresses = slices.Clone(b.e.BCCAddresses)
	e.ReplyToAddresses = slices.Clone(b.e.ReplyToAddresses)
	return e
}

// Send validates the message and hands it to sender. Nothing reaches the
// sender when validation fails.
func (b *Builder) Send(ctx context.Context, sender Sender) (*Response, error) {
	e := b.Email()
	if err := Validate(e); err != nil {
		return nil, err
	}

	return sender.SendEmail(ctx, e)
}
