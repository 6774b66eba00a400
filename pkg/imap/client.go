package imap

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-message/mail"
)

// Config holds the connection settings for an IMAP mailbox.
type Config struct {
	Address    string // host:port, TLS
	Username   string
	Password   string
	Mailbox    string
	FetchLimit int
}

// Message is a plain email fetched from the mailbox.
type Message struct {
	Sender  string
	Subject string
	Body    string
	Date    time.Time
}

// FetchRecent connects to the configured mailbox and returns up to
// cfg.FetchLimit of the most recent messages, oldest first.
func FetchRecent(cfg Config) ([]Message, error) {
	c, err := client.DialTLS(cfg.Address, nil)
	if err != nil {
		return nil, fmt.Errorf("imap connect: %w", err)
	}
	defer c.Logout()

	if err := c.Login(cfg.Username, cfg.Password); err != nil {
		return nil, fmt.Errorf("imap login: %w", err)
	}

	mbox, err := c.Select(cfg.Mailbox, true)
	if err != nil {
		return nil, fmt.Errorf("imap select %s: %w", cfg.Mailbox, err)
	}

	if mbox.Messages == 0 {
		return nil, nil
	}

	limit := uint32(cfg.FetchLimit)
	if limit == 0 {
		limit = 20
	}
	from := uint32(1)
	if mbox.Messages > limit {
		from = mbox.Messages - limit + 1
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddRange(from, mbox.Messages)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{imap.FetchEnvelope, section.FetchItem()}

	messages := make(chan *imap.Message, limit)
	done := make(chan error, 1)
	go func() {
		done <- c.Fetch(seqSet, items, messages)
	}()

	var result []Message
	for msg := range messages {
		m, err := decodeMessage(msg, section)
		if err != nil {
			log.Printf("[IMAP] Skipping message %d: %v", msg.SeqNum, err)
			continue
		}
		result = append(result, m)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("imap fetch: %w", err)
	}
	return result, nil
}

func decodeMessage(msg *imap.Message, section *imap.BodySectionName) (Message, error) {
	var m Message

	if msg.Envelope != nil {
		m.Subject = msg.Envelope.Subject
		m.Date = msg.Envelope.Date
		if len(msg.Envelope.From) > 0 {
			m.Sender = msg.Envelope.From[0].Address()
		}
	}

	r := msg.GetBody(section)
	if r == nil {
		return m, fmt.Errorf("message body could not be retrieved")
	}

	mr, err := mail.CreateReader(r)
	if err != nil {
		return m, fmt.Errorf("create mail reader: %w", err)
	}

	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			return m, err
		}

		switch h := p.Header.(type) {
		case *mail.InlineHeader:
			contentType, _, err := h.ContentType()
			if err != nil {
				continue
			}
			// First text/plain part wins; HTML-only messages keep an empty body
			if contentType == "text/plain" && m.Body == "" {
				body, err := io.ReadAll(p.Body)
				if err != nil {
					return m, err
				}
				m.Body = string(body)
			}
		}
	}

	return m, nil
}
