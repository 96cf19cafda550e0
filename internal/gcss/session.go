package gcss

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Session is a paged retrieval conversation with one gateway service.
// Callers must Close it on every exit path.
type Session struct {
	client      *Client
	serviceName string
	closed      bool
}

// OpenSession starts a retrieval session against a named service.
func (c *Client) OpenSession(serviceName string) *Session {
	return &Session{client: c, serviceName: serviceName}
}

// Page is one process response: the records returned plus the count of
// records the gateway still holds beyond this page.
type Page struct {
	RemainingRecords int
	Records          []Record
}

// Record maps a response record's element names to their text content.
type Record map[string]string

// Get returns a field value, empty when absent.
func (r Record) Get(field string) string {
	return r[field]
}

// Process requests one page. The gateway expects SOAP output with explicit
// null elements so record fields always appear.
func (s *Session) Process(ctx context.Context, pagingSkip, pagingMax int) (*Page, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	body := fmt.Sprintf(
		`<ns:process xmlns:ns="%s">`+
			`<outputType>SOAP</outputType>`+
			`<nullElements>yes</nullElements>`+
			`<pagingSkip>%d</pagingSkip>`+
			`<pagingMax>%d</pagingMax>`+
			`</ns:process>`, nsStratis, pagingSkip, pagingMax)

	raw, err := s.client.call(ctx, s.serviceName, "process", body)
	if err != nil {
		return nil, err
	}
	return parseProcessResponse(raw, s.serviceName)
}

// Close ends the session. Further Process calls fail.
func (s *Session) Close() error {
	s.closed = true
	return nil
}

// parseProcessResponse walks the response for remaining-records and the
// per-service record collection. A missing collection is an empty page, not
// an error.
func parseProcessResponse(raw []byte, serviceName string) (*Page, error) {
	page := &Page{}
	recordElement := serviceName + "Record"

	decoder := xml.NewDecoder(bytes.NewReader(raw))
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: parse response: %v", ErrRequestFailed, err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch start.Name.Local {
		case "remaining-records":
			text, err := elementText(decoder)
			if err != nil {
				return nil, fmt.Errorf("%w: parse remaining-records: %v", ErrRequestFailed, err)
			}
			count, err := strconv.Atoi(strings.TrimSpace(text))
			if err != nil {
				return nil, fmt.Errorf("%w: remaining-records %q is not a number", ErrRequestFailed, text)
			}
			page.RemainingRecords = count
		case recordElement:
			record, err := decodeRecord(decoder, start)
			if err != nil {
				return nil, fmt.Errorf("%w: parse record: %v", ErrRequestFailed, err)
			}
			page.Records = append(page.Records, record)
		}
	}
	return page, nil
}

// decodeRecord reads one record element's children into a field map.
func decodeRecord(decoder *xml.Decoder, start xml.StartElement) (Record, error) {
	record := Record{}
	depth := 0
	field := ""
	var text strings.Builder
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				field = t.Name.Local
				text.Reset()
			}
		case xml.CharData:
			if depth == 1 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				return record, nil
			}
			if depth == 1 && field != "" {
				record[field] = strings.TrimSpace(text.String())
				field = ""
			}
			depth--
		}
	}
}

// elementText reads the character data up to the current element's close.
func elementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	for {
		token, err := decoder.Token()
		if err != nil {
			return "", err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			return text.String(), nil
		case xml.StartElement:
			if err := decoder.Skip(); err != nil {
				return "", err
			}
		}
	}
}

// parseFault extracts the faultstring from a SOAP fault body, empty when the
// response is not a fault.
func parseFault(raw []byte) string {
	if !bytes.Contains(raw, []byte("Fault")) {
		return ""
	}
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	inFault := false
	for {
		token, err := decoder.Token()
		if err != nil {
			return ""
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		if start.Name.Local == "Fault" {
			inFault = true
			continue
		}
		if inFault && (start.Name.Local == "faultstring" || start.Name.Local == "Reason") {
			text, err := elementText(decoder)
			if err != nil {
				return "soap fault"
			}
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed
			}
			return "soap fault"
		}
	}
}
