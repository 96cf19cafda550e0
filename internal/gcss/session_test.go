package gcss

import (
	"testing"
)

const docHistoryResponse = `<?xml version="1.0" encoding="UTF-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <processResponse>
      <remaining-records>2</remaining-records>
      <br2MerDocHistoryCollection>
        <br2MerDocHistoryRecord>
          <D>M2902812150001</D>
          <E>AS2</E>
        </br2MerDocHistoryRecord>
        <br2MerDocHistoryRecord>
          <D>M2902812150002</D>
          <E></E>
        </br2MerDocHistoryRecord>
      </br2MerDocHistoryCollection>
    </processResponse>
  </soapenv:Body>
</soapenv:Envelope>`

func TestParseProcessResponse(t *testing.T) {
	page, err := parseProcessResponse([]byte(docHistoryResponse), ServiceDocHistory)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if page.RemainingRecords != 2 {
		t.Fatalf("remaining want 2 got %d", page.RemainingRecords)
	}
	if len(page.Records) != 2 {
		t.Fatalf("records want 2 got %d", len(page.Records))
	}
	if got := page.Records[0].Get("D"); got != "M2902812150001" {
		t.Fatalf("first record field D want M2902812150001 got %q", got)
	}
	if got := page.Records[1].Get("E"); got != "" {
		t.Fatalf("null element should read empty, got %q", got)
	}
}

func TestParseProcessResponseMissingCollection(t *testing.T) {
	raw := `<?xml version="1.0"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <processResponse>
      <remaining-records>0</remaining-records>
    </processResponse>
  </soapenv:Body>
</soapenv:Envelope>`

	page, err := parseProcessResponse([]byte(raw), ServiceDocHistory)
	if err != nil {
		t.Fatalf("missing collection must not be an error: %v", err)
	}
	if page.RemainingRecords != 0 || len(page.Records) != 0 {
		t.Fatalf("want empty page, got %+v", page)
	}
}

func TestParseFault(t *testing.T) {
	raw := `<?xml version="1.0"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <soapenv:Fault>
      <faultcode>soapenv:Client</faultcode>
      <faultstring>signature verification failed</faultstring>
    </soapenv:Fault>
  </soapenv:Body>
</soapenv:Envelope>`

	if got := parseFault([]byte(raw)); got != "signature verification failed" {
		t.Fatalf("fault string want %q got %q", "signature verification failed", got)
	}
	if got := parseFault([]byte(docHistoryResponse)); got != "" {
		t.Fatalf("non-fault response should report empty, got %q", got)
	}
}
