package gcss

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Gateway timestamps use millisecond precision with a literal Z suffix.
const timestampFormat = "2006-01-02T15:04:05.000Z"

// Security tokens stay valid for five days so queued submissions survive
// gateway outages.
const timestampTTL = 5 * 24 * time.Hour

const (
	nsSoapEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	nsWSSE    = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-secext-1.0.xsd"
	nsWSU     = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-wssecurity-utility-1.0.xsd"
	nsDSig    = "http://www.w3.org/2000/09/xmldsig#"

	tokenValueType    = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-x509-token-profile-1.0#X509v3"
	tokenEncodingType = "http://docs.oasis-open.org/wss/2004/01/oasis-200401-wss-soap-message-security-1.0#Base64Binary"
)

// envelope is a SOAP request under construction. Decorators append security
// header entries; render produces the final document.
type envelope struct {
	body     string
	security []string
}

// decorator mutates an envelope in place. Decorators compose by ordering:
// the client signs first, then stamps.
type decorator func(*envelope) error

func newEnvelope(body string) *envelope {
	return &envelope{body: body}
}

func (e *envelope) apply(decorators ...decorator) error {
	for _, apply := range decorators {
		if err := apply(e); err != nil {
			return err
		}
	}
	return nil
}

// render serializes the envelope. The body carries a wsu:Id so the signature
// reference resolves.
func (e *envelope) render() string {
	var b strings.Builder
	b.WriteString(`<soapenv:Envelope xmlns:soapenv="` + nsSoapEnv + `" xmlns:wsu="` + nsWSU + `">`)
	b.WriteString(`<soapenv:Header>`)
	if len(e.security) > 0 {
		b.WriteString(`<wsse:Security xmlns:wsse="` + nsWSSE + `" soapenv:mustUnderstand="1">`)
		for _, entry := range e.security {
			b.WriteString(entry)
		}
		b.WriteString(`</wsse:Security>`)
	}
	b.WriteString(`</soapenv:Header>`)
	b.WriteString(`<soapenv:Body wsu:Id="Body">`)
	b.WriteString(e.body)
	b.WriteString(`</soapenv:Body>`)
	b.WriteString(`</soapenv:Envelope>`)
	return b.String()
}

// addTimestamp appends a wsu:Timestamp entry. Created is now, Expires is
// five days out, both UTC.
func addTimestamp(e *envelope) error {
	created := time.Now().UTC()
	expires := created.Add(timestampTTL)
	e.security = append(e.security, fmt.Sprintf(
		`<wsu:Timestamp><wsu:Created>%s</wsu:Created><wsu:Expires>%s</wsu:Expires></wsu:Timestamp>`,
		created.Format(timestampFormat), expires.Format(timestampFormat)))
	return nil
}

// wsseSigner signs envelope bodies with the client certificate key pair and
// attaches the certificate as a BinarySecurityToken.
type wsseSigner struct {
	key     *rsa.PrivateKey
	certDER []byte
}

// newWSSESigner extracts the RSA key and leaf certificate from a loaded TLS
// key pair.
func newWSSESigner(pair tls.Certificate) (*wsseSigner, error) {
	key, ok := pair.PrivateKey.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("%w: private key is not RSA", ErrConfigInvalid)
	}
	if len(pair.Certificate) == 0 {
		return nil, fmt.Errorf("%w: certificate chain is empty", ErrConfigInvalid)
	}
	if _, err := x509.ParseCertificate(pair.Certificate[0]); err != nil {
		return nil, fmt.Errorf("%w: parse certificate: %v", ErrConfigInvalid, err)
	}
	return &wsseSigner{key: key, certDER: pair.Certificate[0]}, nil
}

// sign appends the BinarySecurityToken and a ds:Signature over the body
// digest to the security header.
func (s *wsseSigner) sign(e *envelope) error {
	bodyDigest := sha256.Sum256([]byte(e.body))
	digestValue := base64.StdEncoding.EncodeToString(bodyDigest[:])

	signedInfo := fmt.Sprintf(
		`<ds:SignedInfo>`+
			`<ds:CanonicalizationMethod Algorithm="http://www.w3.org/2001/10/xml-exc-c14n#"/>`+
			`<ds:SignatureMethod Algorithm="http://www.w3.org/2001/04/xmldsig-more#rsa-sha256"/>`+
			`<ds:Reference URI="#Body">`+
			`<ds:DigestMethod Algorithm="http://www.w3.org/2001/04/xmlenc#sha256"/>`+
			`<ds:DigestValue>%s</ds:DigestValue>`+
			`</ds:Reference>`+
			`</ds:SignedInfo>`, digestValue)

	signedInfoDigest := sha256.Sum256([]byte(signedInfo))
	signature, err := rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, signedInfoDigest[:])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSignFailed, err)
	}
	signatureValue := base64.StdEncoding.EncodeToString(signature)

	token := fmt.Sprintf(
		`<wsse:BinarySecurityToken wsu:Id="X509Token" ValueType="%s" EncodingType="%s">%s</wsse:BinarySecurityToken>`,
		tokenValueType, tokenEncodingType, base64.StdEncoding.EncodeToString(s.certDER))

	sig := fmt.Sprintf(
		`<ds:Signature xmlns:ds="%s">%s`+
			`<ds:SignatureValue>%s</ds:SignatureValue>`+
			`<ds:KeyInfo><wsse:SecurityTokenReference><wsse:Reference URI="#X509Token" ValueType="%s"/></wsse:SecurityTokenReference></ds:KeyInfo>`+
			`</ds:Signature>`, nsDSig, signedInfo, signatureValue, tokenValueType)

	e.security = append(e.security, token, sig)
	return nil
}
