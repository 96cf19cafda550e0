package gcss

import (
	"fmt"
	"strings"
)

const nsStratis = "http://www.usmc.mil/schemas/1/if/stratis"

// MRecInput carries the document fields interpolated into a receipt
// fragment. Everything else in the fragment is fixed by the gateway schema.
type MRecInput struct {
	SpoolID uint
	IPAAC   string
	DIC     string
	SDN     string
	NIIN    string
	UOI     string
}

// Fixed values required by the receiving schema; provided by the gateway
// integration team, do not change without coordination.
const (
	mRecSCN  = "M2902481150002"
	mRecPIN  = "P111"
	mRecRIC  = "MR1"
	mRecQCCA = "4"
	mRecQCCF = "4"
	mRecKeyD = "2018-04-25T10:30:47Z"
)

const mRecTemplate = `<mRec>` +
	`<spoolID>%d</spoolID>` +
	`<iPAAC>%s</iPAAC>` +
	`<dIC>%s</dIC>` +
	`<sCN>` + mRecSCN + `</sCN>` +
	`<pIN>` + mRecPIN + `</pIN>` +
	`<sID></sID>` +
	`<rCN></rCN>` +
	`<rIC>` + mRecRIC + `</rIC>` +
	`<sDN>%s</sDN>` +
	`<sfx></sfx>` +
	`<nIIN>%s</nIIN>` +
	`<uOI>%s</uOI>` +
	`<qM></qM>` +
	`<qCCA>` + mRecQCCA + `</qCCA>` +
	`<qCCF>` + mRecQCCF + `</qCCF>` +
	`<recSDN></recSDN>` +
	`<status></status>` +
	`<fCC></fCC>` +
	`<fund></fund>` +
	`<keyD>` + mRecKeyD + `</keyD>` +
	`<jON></jON>` +
	`<rON></rON>` +
	`<pri></pri>` +
	`<proj></proj>` +
	`<rDD></rDD>` +
	`<sC></sC>` +
	`<supADD></supADD>` +
	`<mOfShip></mOfShip>` +
	`<tCN></tCN>` +
	`<txnDate>` + mRecKeyD + `</txnDate>` +
	`<cFlag></cFlag>` +
	`<demC></demC>` +
	`</mRec>`

// RenderMRec renders one receipt fragment.
func RenderMRec(input MRecInput) string {
	return fmt.Sprintf(mRecTemplate, input.SpoolID, input.IPAAC, input.DIC, input.SDN, input.NIIN, input.UOI)
}

// WrapCollection wraps rendered fragments in the submission collection
// element.
func WrapCollection(fragments []string) string {
	return fmt.Sprintf(`<shipmentReceiptsInCollection xmlns="%s">%s</shipmentReceiptsInCollection>`,
		nsStratis, strings.Join(fragments, ""))
}

var uncompressedEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeUncompressed encodes a rendered payload for the uncompressed
// submission path. The gateway requires '&', '<' and '>' escaped; quotes
// stay literal.
func EscapeUncompressed(xml string) string {
	return uncompressedEscaper.Replace(xml)
}
