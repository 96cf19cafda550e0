package constants

// DIC codes participating in the receipt workflow. AS2 arrives from GCSS on
// intake; D6T and COR are appended by warehouse users through the API.
const (
	DicAS2 = "AS2" // receipt acknowledgment
	DicAE1 = "AE1" // supply status
	DicD6T = "D6T" // quantity receipt confirmation
	DicCOR = "COR" // correction / closeout
)

// Queue names.
const (
	QueueDefault = "default"
	QueueGCSS    = "gcss"
)

// Task type names.
const (
	TaskGCSSSubmitD6T  = "gcss:submit_d6t"
	TaskGCSSDocHistory = "gcss:doc_history"
)

// Address roles referenced by documents.
const (
	AddressTypeShipTo = "ship_to"
	AddressTypeHolder = "holder"
)
