package domain

import "errors"

var (
	// ErrInvoiceNotFound is returned when an invoice is not present in any backend
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrInvoiceAlreadyExists is returned when an invoice ID collides with an existing record
	ErrInvoiceAlreadyExists = errors.New("invoice already exists")

	// ErrInvalidInvoice is returned when an invoice record violates its invariants
	ErrInvalidInvoice = errors.New("invalid invoice")

	// ErrAlreadyFunded is returned when funding is attempted on a funded invoice
	ErrAlreadyFunded = errors.New("invoice already funded")

	// ErrSelfFunding is returned when the investor wallet owns the invoice
	ErrSelfFunding = errors.New("invoice cannot be funded by its owner")

	// ErrWalletNotConnected is returned when an action requires a connected wallet
	ErrWalletNotConnected = errors.New("wallet not connected")

	// ErrSignatureRejected is returned when the wallet refuses to sign a deploy
	ErrSignatureRejected = errors.New("signature request rejected")

	// ErrRelayRejected is returned when the RPC relay answers with a protocol-level error
	ErrRelayRejected = errors.New("deploy rejected by relay")

	// ErrRelayUnavailable is returned when no RPC endpoint could be reached
	ErrRelayUnavailable = errors.New("no rpc endpoint reachable")

	// ErrInvalidTransition is returned when a workflow action is not allowed in the current state
	ErrInvalidTransition = errors.New("invalid workflow transition")

	// ErrWorkflowBusy is returned when an action is triggered while another is in flight
	ErrWorkflowBusy = errors.New("workflow busy")

	// ErrAnalyzerUnavailable is returned when no scoring backend produced an assessment
	ErrAnalyzerUnavailable = errors.New("risk analyzer unavailable")

	// ErrUploadFailed is returned when the document could not be pinned
	ErrUploadFailed = errors.New("upload failed")

	// ErrInvalidDocument is returned when a document is missing or empty
	ErrInvalidDocument = errors.New("invalid document")

	// ErrDocumentTooLarge is returned when a document exceeds the accepted size
	ErrDocumentTooLarge = errors.New("document too large")

	// ErrStoreUnavailable is returned when the remote record store is not configured or unreachable
	ErrStoreUnavailable = errors.New("record store unavailable")
)
