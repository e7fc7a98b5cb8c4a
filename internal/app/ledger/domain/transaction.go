package domain

import (
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

// Payload field names read into the transaction snapshot.
const (
	FieldAmount                = "amount"
	FieldFee                   = "fee"
	FieldNetAmount             = "net_amount"
	FieldTotalAmount           = "total_amount"
	FieldCorporateSurcharge    = "corporate_surcharge"
	FieldGatewayAccountID      = "gateway_account_id"
	FieldReference             = "reference"
	FieldDescription           = "description"
	FieldEmail                 = "email"
	FieldCardholderName        = "cardholder_name"
	FieldCardBrand             = "card_brand"
	FieldLastDigitsCardNumber  = "last_digits_card_number"
	FieldFirstDigitsCardNumber = "first_digits_card_number"
	FieldPaymentProvider       = "payment_provider"
	FieldLive                  = "live"
	FieldDelayedCapture        = "delayed_capture"
)

type columnKind int

const (
	intColumn columnKind = iota
	stringColumn
	boolColumn
)

// snapshotColumns are lifted into dedicated snapshot attributes and left
// out of TransactionDetails. A value of the wrong kind never reaches them.
var snapshotColumns = map[string]columnKind{
	FieldAmount:                intColumn,
	FieldFee:                   intColumn,
	FieldNetAmount:             intColumn,
	FieldTotalAmount:           intColumn,
	FieldCorporateSurcharge:    intColumn,
	FieldGatewayAccountID:      stringColumn,
	FieldReference:             stringColumn,
	FieldDescription:           stringColumn,
	FieldEmail:                 stringColumn,
	FieldCardholderName:        stringColumn,
	FieldCardBrand:             stringColumn,
	FieldLastDigitsCardNumber:  stringColumn,
	FieldFirstDigitsCardNumber: stringColumn,
	FieldPaymentProvider:       stringColumn,
	FieldLive:                  boolColumn,
	FieldDelayedCapture:        boolColumn,
}

// contributes reports whether v may take part in the field fold. Nulls
// never do; snapshot columns also require their expected kind.
func contributes(key string, v *structpb.Value) bool {
	if v == nil {
		return false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return false
	}
	kind, ok := snapshotColumns[key]
	if !ok {
		return true
	}
	switch kind {
	case intColumn:
		_, ok = int64Value(v)
	case stringColumn:
		_, ok = v.GetKind().(*structpb.Value_StringValue)
	case boolColumn:
		_, ok = v.GetKind().(*structpb.Value_BoolValue)
	}
	return ok
}

var transactionNamespace = uuid.MustParse("7a3d9c1e-52b4-4f0a-8e6d-2b9f4c1a7d30")

// TransactionID derives the internal id of the transaction with the given
// external id. Every projection of the same resource gets the same id.
func TransactionID(externalID string) string {
	return uuid.NewSHA1(transactionNamespace, []byte(externalID)).String()
}

// Transaction is the read-model snapshot of a payment or refund.
type Transaction struct {
	ID               string
	ExternalID       string
	ResourceType     ResourceType
	ParentExternalID string
	State            TransactionState

	Amount             *int64
	Fee                *int64
	NetAmount          *int64
	TotalAmount        *int64
	CorporateSurcharge *int64

	GatewayAccountID      string
	Reference             string
	Description           string
	Email                 string
	CardholderName        string
	CardBrand             string
	LastDigitsCardNumber  string
	FirstDigitsCardNumber string
	PaymentProvider       string
	Live                  bool
	DelayedCapture        bool

	CreatedDate      time.Time
	StateChangedDate time.Time
	EventCount       int64

	// TransactionDetails is the canonical JSON of the remaining digest fields.
	TransactionDetails string
}

// TransactionFromDigest projects a digest onto a snapshot. Fields missing
// from the digest stay unset.
func TransactionFromDigest(d *EventDigest) *Transaction {
	f := d.Fields
	t := &Transaction{
		ID:               TransactionID(d.ResourceExternalID),
		ExternalID:       d.ResourceExternalID,
		ResourceType:     d.ResourceType,
		ParentExternalID: d.ParentResourceExternalID,
		State:            d.State,

		Amount:             optionalInt64(f, FieldAmount),
		Fee:                optionalInt64(f, FieldFee),
		NetAmount:          optionalInt64(f, FieldNetAmount),
		TotalAmount:        optionalInt64(f, FieldTotalAmount),
		CorporateSurcharge: optionalInt64(f, FieldCorporateSurcharge),

		CreatedDate:      d.FirstEventDate,
		StateChangedDate: d.SalientEventDate,
		EventCount:       int64(d.EventCount),
	}
	if t.StateChangedDate.IsZero() {
		t.StateChangedDate = d.MostRecentEventDate
	}

	t.GatewayAccountID, _ = f.String(FieldGatewayAccountID)
	t.Reference, _ = f.String(FieldReference)
	t.Description, _ = f.String(FieldDescription)
	t.Email, _ = f.String(FieldEmail)
	t.CardholderName, _ = f.String(FieldCardholderName)
	t.CardBrand, _ = f.String(FieldCardBrand)
	t.LastDigitsCardNumber, _ = f.String(FieldLastDigitsCardNumber)
	t.FirstDigitsCardNumber, _ = f.String(FieldFirstDigitsCardNumber)
	t.PaymentProvider, _ = f.String(FieldPaymentProvider)
	t.Live, _ = f.Bool(FieldLive)
	t.DelayedCapture, _ = f.Bool(FieldDelayedCapture)

	details := newPayloadBuilder()
	for _, key := range f.Keys() {
		if _, lifted := snapshotColumns[key]; lifted {
			continue
		}
		v, _ := f.Value(key)
		details.set(key, v)
	}
	t.TransactionDetails = details.build().Canonical()

	return t
}

// IsRefund reports whether the snapshot describes a refund.
func (t *Transaction) IsRefund() bool {
	return t.ResourceType == ResourceTypeRefund
}

func optionalInt64(p Payload, name string) *int64 {
	v, ok := p.Int64(name)
	if !ok {
		return nil
	}
	return &v
}
