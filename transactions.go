package patrimoine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CommandType is a typed string for identifying transaction commands.
type CommandType string

// Command types used for identifying transactions.
const (
	CmdBuy           CommandType = "buy"
	CmdSell          CommandType = "sell"
	CmdDividend      CommandType = "dividend"
	CmdRecurringPlan CommandType = "recurring-plan"
)

// Transaction defines the common interface for all types of financial
// transactions that can be recorded in the ledger.
type Transaction interface {
	What() CommandType // What returns the command type of the transaction (e.g., "buy", "sell").
	When() Date        // When returns the date on which the transaction occurred.
	AssetName() string // AssetName returns the display key grouping transactions per asset.
	Equal(Transaction) bool
}

type baseCmd struct {
	Command CommandType `json:"command"` // Command specifies the type of transaction (e.g., "buy", "sell").
	ID      string      `json:"id,omitempty"`
	Date    Date        `json:"date"`           // Date is the date when the transaction took place.
	Memo    string      `json:"memo,omitempty"` // Memo provides an optional rationale or note for the transaction.
}

// What returns the command name for the transaction.
func (t baseCmd) What() CommandType { return t.Command }

// When returns the date of the transaction.
func (t baseCmd) When() Date { return t.Date }

// Rationale returns the memo associated with the transaction.
func (t baseCmd) Rationale() string { return t.Memo }

// Validate checks the base command fields. It sets the date to today if it's
// zero and assigns an identifier if none was given. It's meant to be embedded
// in other transaction validation methods.
func (t *baseCmd) Validate() {
	if t.Date == (Date{}) {
		t.Date = Today()
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
}

// MarshalJSON implements the json.Marshaler interface for baseCmd.
func (t baseCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Command)
	w.Optional("id", t.ID)
	w.Append("date", t.Date)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// assetCmd is a component for asset-based transactions (all of them).
type assetCmd struct {
	baseCmd
	Asset   string `json:"asset"`             // Asset is the display name of the asset, the grouping key.
	Ticker  string `json:"ticker,omitempty"`  // Ticker is an optional symbol, only a fallback price-lookup key.
	Account string `json:"account,omitempty"` // Account is a free-text bucket, last writer wins per asset.
	Sector  string `json:"sector,omitempty"`  // Sector is a free-text classification for reporting.
}

// AssetName returns the asset display name.
func (t assetCmd) AssetName() string { return t.Asset }

// Validate checks the asset command fields.
func (t *assetCmd) Validate() error {
	t.baseCmd.Validate()
	if t.Asset == "" {
		return errors.New("asset name is missing")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for assetCmd.
func (t assetCmd) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.baseCmd)
	w.Append("asset", t.Asset)
	w.Optional("ticker", t.Ticker)
	w.Optional("account", t.Account)
	w.Optional("sector", t.Sector)
	return w.MarshalJSON()
}

// priceCmd is a specialized struct to read a unit price in two fields.
type priceCmd struct {
	Price    float64 `json:"price"`
	Currency string  `json:"currency,omitempty"`
}

func (a priceCmd) Money() Money { return M(a.Price, a.Currency) }

// amountCmd is a specialized struct to read a cash amount in two fields.
type amountCmd struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency,omitempty"`
}

func (a amountCmd) Money() Money { return M(a.Amount, a.Currency) }

// --- Buy Command ---

// Buy represents a transaction where a quantity of an asset is purchased at a
// unit price. It increases both the position quantity and its cost basis.
type Buy struct {
	assetCmd
	Quantity Quantity // Quantity is the number of shares or units bought.
	Price    Money    // Price is the unit price paid per share.
}

// NewBuy creates a new Buy transaction.
func NewBuy(day Date, memo, asset string, quantity Quantity, price Money) Buy {
	return Buy{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdBuy, Date: day, Memo: memo}, Asset: asset},
		Quantity: quantity,
		Price:    price,
	}
}

// Amount returns the total cash spent on the purchase.
func (t Buy) Amount() Money { return t.Price.Mul(t.Quantity) }

// MarshalJSON implements the json.Marshaler interface for Buy.
func (t Buy) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	w.Optional("currency", t.Price.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Buy.
func (t *Buy) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		priceCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Quantity = temp.Quantity
	t.Price = temp.priceCmd.Money()
	return nil
}

func (t Buy) Equal(other Transaction) bool {
	o, ok := other.(Buy)
	return ok && t.assetCmd == o.assetCmd && t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price)
}

// Validate checks the Buy transaction's fields. It ensures that the quantity
// and the unit price are positive.
func (t Buy) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(); err != nil {
		return t, err
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("buy transaction quantity must be positive, got %s", t.Quantity)
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("buy transaction price must be positive, got %s", t.Price)
	}
	return t, nil
}

// --- Sell Command ---

// Sell represents a transaction where a quantity of an asset is sold at a
// unit price. It reduces the quantity and the cost basis at the average cost,
// never the average cost itself.
type Sell struct {
	assetCmd
	Quantity Quantity // Quantity is the number of shares or units sold.
	Price    Money    // Price is the unit price obtained per share.
}

// NewSell creates a new Sell transaction.
// A zero quantity signifies a "sell all" instruction: the actual number of
// shares is resolved during validation from the position on the transaction date.
func NewSell(day Date, memo, asset string, quantity Quantity, price Money) Sell {
	return Sell{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdSell, Date: day, Memo: memo}, Asset: asset},
		Quantity: quantity,
		Price:    price,
	}
}

// Amount returns the total cash proceeds of the sale.
func (t Sell) Amount() Money { return t.Price.Mul(t.Quantity) }

// MarshalJSON implements the json.Marshaler interface for Sell.
func (t Sell) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	w.Optional("currency", t.Price.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Sell.
func (t *Sell) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		priceCmd
		Quantity Quantity `json:"quantity"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Quantity = temp.Quantity
	t.Price = temp.priceCmd.Money()
	return nil
}

func (t Sell) Equal(other Transaction) bool {
	o, ok := other.(Sell)
	return ok && t.assetCmd == o.assetCmd && t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price)
}

// Validate checks the Sell transaction's fields. It resolves a zero quantity
// to the full position held on the transaction date ("sell all"), and rejects
// a sale larger than the position. The aggregator itself never rejects an
// over-sell (see Ledger.Positions); this check only guards interactive entry.
func (t Sell) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(); err != nil {
		return t, err
	}
	if !t.Price.IsPositive() {
		return t, fmt.Errorf("sell transaction price must be positive, got %s", t.Price)
	}

	pos := ledger.QuantityAt(t.Asset, t.Date, nil)
	if t.Quantity.IsZero() {
		// quick fix, sell all.
		t.Quantity = pos
	}
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("sell transaction quantity must be positive, got %s", t.Quantity)
	}
	if pos.LessThan(t.Quantity) {
		return t, fmt.Errorf("on %s, cannot sell %s of %s, position is only %s", t.When(), t.Quantity, t.Asset, pos)
	}
	return t, nil
}

// --- Dividend Command ---

// Dividend represents a cash dividend received for a held asset. The amount
// is the total cash received, not a per-share rate. It never changes the
// position; it only feeds the income projection.
type Dividend struct {
	assetCmd
	Amount Money // Amount is the total dividend cash received.
}

// NewDividend creates a new Dividend transaction.
func NewDividend(day Date, memo, asset string, amount Money) Dividend {
	return Dividend{
		assetCmd: assetCmd{baseCmd: baseCmd{Command: CmdDividend, Date: day, Memo: memo}, Asset: asset},
		Amount:   amount,
	}
}

// MarshalJSON implements the json.Marshaler interface for Dividend.
func (t Dividend) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("amount", t.Amount.value)
	w.Optional("currency", t.Amount.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Dividend.
func (t *Dividend) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		amountCmd
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.Amount = temp.amountCmd.Money()
	return nil
}

func (t Dividend) Equal(other Transaction) bool {
	o, ok := other.(Dividend)
	return ok && t.assetCmd == o.assetCmd && t.Amount.Equal(o.Amount)
}

// Validate checks the Dividend transaction's fields.
func (t Dividend) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(); err != nil {
		return t, err
	}
	if !t.Amount.IsPositive() {
		return t, errors.New("dividend must have a positive cash amount")
	}
	return t, nil
}

// --- RecurringPlan Command ---

// RecurringPlan represents a commitment to invest a fixed total amount in an
// asset through periodic purchases over a fixed number of months (dollar-cost
// averaging). The position aggregator amortizes the committed amount over the
// elapsed part of the plan; see Ledger.Positions.
type RecurringPlan struct {
	assetCmd
	DurationMonths     int   `json:"months"`   // DurationMonths is the total plan length.
	ExecutionsPerMonth int   `json:"perMonth"` // ExecutionsPerMonth is the purchase frequency.
	TotalAmount        Money // TotalAmount is the total cash committed over the plan's life.
	ReferencePrice     Money // ReferencePrice is the assumed execution price; optional.
}

// NewRecurringPlan creates a new RecurringPlan transaction starting on day.
func NewRecurringPlan(day Date, memo, asset string, months, perMonth int, total, reference Money) RecurringPlan {
	return RecurringPlan{
		assetCmd:           assetCmd{baseCmd: baseCmd{Command: CmdRecurringPlan, Date: day, Memo: memo}, Asset: asset},
		DurationMonths:     months,
		ExecutionsPerMonth: perMonth,
		TotalAmount:        total,
		ReferencePrice:     reference,
	}
}

// MarshalJSON implements the json.Marshaler interface for RecurringPlan.
func (t RecurringPlan) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.EmbedFrom(t.assetCmd)
	w.Append("months", t.DurationMonths)
	w.Append("perMonth", t.ExecutionsPerMonth)
	w.Append("total", t.TotalAmount.value)
	if !t.ReferencePrice.IsZero() {
		w.Append("reference", t.ReferencePrice.value)
	}
	w.Optional("currency", t.TotalAmount.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for RecurringPlan.
func (t *RecurringPlan) UnmarshalJSON(data []byte) error {
	var temp struct {
		assetCmd
		Months    int     `json:"months"`
		PerMonth  int     `json:"perMonth"`
		Total     float64 `json:"total"`
		Reference float64 `json:"reference"`
		Currency  string  `json:"currency"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	t.assetCmd = temp.assetCmd
	t.DurationMonths = temp.Months
	t.ExecutionsPerMonth = temp.PerMonth
	t.TotalAmount = M(temp.Total, temp.Currency)
	t.ReferencePrice = M(temp.Reference, temp.Currency)
	return nil
}

func (t RecurringPlan) Equal(other Transaction) bool {
	o, ok := other.(RecurringPlan)
	return ok && t.assetCmd == o.assetCmd &&
		t.DurationMonths == o.DurationMonths &&
		t.ExecutionsPerMonth == o.ExecutionsPerMonth &&
		t.TotalAmount.Equal(o.TotalAmount) &&
		t.ReferencePrice.Equal(o.ReferencePrice)
}

// Validate checks the RecurringPlan transaction's fields.
func (t RecurringPlan) Validate(ledger *Ledger) (Transaction, error) {
	if err := t.assetCmd.Validate(); err != nil {
		return t, err
	}
	if t.DurationMonths <= 0 {
		return t, fmt.Errorf("recurring plan duration must be positive, got %d months", t.DurationMonths)
	}
	if t.ExecutionsPerMonth <= 0 {
		return t, fmt.Errorf("recurring plan frequency must be positive, got %d per month", t.ExecutionsPerMonth)
	}
	if !t.TotalAmount.IsPositive() {
		return t, fmt.Errorf("recurring plan total amount must be positive, got %s", t.TotalAmount)
	}
	if t.ReferencePrice.IsNegative() {
		return t, fmt.Errorf("recurring plan reference price cannot be negative, got %s", t.ReferencePrice)
	}
	return t, nil
}

// effectiveMonths returns the number of plan months executed as of a date,
// clamped into [0, DurationMonths]. A month counts once its day-of-month has
// been reached (a completed period credits the month).
func (t RecurringPlan) effectiveMonths(on Date) int {
	months := CompletedMonths(t.Date, on)
	if months < 0 {
		months = 0
	}
	if months > t.DurationMonths {
		months = t.DurationMonths
	}
	return months
}

// Active reports whether the plan still has unexecuted installments as of a date.
func (t RecurringPlan) Active(on Date) bool {
	return !t.Date.After(on) && t.effectiveMonths(on) < t.DurationMonths
}

// amountPerExecution returns the cash invested per single execution, or zero
// money for a malformed plan (zero total executions).
func (t RecurringPlan) amountPerExecution() Money {
	n := t.DurationMonths * t.ExecutionsPerMonth
	if n <= 0 {
		return Money{cur: t.TotalAmount.cur}
	}
	return t.TotalAmount.Div(Q(n))
}

// investedThrough returns the cash invested after the given number of
// effective months.
func (t RecurringPlan) investedThrough(months int) Money {
	return t.amountPerExecution().Mul(Q(months * t.ExecutionsPerMonth))
}
