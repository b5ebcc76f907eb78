package patrimoine

import (
	"errors"
	"iter"
	"slices"
	"sort"
	"strings"
)

// Ledger holds the full transaction history of a portfolio. It is the single
// source of truth: every report, position and projection is recomputed from
// the ordered transaction list, nothing is ever stored derived.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger { return &Ledger{} }

// stableSort sorts transactions by date, preserving the insertion order of
// same-day transactions.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].When().Before(l.transactions[j].When())
	})
}

// Append validates then adds transactions to the ledger, keeping it sorted.
// The ledger is left untouched if any transaction fails validation; all
// validation failures are reported, not just the first.
func (l *Ledger) Append(txs ...Transaction) error {
	validated := make([]Transaction, 0, len(txs))
	var errs []error
	for _, tx := range txs {
		v, err := Validate(l, tx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		validated = append(validated, v)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	l.transactions = append(l.transactions, validated...)
	l.stableSort()
	return nil
}

// Validate applies a transaction's validation against the current ledger
// state and returns the possibly amended transaction (quick fixes applied).
func Validate(l *Ledger, tx Transaction) (Transaction, error) {
	type validator interface {
		Validate(*Ledger) (Transaction, error)
	}
	v, ok := tx.(validator)
	if !ok {
		return tx, nil
	}
	return v.Validate(l)
}

// TxFilter selects transactions in iteration.
type TxFilter func(Transaction) bool

// AcceptAll accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// ByAsset accepts transactions on the named asset.
func ByAsset(asset string) TxFilter {
	return func(tx Transaction) bool { return tx.AssetName() == asset }
}

// ByType accepts transactions of the given command type.
func ByType(cmd CommandType) TxFilter {
	return func(tx Transaction) bool { return tx.What() == cmd }
}

// NotAfter accepts transactions dated on or before the given date.
func NotAfter(on Date) TxFilter {
	return func(tx Transaction) bool { return !tx.When().After(on) }
}

// Transactions returns an iterator over transactions in date order, keeping
// only those accepted by every filter.
func (l *Ledger) Transactions(filters ...TxFilter) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		if l == nil {
			return
		}
	loop:
		for i, tx := range l.transactions {
			for _, accept := range filters {
				if !accept(tx) {
					continue loop
				}
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// Len returns the number of transactions recorded.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	return len(l.transactions)
}

// InceptionDate returns the date of the oldest transaction, or the zero date
// for an empty ledger.
func (l *Ledger) InceptionDate() Date {
	if l == nil || len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].When()
}

// AssetNames returns the sorted list of distinct asset names ever traded.
func (l *Ledger) AssetNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tx := range l.Transactions() {
		if name := tx.AssetName(); !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	slices.SortFunc(names, func(a, b string) int { return strings.Compare(a, b) })
	return names
}

// Plans returns the recurring plans recorded for an asset, in date order.
// An empty asset name returns every plan.
func (l *Ledger) Plans(asset string) []RecurringPlan {
	filters := []TxFilter{ByType(CmdRecurringPlan)}
	if asset != "" {
		filters = append(filters, ByAsset(asset))
	}
	var plans []RecurringPlan
	for _, tx := range l.Transactions(filters...) {
		plans = append(plans, tx.(RecurringPlan))
	}
	return plans
}
