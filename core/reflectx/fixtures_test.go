package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

type Identity struct {
	id    string
	Label string
}

func (i *Identity) ID() string { return i.id }

func (i Identity) Describe() string { return "identity " + i.id }

type ledger struct {
	entries []string
}

func (l *ledger) Entries() int { return len(l.entries) }

type Auditor interface {
	Audit(op string) string
}

type auditLog struct{}

func (auditLog) Audit(op string) string { return "audited " + op }

type Account struct {
	Identity
	ledger
	Auditor

	owner   string
	balance int64
	Limit   int64
}

func (a *Account) GetOwner() string { return a.owner }

func (a *Account) SetOwner(owner string) { a.owner = owner }

// Describe overrides Identity.Describe.
func (a *Account) Describe() string { return "account " + a.owner }

func (a *Account) Deposit(amount int64) int64 {
	a.balance += amount
	return a.balance
}

func (a *Account) Withdraw(amount int64) (int64, error) {
	if amount > a.balance {
		return 0, fmt.Errorf("%w: balance %d, requested %d", ErrInsufficientFunds, a.balance, amount)
	}
	a.balance -= amount
	return a.balance, nil
}

func (a *Account) Sum(values ...int64) int64 {
	var total int64
	for _, v := range values {
		total += v
	}
	return total
}

func (a *Account) Split(parts int64) (int64, int64) {
	return a.balance / parts, a.balance % parts
}

func (a *Account) Explode() { panic(ErrInsufficientFunds) }

func (a *Account) Crash() { panic("boom") }

func (a *Account) Schedule(at *timestamppb.Timestamp) string {
	return at.AsTime().UTC().Format(time.RFC3339)
}

func (a *Account) Before(t time.Time) bool {
	return t.Before(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
}

func (a *Account) Pay(amount Amount) int64 {
	a.balance -= int64(amount)
	return a.balance
}

func (a *Account) Tag(tags []string) int { return len(tags) }

func (a *Account) withdrawAll() int64 {
	all := a.balance
	a.balance = 0
	return all
}

func (a *Account) getBalance() int64 { return a.balance }

func (a Account) summary(prefix string) string {
	return fmt.Sprintf("%s%s:%d", prefix, a.owner, a.balance)
}

type Amount int64

func (a Amount) Validate() error {
	if a < 0 {
		return errors.New("amount must not be negative")
	}
	return nil
}

// Wrapper embeds Identity through a pointer that may be nil.
type Wrapper struct {
	*Identity
	note string
}

// Node embeds itself through a pointer.
type Node struct {
	*Node
	value int
}

func init() {
	account := reflect.TypeFor[Account]()
	MustRegisterMethod(account, "withdrawAll", (*Account).withdrawAll)
	MustRegisterMethod(account, "getBalance", (*Account).getBalance)
	MustRegisterMethod(account, "summary", Account.summary)
}

func newAccount() *Account {
	return &Account{
		Identity: Identity{id: "acc-1", Label: "main"},
		ledger:   ledger{entries: []string{"open"}},
		Auditor:  auditLog{},
		owner:    "alice",
		balance:  10,
		Limit:    100,
	}
}

// unregisterMethod removes a shim registered by a test.
func unregisterMethod(receiver reflect.Type, name string) {
	shims.Lock()
	defer shims.Unlock()

	list := shims.byType[receiver]
	for i, s := range list {
		if s.name == name {
			shims.byType[receiver] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}
