// Package repository is the tenant-scoped data access layer. Everything that
// reads or writes hostel data goes through a Scope, which injects the
// hostel_name filter into every statement it builds.
package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Scope is a gorm handle bound to one hostel.
type Scope struct {
	db     *gorm.DB
	hostel string
}

func NewScope(db *gorm.DB, hostel string) Scope {
	return Scope{db: db, hostel: hostel}
}

func (s Scope) Hostel() string {
	return s.hostel
}

// query starts a statement on model filtered to the scope's hostel. The
// column is qualified with the current table so joins stay unambiguous.
func (s Scope) query(ctx context.Context, model interface{}) *gorm.DB {
	return s.db.WithContext(ctx).Model(model).Where(clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: "hostel_name"},
		Value:  s.hostel,
	})
}

// Tenant groups the entity repositories of one hostel.
type Tenant struct {
	scope Scope
}

func ForHostel(db *gorm.DB, hostel string) *Tenant {
	return &Tenant{scope: NewScope(db, hostel)}
}

func (t *Tenant) Hostel() string { return t.scope.hostel }

func (t *Tenant) Users() *UserRepository { return &UserRepository{scope: t.scope} }

func (t *Tenant) Workers() *WorkerRepository { return &WorkerRepository{scope: t.scope} }

func (t *Tenant) Logs() *CleaningLogRepository { return &CleaningLogRepository{scope: t.scope} }

func (t *Tenant) Issues() *IssueRepository { return &IssueRepository{scope: t.scope} }

// translate maps driver/gorm errors onto the package sentinels. Errors
// returned by model hooks pass through untouched.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isDuplicateKey(err):
		return ErrDuplicate
	}
	return err
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
