package engine

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/leengari/labdb/internal/domain/data"
	"github.com/leengari/labdb/internal/domain/errors"
	"github.com/leengari/labdb/internal/domain/schema"
)

// Database is a registry of named tables and the entry point for
// insert, select, join and aggregate operations. It is not safe for
// concurrent use; callers that share one must serialise access.
type Database struct {
	tables    map[string]schema.Table
	observers []Observer
}

type Option func(*Database)

// WithObserver registers an observer at construction time
func WithObserver(o Observer) Option {
	return func(db *Database) {
		db.AddObserver(o)
	}
}

// New creates an empty database
func New(opts ...Option) *Database {
	db := &Database{
		tables:    make(map[string]schema.Table),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

// RegisterTable binds name to table, replacing any previous binding
func (db *Database) RegisterTable(name string, table schema.Table) {
	db.tables[name] = table
}

func (db *Database) unregisterTable(name string) {
	delete(db.tables, name)
}

// Table returns the table registered under name
func (db *Database) Table(name string) (schema.Table, bool) {
	t, ok := db.tables[name]
	return t, ok
}

// Tables returns the registered table names, sorted
func (db *Database) Tables() []string {
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (db *Database) lookup(name string) (schema.Table, error) {
	t, ok := db.tables[name]
	if !ok {
		return nil, &errors.TableNotFoundError{TableName: name}
	}
	return t, nil
}

// Insert parses raw into a record of the named table and stores it
func (db *Database) Insert(name, raw string) error {
	op := db.begin("insert", map[string]interface{}{"table": name, "raw": raw})

	t, err := db.lookup(name)
	if err != nil {
		return op.fail(err)
	}
	if err := t.Insert(raw); err != nil {
		return op.fail(err)
	}

	op.end(map[string]interface{}{"rows": t.Len()})
	return nil
}

// Select returns the records of the named table matching c
func (db *Database) Select(name string, c schema.Criteria) ([]data.Record, error) {
	op := db.begin("select", map[string]interface{}{"table": name, "criteria": c})

	t, err := db.lookup(name)
	if err != nil {
		return nil, op.fail(err)
	}
	return op.selectFrom(t, c)
}

// SelectArgs is Select with textual arguments interpreted by the table
func (db *Database) SelectArgs(name string, args ...string) ([]data.Record, error) {
	op := db.begin("select", map[string]interface{}{"table": name, "args": args})

	t, err := db.lookup(name)
	if err != nil {
		return nil, op.fail(err)
	}
	c, err := t.ParseCriteria(args)
	if err != nil {
		return nil, op.fail(err)
	}
	return op.selectFrom(t, c)
}

// AddObserver registers an observer to receive lifecycle events
func (db *Database) AddObserver(observer Observer) {
	db.observers = append(db.observers, observer)
}

// RemoveObserver unregisters an observer
func (db *Database) RemoveObserver(observer Observer) {
	for i, o := range db.observers {
		if o == observer {
			db.observers = append(db.observers[:i], db.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (db *Database) notify(event Event) {
	event.Timestamp = time.Now()
	for _, observer := range db.observers {
		observer.OnEvent(event)
	}
}

// operation tracks the events of one call
type operation struct {
	db   *Database
	name string
	id   string
}

func (db *Database) begin(name string, args interface{}) operation {
	op := operation{db: db, name: name, id: uuid.NewString()}
	db.notify(Event{Type: EventOpStart, Op: name, OpID: op.id, Data: args})
	return op
}

func (op operation) end(result interface{}) {
	op.db.notify(Event{Type: EventOpEnd, Op: op.name, OpID: op.id, Data: result})
}

func (op operation) fail(err error) error {
	op.db.notify(Event{Type: EventOpError, Op: op.name, OpID: op.id, Data: err.Error()})
	return err
}

func (op operation) selectFrom(t schema.Table, c schema.Criteria) ([]data.Record, error) {
	rows, err := t.Select(c)
	if err != nil {
		return nil, op.fail(err)
	}
	op.end(map[string]interface{}{"rows_returned": len(rows)})
	return rows, nil
}
