package ps

import (
	"sort"

	"github.com/ferrumdb/ferrum/core"
)

// Catalog is the engine's single mutable root: every database, table,
// row and index is reachable only through it.
type Catalog struct {
	databases map[string]*Database
}

func NewCatalog() *Catalog {
	return &Catalog{
		databases: make(map[string]*Database),
	}
}

func (catalog *Catalog) CreateDatabase(name string) (*Database, error) {
	if _, exists := catalog.databases[name]; exists {
		return nil, core.NewSchemaError("database %s already exists", name)
	}

	database := &Database{
		Name:   name,
		tables: make(map[string]*Table),
	}
	catalog.databases[name] = database

	return database, nil
}

func (catalog *Catalog) DropDatabase(name string) error {
	if _, exists := catalog.databases[name]; !exists {
		return core.NewSchemaError("database %s does not exist", name)
	}

	delete(catalog.databases, name)
	return nil
}

func (catalog *Catalog) Database(name string) (*Database, error) {
	database, exists := catalog.databases[name]
	if !exists {
		return nil, core.NewSchemaError("database %s does not exist", name)
	}
	return database, nil
}

// Table resolves a table through its database in one step. This is the
// only path the executor uses to locate tables.
func (catalog *Catalog) Table(database string, table string) (*Table, error) {
	d, err := catalog.Database(database)
	if err != nil {
		return nil, err
	}
	return d.Table(table)
}

func (catalog *Catalog) ListDatabases() []string {
	names := make([]string, 0, len(catalog.databases))
	for name := range catalog.databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
